package model

// EvaluationFactorScore tracks one reading skill for one student. A row is
// created with score 0 for every configured factor at registration and only
// mutated additively afterwards; the stored score never drops below zero.
type EvaluationFactorScore struct {
	BaseModel
	StudentID string `gorm:"size:100;index:idx_student_factor,unique;not null" json:"studentId"`
	Factor    string `gorm:"size:100;index:idx_student_factor,unique;not null" json:"factor"`
	Score     int    `gorm:"not null;default:0" json:"score"`
}

func (EvaluationFactorScore) TableName() string {
	return "evaluation_factor_scores"
}
