package model

// TestSession records one generated reading test for a student. The row is
// created when generation succeeds and finalized on answer submission.
type TestSession struct {
	BaseModel
	StudentID         string  `gorm:"size:100;index;not null" json:"studentId"`
	Topic             string  `gorm:"size:100;not null" json:"topic"`
	LexileLevel       int     `gorm:"not null" json:"lexileLevel"`
	Content           string  `gorm:"type:text;not null" json:"content"`
	Completed         bool    `gorm:"default:false" json:"completed"`
	PercentageCorrect float64 `json:"percentageCorrect"`
	NewLexileLevel    int     `json:"newLexileLevel"`
}

func (TestSession) TableName() string {
	return "test_sessions"
}
