package repository

import (
	"lexile_eval_backend/internal/model"

	"gorm.io/gorm"
)

type FactorScoreRepository struct {
	DB *gorm.DB
}

func NewFactorScoreRepository(db *gorm.DB) *FactorScoreRepository {
	return &FactorScoreRepository{DB: db}
}

// CreateInitial inserts one zero row per factor for a new student.
func (r *FactorScoreRepository) CreateInitial(studentID string, factors []string) error {
	rows := make([]model.EvaluationFactorScore, len(factors))
	for i, f := range factors {
		rows[i] = model.EvaluationFactorScore{StudentID: studentID, Factor: f, Score: 0}
	}
	return r.DB.Create(&rows).Error
}

func (r *FactorScoreRepository) ListByStudent(studentID string) ([]model.EvaluationFactorScore, error) {
	var scores []model.EvaluationFactorScore
	err := r.DB.Where("student_id = ?", studentID).Order("factor").Find(&scores).Error
	return scores, err
}

// ApplyDelta adds delta to a factor score in a single statement, clamped at
// zero. One atomic update per factor, so a crash between read and write
// cannot lose the change.
func (r *FactorScoreRepository) ApplyDelta(studentID, factor string, delta int) error {
	return r.DB.Model(&model.EvaluationFactorScore{}).
		Where("student_id = ? AND factor = ?", studentID, factor).
		Update("score", gorm.Expr("GREATEST(score + ?, 0)", delta)).
		Error
}

// ApplyDeltas applies a full evaluation's deltas inside one transaction.
func (r *FactorScoreRepository) ApplyDeltas(studentID string, deltas map[string]int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for factor, delta := range deltas {
			err := tx.Model(&model.EvaluationFactorScore{}).
				Where("student_id = ? AND factor = ?", studentID, factor).
				Update("score", gorm.Expr("GREATEST(score + ?, 0)", delta)).
				Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
