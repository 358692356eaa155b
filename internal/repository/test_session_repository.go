package repository

import (
	"lexile_eval_backend/internal/model"

	"gorm.io/gorm"
)

type TestSessionRepository struct {
	DB *gorm.DB
}

func NewTestSessionRepository(db *gorm.DB) *TestSessionRepository {
	return &TestSessionRepository{DB: db}
}

func (r *TestSessionRepository) Create(session *model.TestSession) error {
	return r.DB.Create(session).Error
}

func (r *TestSessionRepository) FindByID(id uint) (*model.TestSession, error) {
	var session model.TestSession
	err := r.DB.First(&session, id).Error
	return &session, err
}

func (r *TestSessionRepository) ListByStudent(studentID string, limit int) ([]model.TestSession, error) {
	var sessions []model.TestSession
	err := r.DB.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

// Complete finalizes a session with the evaluation outcome.
func (r *TestSessionRepository) Complete(id uint, percentage float64, newLexile int) error {
	return r.DB.Model(&model.TestSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed":          true,
			"percentage_correct": percentage,
			"new_lexile_level":   newLexile,
		}).Error
}
