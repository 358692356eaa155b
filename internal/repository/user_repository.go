package repository

import (
	"time"

	"lexile_eval_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByStudentID(studentID string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("student_id = ?", studentID).First(&user).Error
	return &user, err
}

func (r *UserRepository) UpdateLexileLevel(studentID string, level int) error {
	return r.DB.Model(&model.User{}).
		Where("student_id = ?", studentID).
		Update("lexile_level", level).
		Error
}

func (r *UserRepository) TouchLastLogin(studentID string) error {
	return r.DB.Model(&model.User{}).
		Where("student_id = ?", studentID).
		Update("last_login", time.Now()).
		Error
}
