package model

import "time"

// swagger:model User
type User struct {
	BaseModel
	StudentID   string    `gorm:"size:100;uniqueIndex;not null" json:"studentId"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Age         int       `gorm:"not null" json:"age"`
	LexileLevel int       `gorm:"not null" json:"lexileLevel"`
	LastLogin   time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
