package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'student001' for key 'idx_users_student_id'"}
	fkViolation := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}

	assert.True(t, IsDuplicateKey(dup))
	assert.True(t, IsDuplicateKey(fmt.Errorf("create user: %w", dup)))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))

	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(fkViolation))
	assert.False(t, IsDuplicateKey(errors.New("connection reset")))
	assert.False(t, IsDuplicateKey(gorm.ErrRecordNotFound))
}
