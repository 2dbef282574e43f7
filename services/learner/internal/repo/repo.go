package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
)

type GormRepo struct {
	DB *gorm.DB
}
