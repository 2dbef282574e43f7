package repo

import (
	"errors"

	"gorm.io/gorm"
)

var ErrDuplicateEmail = errors.New("email already exists")

type GormRepo struct {
	DB *gorm.DB
}
