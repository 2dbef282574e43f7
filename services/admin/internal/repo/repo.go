package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/services/admin/internal/models"
)

var ErrDuplicateEmail = errors.New("email already exists")

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	admin.Email = strings.ToLower(admin.Email)

	var existing models.Admin
	err := r.DB.WithContext(ctx).Where("email = ?", admin.Email).First(&existing).Error
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.DB.WithContext(ctx).Create(admin).Error
}

func (r *GormRepo) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormRepo) FindAdminByID(ctx context.Context, id string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormRepo) SaveAdmin(ctx context.Context, admin *models.Admin) error {
	return r.DB.WithContext(ctx).Save(admin).Error
}
