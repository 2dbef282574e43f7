package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/services/instructor/internal/models"
)

func (r *GormRepo) CreateInstructor(ctx context.Context, inst *models.Instructor) error {
	inst.Email = strings.ToLower(inst.Email)

	var existing models.Instructor
	err := r.DB.WithContext(ctx).Where("email = ?", inst.Email).First(&existing).Error
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.DB.WithContext(ctx).Create(inst).Error
}

func (r *GormRepo) FindInstructorByEmail(ctx context.Context, email string) (*models.Instructor, error) {
	var inst models.Instructor
	if err := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&inst).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *GormRepo) FindInstructorByID(ctx context.Context, id string) (*models.Instructor, error) {
	var inst models.Instructor
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&inst).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *GormRepo) ListInstructors(ctx context.Context) ([]models.Instructor, error) {
	var items []models.Instructor
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SaveInstructor(ctx context.Context, inst *models.Instructor) error {
	return r.DB.WithContext(ctx).Save(inst).Error
}

// DeleteInstructor removes the identity only. The instructor's courses stay
// behind with a dangling owner reference; see DESIGN.md.
func (r *GormRepo) DeleteInstructor(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Instructor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
