package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/services/learner/internal/models"
)

func (r *GormRepo) CreateLearner(ctx context.Context, learner *models.Learner) error {
	learner.Email = strings.ToLower(learner.Email)

	var existing models.Learner
	err := r.DB.WithContext(ctx).Where("email = ?", learner.Email).First(&existing).Error
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.DB.WithContext(ctx).Create(learner).Error
}

func (r *GormRepo) FindLearnerByEmail(ctx context.Context, email string) (*models.Learner, error) {
	var learner models.Learner
	if err := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&learner).Error; err != nil {
		return nil, err
	}
	return &learner, nil
}

func (r *GormRepo) FindLearnerByID(ctx context.Context, id string) (*models.Learner, error) {
	var learner models.Learner
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&learner).Error; err != nil {
		return nil, err
	}
	return &learner, nil
}

func (r *GormRepo) ListLearners(ctx context.Context) ([]models.Learner, error) {
	var items []models.Learner
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SaveLearner(ctx context.Context, learner *models.Learner) error {
	return r.DB.WithContext(ctx).Save(learner).Error
}

// DeleteLearner removes the identity and the learner's enrollments together.
func (r *GormRepo) DeleteLearner(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Learner{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&models.Enrollment{}, "learner_id = ?", id).Error
	})
}
