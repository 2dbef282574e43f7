package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/services/learner/internal/models"
)

func (r *GormRepo) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	var existing models.Enrollment
	err := r.DB.WithContext(ctx).
		Where("learner_id = ? AND course = ?", enrollment.LearnerID, enrollment.Course).
		First(&existing).Error
	if err == nil {
		return ErrAlreadyEnrolled
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.DB.WithContext(ctx).Create(enrollment).Error
}

func (r *GormRepo) GetEnrollment(ctx context.Context, learnerID, courseID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.DB.WithContext(ctx).
		Where("learner_id = ? AND course = ?", learnerID, courseID).
		First(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *GormRepo) ListEnrollmentsByLearner(ctx context.Context, learnerID string) ([]models.Enrollment, error) {
	var items []models.Enrollment
	if err := r.DB.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SaveEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	return r.DB.WithContext(ctx).Save(enrollment).Error
}

func (r *GormRepo) DeleteEnrollment(ctx context.Context, learnerID, courseID string) error {
	res := r.DB.WithContext(ctx).
		Where("learner_id = ? AND course = ?", learnerID, courseID).
		Delete(&models.Enrollment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
