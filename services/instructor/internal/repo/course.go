package repo

import (
	"context"
	"errors"
	"slices"
	"strings"

	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/services/instructor/internal/models"
)

func (r *GormRepo) CreateCourse(ctx context.Context, course *models.Course) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return err
		}

		var owner models.Instructor
		if err := tx.Where("id = ?", course.Instructor).First(&owner).Error; err != nil {
			return err
		}
		owner.Courses = append(owner.Courses, course.ID)
		return tx.Save(&owner).Error
	})
}

func (r *GormRepo) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *GormRepo) ListCourses(ctx context.Context) ([]models.Course, error) {
	var items []models.Course
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListCoursesByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	var items []models.Course
	if err := r.DB.WithContext(ctx).Where("instructor = ?", instructorID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SaveCourse(ctx context.Context, course *models.Course) error {
	return r.DB.WithContext(ctx).Save(course).Error
}

// DeleteCourse removes the course and pulls its id out of the owner's
// back-reference list in one transaction. A missing owner record (an orphaned
// course whose instructor was deleted) is not an error.
func (r *GormRepo) DeleteCourse(ctx context.Context, course *models.Course) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Course{}, "id = ?", course.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var owner models.Instructor
		if err := tx.Where("id = ?", course.Instructor).First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		owner.Courses = slices.DeleteFunc(owner.Courses, func(id string) bool {
			return id == course.ID
		})
		return tx.Save(&owner).Error
	})
}

// SearchCourses is the database fallback used when elasticsearch is not
// configured: a case-insensitive substring match over title and description.
func (r *GormRepo) SearchCourses(ctx context.Context, q string) ([]models.Course, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	var items []models.Course
	if err := r.DB.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
