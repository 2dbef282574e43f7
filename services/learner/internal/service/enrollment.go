package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/userwale/projetskillhub/pkg/events"
	"github.com/userwale/projetskillhub/pkg/logging"
	"github.com/userwale/projetskillhub/pkg/validate"
	"github.com/userwale/projetskillhub/services/learner/internal/models"
	"github.com/userwale/projetskillhub/services/learner/internal/repo"
	"github.com/userwale/projetskillhub/services/learner/internal/transport"
)

type EnrollmentService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

func (s *EnrollmentService) Enroll(ctx context.Context, learnerID string, req transport.EnrollRequest) (*models.Enrollment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	enrollment := &models.Enrollment{
		ID:        uuid.NewString(),
		LearnerID: learnerID,
		Course:    req.CourseID,
		Progress:  []models.ProgressEntry{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}

	l := logging.FromContext(ctx).With("svc", "enrollment.enroll")
	if err := s.Producer.Publish(ctx, learnerID, map[string]any{
		"type":      "enrollment_created",
		"learnerID": learnerID,
		"courseID":  req.CourseID,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	return enrollment, nil
}

func (s *EnrollmentService) Unenroll(ctx context.Context, learnerID string, req transport.EnrollRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.Repo.DeleteEnrollment(ctx, learnerID, req.CourseID); err != nil {
		return err
	}

	l := logging.FromContext(ctx).With("svc", "enrollment.unenroll")
	if err := s.Producer.Publish(ctx, learnerID, map[string]any{
		"type":      "enrollment_deleted",
		"learnerID": learnerID,
		"courseID":  req.CourseID,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}
	return nil
}

func (s *EnrollmentService) ListByLearner(ctx context.Context, learnerID string) ([]models.Enrollment, error) {
	return s.Repo.ListEnrollmentsByLearner(ctx, learnerID)
}

func (s *EnrollmentService) Get(ctx context.Context, learnerID, courseID string) (*models.Enrollment, error) {
	return s.Repo.GetEnrollment(ctx, learnerID, courseID)
}

// UpdateProgress upserts the progress entry for one content item: updated in
// place when present, appended when absent.
func (s *EnrollmentService) UpdateProgress(ctx context.Context, learnerID string, req transport.ProgressRequest) (*models.Enrollment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	enrollment, err := s.Repo.GetEnrollment(ctx, learnerID, req.CourseID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range enrollment.Progress {
		if enrollment.Progress[i].ContentID == req.ContentID {
			enrollment.Progress[i].Completed = req.Completed
			found = true
			break
		}
	}
	if !found {
		enrollment.Progress = append(enrollment.Progress, models.ProgressEntry{
			ContentID: req.ContentID,
			Completed: req.Completed,
		})
	}

	if err := s.Repo.SaveEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}
