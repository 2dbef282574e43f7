package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/userwale/projetskillhub/pkg/events"
	"github.com/userwale/projetskillhub/pkg/logging"
	"github.com/userwale/projetskillhub/pkg/tokens"
	"github.com/userwale/projetskillhub/pkg/validate"
	"github.com/userwale/projetskillhub/services/instructor/internal/models"
	"github.com/userwale/projetskillhub/services/instructor/internal/repo"
	"github.com/userwale/projetskillhub/services/instructor/internal/search"
	"github.com/userwale/projetskillhub/services/instructor/internal/transport"
	"github.com/userwale/projetskillhub/services/instructor/internal/upload"
)

type CourseService struct {
	Repo     *repo.GormRepo
	Index    *search.Index
	Files    *upload.Store
	Producer *events.Producer
}

func (s *CourseService) reindex(ctx context.Context, course *models.Course) {
	l := logging.FromContext(ctx)
	if err := s.Index.IndexCourse(ctx, course); err != nil {
		l.Warn("search_index_failed", "course_id", course.ID, "error", err)
	}
}

func (s *CourseService) Create(ctx context.Context, instructorID string, req transport.CreateCourseRequest) (*models.Course, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := time.Now().UTC()
	course := &models.Course{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Content:     []models.ContentItem{},
		Instructor:  instructorID,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	s.reindex(ctx, course)

	l := logging.FromContext(ctx).With("svc", "course.create")
	if err := s.Producer.Publish(ctx, instructorID, map[string]any{
		"type":         "course_created",
		"courseID":     course.ID,
		"instructorID": instructorID,
		"title":        course.Title,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	return course, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	return s.Repo.GetCourse(ctx, id)
}

func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	return s.Repo.ListCourses(ctx)
}

func (s *CourseService) ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	return s.Repo.ListCoursesByInstructor(ctx, instructorID)
}

// loadOwned fetches the course and enforces the ownership rule: a missing
// course stays a not-found, a foreign one becomes ErrNotOwner.
func (s *CourseService) loadOwned(ctx context.Context, courseID, actorID, actorRole string, adminBypass bool) (*models.Course, error) {
	course, err := s.Repo.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if adminBypass && actorRole == tokens.RoleAdmin {
		return course, nil
	}
	if course.Instructor != actorID {
		return nil, ErrNotOwner
	}
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, courseID, actorID, actorRole string, req transport.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.loadOwned(ctx, courseID, actorID, actorRole, false)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	course.UpdatedAt = time.Now().UTC()

	if err := s.Repo.SaveCourse(ctx, course); err != nil {
		return nil, err
	}
	s.reindex(ctx, course)
	return course, nil
}

func (s *CourseService) UpdateStatus(ctx context.Context, courseID string, req transport.UpdateStatusRequest) (*models.Course, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	course, err := s.Repo.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	course.Status = req.Status
	course.UpdatedAt = time.Now().UTC()

	if err := s.Repo.SaveCourse(ctx, course); err != nil {
		return nil, err
	}
	s.reindex(ctx, course)
	return course, nil
}

// Delete removes the course for its owner or an admin. The owner's
// back-reference list is always cascaded, stored content files are removed
// best-effort after the database commit.
func (s *CourseService) Delete(ctx context.Context, courseID, actorID, actorRole string) error {
	course, err := s.loadOwned(ctx, courseID, actorID, actorRole, true)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteCourse(ctx, course); err != nil {
		return err
	}

	l := logging.FromContext(ctx).With("svc", "course.delete")
	for _, item := range course.Content {
		if err := s.Files.RemoveByURL(item.URL); err != nil {
			l.Warn("content_file_remove_failed", "url", item.URL, "error", err)
		}
	}

	if err := s.Index.DeleteCourse(ctx, course.ID); err != nil {
		l.Warn("search_deindex_failed", "course_id", course.ID, "error", err)
	}

	if err := s.Producer.Publish(ctx, actorID, map[string]any{
		"type":     "course_deleted",
		"courseID": course.ID,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}
	return nil
}

// AddContent stores the uploaded file and appends a content item to the
// course. The stored file is removed again if the database write fails.
func (s *CourseService) AddContent(ctx context.Context, courseID, actorID, actorRole, title string, file *multipart.FileHeader) (*models.Course, error) {
	course, err := s.loadOwned(ctx, courseID, actorID, actorRole, false)
	if err != nil {
		return nil, err
	}

	mimeType := file.Header.Get("Content-Type")
	if !upload.Allowed(mimeType) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotAllowed, mimeType)
	}

	stored, err := s.Files.Save(file, mimeType)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = file.Filename
	}
	course.Content = append(course.Content, models.ContentItem{
		ContentID: uuid.NewString(),
		Title:     title,
		DocType:   stored.DocType,
		URL:       stored.URL,
		Completed: false,
	})
	course.UpdatedAt = time.Now().UTC()

	if err := s.Repo.SaveCourse(ctx, course); err != nil {
		if rmErr := s.Files.Remove(stored.Path); rmErr != nil {
			logging.FromContext(ctx).Warn("orphaned_upload_remove_failed", "path", stored.Path, "error", rmErr)
		}
		return nil, err
	}

	s.reindex(ctx, course)
	return course, nil
}

// Search prefers the elasticsearch index and falls back to the database when
// no index is configured.
func (s *CourseService) Search(ctx context.Context, query string, from, size int) (int64, []models.Course, error) {
	total, items, used, err := s.Index.Search(ctx, query, from, size)
	if err != nil {
		return 0, nil, err
	}
	if used {
		return total, items, nil
	}

	items, err = s.Repo.SearchCourses(ctx, query)
	if err != nil {
		return 0, nil, err
	}
	return int64(len(items)), items, nil
}
