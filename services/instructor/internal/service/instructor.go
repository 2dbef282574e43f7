package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/userwale/projetskillhub/pkg/events"
	pkghash "github.com/userwale/projetskillhub/pkg/hash"
	"github.com/userwale/projetskillhub/pkg/logging"
	"github.com/userwale/projetskillhub/pkg/tokens"
	"github.com/userwale/projetskillhub/pkg/validate"
	"github.com/userwale/projetskillhub/services/instructor/internal/models"
	"github.com/userwale/projetskillhub/services/instructor/internal/repo"
	"github.com/userwale/projetskillhub/services/instructor/internal/transport"
)

type InstructorService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Producer  *events.Producer
}

type SignupResult struct {
	Instructor *models.Instructor
	Token      string
}

func (s *InstructorService) Signup(ctx context.Context, req transport.SignupRequest) (*SignupResult, error) {
	l := logging.FromContext(ctx).With("svc", "instructor.signup")

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !validate.UserPassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	pwHash, err := pkghash.HashPassword(req.Password)
	if err != nil {
		l.Error("signup_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	inst := &models.Instructor{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		Title:        req.Title,
		Courses:      []string{},
		Role:         tokens.RoleInstructor,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.CreateInstructor(ctx, inst); err != nil {
		return nil, err
	}

	token, err := tokens.IssueSession(s.JWTSecret, inst.ID, inst.Email, inst.Role, tokens.SessionTTL)
	if err != nil {
		l.Error("signup_error", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	if err := s.Producer.Publish(ctx, inst.ID, map[string]any{
		"type":         "instructor_registered",
		"instructorID": inst.ID,
		"email":        inst.Email,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	return &SignupResult{Instructor: inst, Token: token}, nil
}

func (s *InstructorService) Login(ctx context.Context, req transport.LoginRequest) (*SignupResult, error) {
	l := logging.FromContext(ctx).With("svc", "instructor.login")

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	inst, err := s.Repo.FindInstructorByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !pkghash.CheckPassword(inst.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := tokens.IssueSession(s.JWTSecret, inst.ID, inst.Email, inst.Role, tokens.SessionTTL)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}
	return &SignupResult{Instructor: inst, Token: token}, nil
}

func (s *InstructorService) Profile(ctx context.Context, id string) (*models.Instructor, error) {
	return s.Repo.FindInstructorByID(ctx, id)
}

func (s *InstructorService) List(ctx context.Context) ([]models.Instructor, error) {
	return s.Repo.ListInstructors(ctx)
}

func (s *InstructorService) UpdateProfile(ctx context.Context, id string, req transport.UpdateProfileRequest) (*models.Instructor, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	inst, err := s.Repo.FindInstructorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		inst.Name = req.Name
	}
	if req.Title != "" {
		inst.Title = req.Title
	}
	if req.Email != "" && !strings.EqualFold(req.Email, inst.Email) {
		if _, err := s.Repo.FindInstructorByEmail(ctx, req.Email); err == nil {
			return nil, repo.ErrDuplicateEmail
		}
		inst.Email = strings.ToLower(req.Email)
	}

	if req.CurrentPassword != "" && req.NewPassword != "" {
		if !pkghash.CheckPassword(inst.PasswordHash, req.CurrentPassword) {
			return nil, ErrInvalidCredentials
		}
		if !validate.UserPassword(req.NewPassword) {
			return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
		}
		pwHash, err := pkghash.HashPassword(req.NewPassword)
		if err != nil {
			return nil, err
		}
		inst.PasswordHash = pwHash
	}

	if err := s.Repo.SaveInstructor(ctx, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// Delete removes the instructor identity; their courses are deliberately left
// in place with a dangling owner reference.
func (s *InstructorService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteInstructor(ctx, id); err != nil {
		return err
	}
	l := logging.FromContext(ctx).With("svc", "instructor.delete")
	if err := s.Producer.Publish(ctx, id, map[string]any{
		"type":         "instructor_deleted",
		"instructorID": id,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}
	return nil
}
