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
	"github.com/userwale/projetskillhub/services/learner/internal/models"
	"github.com/userwale/projetskillhub/services/learner/internal/repo"
	"github.com/userwale/projetskillhub/services/learner/internal/transport"
)

type LearnerService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Producer  *events.Producer
}

type LoginResult struct {
	Learner *models.Learner
	Token   string
}

func (s *LearnerService) Register(ctx context.Context, req transport.RegisterRequest) (*models.Learner, error) {
	l := logging.FromContext(ctx).With("svc", "learner.register")

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !validate.UserPassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	pwHash, err := pkghash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	learner := &models.Learner{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		Description:  req.Description,
		Role:         tokens.RoleLearner,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.CreateLearner(ctx, learner); err != nil {
		return nil, err
	}

	if err := s.Producer.Publish(ctx, learner.ID, map[string]any{
		"type":      "learner_registered",
		"learnerID": learner.ID,
		"email":     learner.Email,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	return learner, nil
}

func (s *LearnerService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "learner.login")

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	learner, err := s.Repo.FindLearnerByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !pkghash.CheckPassword(learner.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := tokens.IssueSession(s.JWTSecret, learner.ID, learner.Email, learner.Role, tokens.SessionTTL)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}
	return &LoginResult{Learner: learner, Token: token}, nil
}

func (s *LearnerService) Profile(ctx context.Context, id string) (*models.Learner, error) {
	return s.Repo.FindLearnerByID(ctx, id)
}

func (s *LearnerService) List(ctx context.Context) ([]models.Learner, error) {
	return s.Repo.ListLearners(ctx)
}

func (s *LearnerService) UpdateProfile(ctx context.Context, id string, req transport.UpdateProfileRequest) (*models.Learner, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	learner, err := s.Repo.FindLearnerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && !strings.EqualFold(req.Email, learner.Email) {
		if _, err := s.Repo.FindLearnerByEmail(ctx, req.Email); err == nil {
			return nil, repo.ErrDuplicateEmail
		}
		learner.Email = strings.ToLower(req.Email)
	}
	if req.Name != "" {
		learner.Name = req.Name
	}
	if req.Description != "" {
		learner.Description = req.Description
	}

	if req.CurrentPassword != "" && req.NewPassword != "" {
		if !pkghash.CheckPassword(learner.PasswordHash, req.CurrentPassword) {
			return nil, ErrInvalidCredentials
		}
		if !validate.UserPassword(req.NewPassword) {
			return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
		}
		pwHash, err := pkghash.HashPassword(req.NewPassword)
		if err != nil {
			return nil, err
		}
		learner.PasswordHash = pwHash
	}

	if err := s.Repo.SaveLearner(ctx, learner); err != nil {
		return nil, err
	}
	return learner, nil
}

// AdminUpdate applies an admin-initiated update. Password replacement skips
// the current-password check on purpose.
func (s *LearnerService) AdminUpdate(ctx context.Context, id string, req transport.AdminUpdateRequest) (*models.Learner, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	learner, err := s.Repo.FindLearnerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && !strings.EqualFold(req.Email, learner.Email) {
		if _, err := s.Repo.FindLearnerByEmail(ctx, req.Email); err == nil {
			return nil, repo.ErrDuplicateEmail
		}
		learner.Email = strings.ToLower(req.Email)
	}
	if req.Name != "" {
		learner.Name = req.Name
	}
	if req.Description != "" {
		learner.Description = req.Description
	}
	if req.Password != "" {
		if !validate.UserPassword(req.Password) {
			return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
		}
		pwHash, err := pkghash.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		learner.PasswordHash = pwHash
	}

	if err := s.Repo.SaveLearner(ctx, learner); err != nil {
		return nil, err
	}
	return learner, nil
}

func (s *LearnerService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteLearner(ctx, id); err != nil {
		return err
	}
	l := logging.FromContext(ctx).With("svc", "learner.delete")
	if err := s.Producer.Publish(ctx, id, map[string]any{
		"type":      "learner_deleted",
		"learnerID": id,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}
	return nil
}
