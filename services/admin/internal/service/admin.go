package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/userwale/projetskillhub/pkg/events"
	pkghash "github.com/userwale/projetskillhub/pkg/hash"
	"github.com/userwale/projetskillhub/pkg/logging"
	"github.com/userwale/projetskillhub/pkg/tokens"
	"github.com/userwale/projetskillhub/pkg/validate"
	"github.com/userwale/projetskillhub/services/admin/internal/models"
	"github.com/userwale/projetskillhub/services/admin/internal/repo"
	"github.com/userwale/projetskillhub/services/admin/internal/transport"
)

type AdminService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	ActivationKey string
	Producer      *events.Producer
}

type LoginResult struct {
	Admin *models.Admin
	Token string
}

// VerifyKey is phase one of admin registration: prove possession of the
// out-of-band activation secret and receive a short-lived capability token.
// No state is persisted; the grant lives entirely in the token.
func (s *AdminService) VerifyKey(ctx context.Context, req transport.VerifyKeyRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	candidate := strings.TrimSpace(req.ActivationKey)
	expected := strings.TrimSpace(s.ActivationKey)
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(expected)) != 1 {
		return "", ErrInvalidActivationKey
	}

	return tokens.IssueAdminCapability(s.JWTSecret, tokens.CapabilityTTL)
}

// Signup is phase two: the capability token from VerifyKey gates the actual
// registration. Expired or malformed tokens fail closed.
func (s *AdminService) Signup(ctx context.Context, capabilityToken string, req transport.SignupRequest) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "admin.signup")

	if _, err := tokens.CapabilityClaimsFromToken(capabilityToken, s.JWTSecret); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !validate.AdminPassword(req.Password) {
		return nil, fmt.Errorf("%w: password must contain at least 10 characters, one uppercase, one lowercase, one number, and one special character", ErrValidation)
	}

	pwHash, err := pkghash.HashPassword(req.Password)
	if err != nil {
		l.Error("signup_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	admin := &models.Admin{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         tokens.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}

	if err := s.Producer.Publish(ctx, admin.ID, map[string]any{
		"type":    "admin_registered",
		"adminID": admin.ID,
		"email":   admin.Email,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	token, err := tokens.IssueSession(s.JWTSecret, admin.ID, admin.Email, admin.Role, tokens.SessionTTL)
	if err != nil {
		l.Error("signup_error", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}
	return &LoginResult{Admin: admin, Token: token}, nil
}

func (s *AdminService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "admin.login")

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	admin, err := s.Repo.FindAdminByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !pkghash.CheckPassword(admin.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	admin.LastAccess = time.Now().UTC()
	if err := s.Repo.SaveAdmin(ctx, admin); err != nil {
		l.Warn("login_warning", "reason", "cannot record last access", "error", err)
	}

	token, err := tokens.IssueSession(s.JWTSecret, admin.ID, admin.Email, admin.Role, tokens.SessionTTL)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}
	return &LoginResult{Admin: admin, Token: token}, nil
}

func (s *AdminService) Profile(ctx context.Context, id string) (*models.Admin, error) {
	return s.Repo.FindAdminByID(ctx, id)
}

func (s *AdminService) UpdateProfile(ctx context.Context, id string, req transport.UpdateProfileRequest) (*models.Admin, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	admin, err := s.Repo.FindAdminByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && !strings.EqualFold(req.Email, admin.Email) {
		if _, err := s.Repo.FindAdminByEmail(ctx, req.Email); err == nil {
			return nil, repo.ErrDuplicateEmail
		}
		admin.Email = strings.ToLower(req.Email)
	}
	if req.Name != "" {
		admin.Name = req.Name
	}

	if err := s.Repo.SaveAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) ChangePassword(ctx context.Context, id string, req transport.ChangePasswordRequest) error {
	l := logging.FromContext(ctx).With("svc", "admin.change_password")

	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !validate.AdminPassword(req.NewPassword) {
		return fmt.Errorf("%w: password must contain at least 10 characters, one uppercase, one lowercase, one number, and one special character", ErrValidation)
	}

	admin, err := s.Repo.FindAdminByID(ctx, id)
	if err != nil {
		return err
	}
	if !pkghash.CheckPassword(admin.PasswordHash, req.CurrentPassword) {
		return ErrWrongPassword
	}

	pwHash, err := pkghash.HashPassword(req.NewPassword)
	if err != nil {
		l.Error("change_password_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return err
	}
	admin.PasswordHash = pwHash

	return s.Repo.SaveAdmin(ctx, admin)
}
