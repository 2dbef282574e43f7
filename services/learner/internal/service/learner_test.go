package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/pkg/tokens"
	"github.com/userwale/projetskillhub/services/learner/internal/models"
	"github.com/userwale/projetskillhub/services/learner/internal/repo"
	"github.com/userwale/projetskillhub/services/learner/internal/transport"
)

var testSecret = []byte("test-jwt-secret")

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Learner{}, &models.Enrollment{}))

	return &repo.GormRepo{DB: db}
}

func newLearnerService(t *testing.T) *LearnerService {
	t.Helper()

	return &LearnerService{Repo: newTestRepo(t), JWTSecret: testSecret}
}

func registerReq(email string) transport.RegisterRequest {
	return transport.RegisterRequest{
		Name:        "Bob",
		Email:       email,
		Password:    "secret123",
		Description: "curious",
	}
}

func TestLearnerService_Register_AndLogin(t *testing.T) {
	t.Parallel()

	svc := newLearnerService(t)
	ctx := context.Background()

	learner, err := svc.Register(ctx, registerReq("bob@example.com"))
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleLearner, learner.Role)
	assert.NotEqual(t, "secret123", learner.PasswordHash)

	res, err := svc.Login(ctx, transport.LoginRequest{Email: "bob@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	claims, err := tokens.SessionClaimsFromToken(res.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, learner.ID, claims.Subject)
	assert.Equal(t, tokens.RoleLearner, claims.Role)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "bob@example.com", Password: "nope12"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLearnerService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newLearnerService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("dup@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq("Dup@Example.com"))
	assert.ErrorIs(t, err, repo.ErrDuplicateEmail)
}

func TestLearnerService_UpdateProfile_NormalizesEmail(t *testing.T) {
	t.Parallel()

	svc := newLearnerService(t)
	ctx := context.Background()

	learner, err := svc.Register(ctx, registerReq("case@example.com"))
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, learner.ID, transport.UpdateProfileRequest{
		Email: "Case2@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "case2@example.com", updated.Email)

	// The mixed-case address still logs in through the lowercased lookup.
	_, err = svc.Login(ctx, transport.LoginRequest{Email: "Case2@Example.com", Password: "secret123"})
	require.NoError(t, err)

	// Uniqueness stays case-insensitive after the update.
	_, err = svc.Register(ctx, registerReq("case2@example.com"))
	assert.ErrorIs(t, err, repo.ErrDuplicateEmail)

	// Re-submitting the same address in a different casing is not a conflict
	// with the learner's own record.
	_, err = svc.UpdateProfile(ctx, learner.ID, transport.UpdateProfileRequest{
		Email: "CASE2@example.com",
	})
	require.NoError(t, err)
}

func TestLearnerService_AdminUpdate_NormalizesEmail(t *testing.T) {
	t.Parallel()

	svc := newLearnerService(t)
	ctx := context.Background()

	learner, err := svc.Register(ctx, registerReq("managedcase@example.com"))
	require.NoError(t, err)

	updated, err := svc.AdminUpdate(ctx, learner.ID, transport.AdminUpdateRequest{
		Email: "Managed2@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "managed2@example.com", updated.Email)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "managed2@example.com", Password: "secret123"})
	require.NoError(t, err)
}

func TestLearnerService_AdminUpdate_ReplacesPasswordWithoutCurrentCheck(t *testing.T) {
	t.Parallel()

	svc := newLearnerService(t)
	ctx := context.Background()

	learner, err := svc.Register(ctx, registerReq("managed@example.com"))
	require.NoError(t, err)

	_, err = svc.AdminUpdate(ctx, learner.ID, transport.AdminUpdateRequest{
		Name:     "Renamed",
		Password: "adminset",
	})
	require.NoError(t, err)

	// The admin-set password works; the old one no longer does.
	_, err = svc.Login(ctx, transport.LoginRequest{Email: "managed@example.com", Password: "adminset"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, transport.LoginRequest{Email: "managed@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := svc.Profile(ctx, learner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestLearnerService_Delete_RemovesEnrollments(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &LearnerService{Repo: r, JWTSecret: testSecret}
	enrollments := &EnrollmentService{Repo: r}
	ctx := context.Background()

	learner, err := svc.Register(ctx, registerReq("leaver@example.com"))
	require.NoError(t, err)

	_, err = enrollments.Enroll(ctx, learner.ID, transport.EnrollRequest{CourseID: "course-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, learner.ID))

	_, err = svc.Profile(ctx, learner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	items, err := enrollments.ListByLearner(ctx, learner.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
