package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/pkg/tokens"
	"github.com/userwale/projetskillhub/services/instructor/internal/models"
	"github.com/userwale/projetskillhub/services/instructor/internal/repo"
	"github.com/userwale/projetskillhub/services/instructor/internal/transport"
)

var testSecret = []byte("test-jwt-secret")

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Instructor{}, &models.Course{}))

	return &repo.GormRepo{DB: db}
}

func newInstructorService(t *testing.T) *InstructorService {
	t.Helper()

	return &InstructorService{Repo: newTestRepo(t), JWTSecret: testSecret}
}

func signupReq(email string) transport.SignupRequest {
	return transport.SignupRequest{
		Name:     "Alice",
		Email:    email,
		Password: "secret123",
		Title:    "Professor",
	}
}

func TestInstructorService_Signup_IssuesSessionToken(t *testing.T) {
	t.Parallel()

	svc := newInstructorService(t)
	ctx := context.Background()

	res, err := svc.Signup(ctx, signupReq("alice@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, tokens.RoleInstructor, res.Instructor.Role)

	claims, err := tokens.SessionClaimsFromToken(res.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, res.Instructor.ID, claims.Subject)
	assert.Equal(t, tokens.RoleInstructor, claims.Role)
}

func TestInstructorService_Signup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newInstructorService(t)
	ctx := context.Background()

	first, err := svc.Signup(ctx, signupReq("dup@example.com"))
	require.NoError(t, err)

	// Case-insensitive: the second signup collides even with different casing.
	_, err = svc.Signup(ctx, signupReq("DUP@example.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.ErrDuplicateEmail)

	// The first identity is unaffected.
	got, err := svc.Profile(ctx, first.Instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, "dup@example.com", got.Email)
}

func TestInstructorService_Signup_Validation(t *testing.T) {
	t.Parallel()

	svc := newInstructorService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.SignupRequest
	}{
		{name: "missing email", req: transport.SignupRequest{Name: "A", Password: "secret123", Title: "T"}},
		{name: "bad email", req: transport.SignupRequest{Name: "A", Email: "nope", Password: "secret123", Title: "T"}},
		{name: "short password", req: transport.SignupRequest{Name: "A", Email: "a@b.com", Password: "abc", Title: "T"}},
		{name: "missing title", req: transport.SignupRequest{Name: "A", Email: "a@b.com", Password: "secret123"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Signup(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestInstructorService_Login(t *testing.T) {
	t.Parallel()

	svc := newInstructorService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupReq("login@example.com"))
	require.NoError(t, err)

	res, err := svc.Login(ctx, transport.LoginRequest{Email: "login@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "login@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestInstructorService_UpdateProfile_ChangesPasswordWithCurrentCheck(t *testing.T) {
	t.Parallel()

	svc := newInstructorService(t)
	ctx := context.Background()

	res, err := svc.Signup(ctx, signupReq("pw@example.com"))
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, res.Instructor.ID, transport.UpdateProfileRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	require.Error(t, err)

	_, err = svc.UpdateProfile(ctx, res.Instructor.ID, transport.UpdateProfileRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "pw@example.com", Password: "newsecret"})
	require.NoError(t, err)
}

func TestInstructorService_UpdateProfile_NormalizesEmail(t *testing.T) {
	t.Parallel()

	svc := newInstructorService(t)
	ctx := context.Background()

	res, err := svc.Signup(ctx, signupReq("case@example.com"))
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, res.Instructor.ID, transport.UpdateProfileRequest{
		Email: "Case2@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "case2@example.com", updated.Email)

	// The mixed-case address still logs in through the lowercased lookup.
	_, err = svc.Login(ctx, transport.LoginRequest{Email: "Case2@Example.com", Password: "secret123"})
	require.NoError(t, err)

	// Uniqueness stays case-insensitive after the update.
	_, err = svc.Signup(ctx, signupReq("case2@example.com"))
	assert.ErrorIs(t, err, repo.ErrDuplicateEmail)
}

func TestInstructorService_Delete_OrphansCourses(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &InstructorService{Repo: r, JWTSecret: testSecret}
	courses := &CourseService{Repo: r}
	ctx := context.Background()

	res, err := svc.Signup(ctx, signupReq("gone@example.com"))
	require.NoError(t, err)

	course, err := courses.Create(ctx, res.Instructor.ID, transport.CreateCourseRequest{
		Title: "X", Description: "Y", Category: "programming",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, res.Instructor.ID))

	_, err = svc.Profile(ctx, res.Instructor.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Courses stay behind with a dangling owner reference.
	got, err := courses.Get(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Instructor.ID, got.Instructor)
}
