package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/services/learner/internal/repo"
	"github.com/userwale/projetskillhub/services/learner/internal/transport"
)

func newEnrollmentEnv(t *testing.T) (*EnrollmentService, string) {
	t.Helper()

	r := newTestRepo(t)
	learners := &LearnerService{Repo: r, JWTSecret: testSecret}

	learner, err := learners.Register(context.Background(), registerReq("student@example.com"))
	require.NoError(t, err)

	return &EnrollmentService{Repo: r}, learner.ID
}

func TestEnrollmentService_Enroll_OncePerCourse(t *testing.T) {
	t.Parallel()

	svc, learnerID := newEnrollmentEnv(t)
	ctx := context.Background()

	enrollment, err := svc.Enroll(ctx, learnerID, transport.EnrollRequest{CourseID: "course-1"})
	require.NoError(t, err)
	assert.Equal(t, learnerID, enrollment.LearnerID)
	assert.Empty(t, enrollment.Progress)

	_, err = svc.Enroll(ctx, learnerID, transport.EnrollRequest{CourseID: "course-1"})
	assert.ErrorIs(t, err, repo.ErrAlreadyEnrolled)

	// A different course is fine.
	_, err = svc.Enroll(ctx, learnerID, transport.EnrollRequest{CourseID: "course-2"})
	require.NoError(t, err)

	items, err := svc.ListByLearner(ctx, learnerID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestEnrollmentService_Unenroll(t *testing.T) {
	t.Parallel()

	svc, learnerID := newEnrollmentEnv(t)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, learnerID, transport.EnrollRequest{CourseID: "course-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Unenroll(ctx, learnerID, transport.EnrollRequest{CourseID: "course-1"}))

	err = svc.Unenroll(ctx, learnerID, transport.EnrollRequest{CourseID: "course-1"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEnrollmentService_UpdateProgress_UpsertsByContentID(t *testing.T) {
	t.Parallel()

	svc, learnerID := newEnrollmentEnv(t)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, learnerID, transport.EnrollRequest{CourseID: "course-1"})
	require.NoError(t, err)

	// Append a new entry.
	enrollment, err := svc.UpdateProgress(ctx, learnerID, transport.ProgressRequest{
		CourseID: "course-1", ContentID: "content-a", Completed: true,
	})
	require.NoError(t, err)
	require.Len(t, enrollment.Progress, 1)
	assert.True(t, enrollment.Progress[0].Completed)

	// Second content id appends.
	enrollment, err = svc.UpdateProgress(ctx, learnerID, transport.ProgressRequest{
		CourseID: "course-1", ContentID: "content-b", Completed: false,
	})
	require.NoError(t, err)
	require.Len(t, enrollment.Progress, 2)

	// Same content id updates in place, no duplicate entry.
	enrollment, err = svc.UpdateProgress(ctx, learnerID, transport.ProgressRequest{
		CourseID: "course-1", ContentID: "content-a", Completed: false,
	})
	require.NoError(t, err)
	require.Len(t, enrollment.Progress, 2)
	assert.False(t, enrollment.Progress[0].Completed)

	got, err := svc.Get(ctx, learnerID, "course-1")
	require.NoError(t, err)
	assert.Len(t, got.Progress, 2)
}

func TestEnrollmentService_UpdateProgress_NoEnrollment(t *testing.T) {
	t.Parallel()

	svc, learnerID := newEnrollmentEnv(t)

	_, err := svc.UpdateProgress(context.Background(), learnerID, transport.ProgressRequest{
		CourseID: "never-enrolled", ContentID: "c", Completed: true,
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
