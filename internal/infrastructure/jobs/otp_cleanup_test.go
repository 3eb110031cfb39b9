package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"bankflow.backend/internal/domain/entities"
)

type otpCleanupRepoStub struct {
	deleted    int64
	deleteErr  error
	deleteCall int
	lastCutoff time.Time
}

func (s *otpCleanupRepoStub) Create(context.Context, *entities.OTP) error { return nil }

func (s *otpCleanupRepoStub) GetLatestUnused(context.Context, uuid.UUID, entities.OTPPurpose) (*entities.OTP, error) {
	return nil, nil
}

func (s *otpCleanupRepoStub) IncrementAttempts(context.Context, uuid.UUID) error { return nil }

func (s *otpCleanupRepoStub) MarkUsed(context.Context, uuid.UUID) error { return nil }

func (s *otpCleanupRepoStub) InvalidateUnused(context.Context, uuid.UUID, entities.OTPPurpose) error {
	return nil
}

func (s *otpCleanupRepoStub) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.deleteCall++
	s.lastCutoff = cutoff
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	return s.deleted, nil
}

func (s *otpCleanupRepoStub) DeleteByUser(context.Context, uuid.UUID) error { return nil }

func TestCleanup_UsesGracePeriodCutoff(t *testing.T) {
	repo := &otpCleanupRepoStub{deleted: 3}
	job := &OTPCleanupJob{repo: repo, interval: time.Millisecond, grace: time.Hour, stop: make(chan struct{})}

	before := time.Now().Add(-time.Hour)
	job.cleanup(context.Background())
	after := time.Now().Add(-time.Hour)

	require.Equal(t, 1, repo.deleteCall)
	require.False(t, repo.lastCutoff.Before(before))
	require.False(t, repo.lastCutoff.After(after))
}

func TestCleanup_DeleteError(t *testing.T) {
	repo := &otpCleanupRepoStub{deleteErr: errors.New("db down")}
	job := &OTPCleanupJob{repo: repo, interval: time.Millisecond, grace: time.Hour, stop: make(chan struct{})}

	job.cleanup(context.Background())
	require.Equal(t, 1, repo.deleteCall)
}

func TestStartStop_StopsByContext(t *testing.T) {
	repo := &otpCleanupRepoStub{}
	job := &OTPCleanupJob{repo: repo, interval: time.Millisecond, grace: time.Hour, stop: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestStartStop_StopsByStopChannel(t *testing.T) {
	repo := &otpCleanupRepoStub{}
	job := &OTPCleanupJob{repo: repo, interval: time.Millisecond, grace: time.Hour, stop: make(chan struct{})}

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}
