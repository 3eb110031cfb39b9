package jobs

import (
	"context"
	"log"
	"time"

	"bankflow.backend/internal/domain/repositories"
)

// OTPCleanupJob periodically deletes expired one-time codes
type OTPCleanupJob struct {
	repo     repositories.OTPRepository
	interval time.Duration
	grace    time.Duration
	stop     chan struct{}
}

func NewOTPCleanupJob(repo repositories.OTPRepository) *OTPCleanupJob {
	return &OTPCleanupJob{
		repo:     repo,
		interval: 5 * time.Minute,
		grace:    time.Hour, // keep expired rows around briefly for audit
		stop:     make(chan struct{}),
	}
}

func (j *OTPCleanupJob) Start(ctx context.Context) {
	log.Println("🕐 Starting OTP cleanup job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ OTP cleanup job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ OTP cleanup job stopped")
			return
		case <-ticker.C:
			j.cleanup(ctx)
		}
	}
}

func (j *OTPCleanupJob) Stop() {
	close(j.stop)
}

func (j *OTPCleanupJob) cleanup(ctx context.Context) {
	cutoff := time.Now().Add(-j.grace)

	deleted, err := j.repo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Error deleting expired OTPs: %v", err)
		return
	}

	if deleted > 0 {
		log.Printf("✅ Deleted %d expired OTPs", deleted)
	}
}
