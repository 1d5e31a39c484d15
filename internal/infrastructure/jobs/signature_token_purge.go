package jobs

import (
	"context"
	"log"
	"time"
)

type expiredTokenPurger interface {
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// SignatureTokenPurgeJob deletes expired signing tokens on a schedule.
// Tokens expire passively on validation; this keeps the table from growing
// without bound.
type SignatureTokenPurgeJob struct {
	repo     expiredTokenPurger
	interval time.Duration
	stop     chan struct{}
}

func NewSignatureTokenPurgeJob(repo expiredTokenPurger, interval time.Duration) *SignatureTokenPurgeJob {
	return &SignatureTokenPurgeJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *SignatureTokenPurgeJob) Start(ctx context.Context) {
	log.Println("🕐 Starting signature token purge job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Signature token purge job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Signature token purge job stopped")
			return
		case <-ticker.C:
			j.purgeExpiredTokens(ctx)
		}
	}
}

func (j *SignatureTokenPurgeJob) Stop() {
	close(j.stop)
}

func (j *SignatureTokenPurgeJob) purgeExpiredTokens(ctx context.Context) {
	purged, err := j.repo.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("❌ Error purging expired signature tokens: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("✅ Purged %d expired signature tokens", purged)
	}
}
