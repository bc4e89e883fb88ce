package services

import (
	"context"
	"log"
	"time"

	"myfinbank-admin/internal/config"
	"myfinbank-admin/internal/pkg/logging"

	"github.com/robfig/cron/v3"
)

// PendingSummarizer reports the size of the pending queue and its oldest entry
type PendingSummarizer interface {
	PendingSummary(ctx context.Context) (int64, uint, error)
}

// CronService runs scheduled jobs
type CronService struct {
	cron       *cron.Cron
	spec       string
	digestTo   string
	summarizer PendingSummarizer
	notifier   Notifier
	logger     logging.Logger
	now        Clock
	timeout    time.Duration
}

// NewCronService creates the scheduler with the pending-loan digest job.
// notifier may be nil; the digest is then only logged.
func NewCronService(cfg *config.Config, summarizer PendingSummarizer, notifier Notifier, logger logging.Logger) *CronService {
	return &CronService{
		cron:       cron.New(),
		spec:       cfg.Notify.PendingDigestCron,
		digestTo:   cfg.Notify.AdminDigestEmail,
		summarizer: summarizer,
		notifier:   notifier,
		logger:     logger.With("component", "cron"),
		now:        time.Now,
		timeout:    cfg.NotifyTimeout(),
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunPendingDigest); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("⏰ CronService started (pending digest: %s)", s.spec)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

// RunPendingDigest counts pending applications and mails the summary
func (s *CronService) RunPendingDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	count, oldest, err := s.summarizer.PendingSummary(ctx)
	if err != nil {
		s.logger.Error(ctx, "pending digest failed", "error", err)
		return
	}

	if s.digestTo == "" || s.notifier == nil {
		s.logger.Info(ctx, "pending digest", "pending", count, "oldest_loan_id", oldest)
		return
	}

	err = s.notifier.PendingDigest(ctx, DigestNotice{
		To:           s.digestTo,
		PendingCount: count,
		OldestLoanID: oldest,
		GeneratedAt:  s.now(),
	})
	if err != nil {
		s.logger.Warn(ctx, "pending digest not delivered", "to", s.digestTo, "error", err)
		return
	}

	s.logger.Info(ctx, "pending digest sent", "to", s.digestTo, "pending", count)
}
