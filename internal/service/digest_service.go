package service

import (
	"context"
	"log"
	"time"

	"mindcare/internal/repository"
)

// digestInterval is the minimum gap between two digests for one user
const digestInterval = 7 * 24 * time.Hour

// DigestService sends the weekly mood summary email to opted-in users
type DigestService struct {
	userRepo *repository.UserRepository
	journal  *JournalService
	email    *EmailService
}

// NewDigestService creates a new digest service
func NewDigestService(userRepo *repository.UserRepository, journal *JournalService, email *EmailService) *DigestService {
	return &DigestService{
		userRepo: userRepo,
		journal:  journal,
		email:    email,
	}
}

// Run sends digests to every due recipient. Failures for one user are
// logged and do not block the rest of the batch.
func (s *DigestService) Run(ctx context.Context) error {
	if !s.email.IsEnabled() {
		return nil
	}

	cutoff := time.Now().Add(-digestInterval)
	recipients, err := s.userRepo.GetDigestRecipients(cutoff)
	if err != nil {
		return err
	}

	for _, user := range recipients {
		report, err := s.journal.WeeklyReport(user.ID)
		if err != nil {
			log.Printf("digest: failed to build report for user %d: %v", user.ID, err)
			continue
		}

		// Nothing logged this week, nothing to summarize
		if report.TotalEntries == 0 {
			continue
		}

		if err := s.email.SendWeeklyReportEmail(ctx, user.Email, user.Name, *report); err != nil {
			log.Printf("digest: failed to send to user %d: %v", user.ID, err)
			continue
		}

		if err := s.userRepo.MarkDigestSent(user.ID, time.Now()); err != nil {
			log.Printf("digest: failed to mark sent for user %d: %v", user.ID, err)
		}
	}

	return nil
}

// Start runs the digest loop until the context is cancelled, checking once
// per day for users due a summary
func (s *DigestService) Start(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Run(ctx); err != nil {
				log.Printf("digest run failed: %v", err)
			}
		}
	}
}
