package app

import (
	"context"
	"fmt"
	"time"

	"bearpath/domain/core"
	"bearpath/domain/phonelog"
	"bearpath/ports"
)

// PhoneLogService manages the service desk call log.
type PhoneLogService struct {
	repo ports.PhoneLogRepository
}

// NewPhoneLogService creates a new phone log service
func NewPhoneLogService(repo ports.PhoneLogRepository) *PhoneLogService {
	return &PhoneLogService{repo: repo}
}

// Log normalizes and stores one call, returning the stored entry.
func (s *PhoneLogService) Log(ctx context.Context, entry phonelog.Entry) (phonelog.Entry, error) {
	now := time.Now()
	entry = entry.Normalize(now)
	entry.ID = core.EntryID(core.NewID())
	entry.CreatedAt = now

	if err := s.repo.Append(ctx, entry); err != nil {
		return phonelog.Entry{}, fmt.Errorf("failed to log call: %w", err)
	}
	return entry, nil
}

// List returns all logged calls, newest first.
func (s *PhoneLogService) List(ctx context.Context) ([]phonelog.Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}
	return phonelog.SortNewestFirst(entries), nil
}

// Update normalizes and rewrites one logged call.
func (s *PhoneLogService) Update(ctx context.Context, entry phonelog.Entry) error {
	entry = entry.Normalize(time.Now())
	if err := s.repo.Update(ctx, entry); err != nil {
		return err
	}
	return nil
}

// MarkDone flips the done flag on one logged call.
func (s *PhoneLogService) MarkDone(ctx context.Context, id core.EntryID, done bool) error {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list calls: %w", err)
	}
	for _, entry := range entries {
		if entry.ID == id {
			entry.Done = done
			return s.repo.Update(ctx, entry)
		}
	}
	return fmt.Errorf("%w: %s", core.ErrEntryNotFound, id)
}

// Delete removes one logged call.
func (s *PhoneLogService) Delete(ctx context.Context, id core.EntryID) error {
	return s.repo.Delete(ctx, id)
}

// ExportCSV renders the call log for download.
func (s *PhoneLogService) ExportCSV(ctx context.Context) ([]byte, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return phonelog.ExportCSV(entries)
}

// EmailDraft builds a mailto link for following up on one call.
func (s *PhoneLogService) EmailDraft(ctx context.Context, id core.EntryID, recipients []string) (string, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list calls: %w", err)
	}
	for _, entry := range entries {
		if entry.ID == id {
			return phonelog.MailtoDraft(entry, recipients), nil
		}
	}
	return "", fmt.Errorf("%w: %s", core.ErrEntryNotFound, id)
}
