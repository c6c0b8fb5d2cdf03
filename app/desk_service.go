package app

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"bearpath/domain/desk"
	"bearpath/domain/tabular"
	"bearpath/ports"

	"github.com/montanaflynn/stats"
)

// DeskService coordinates roster imports, weekly syncs, edits and exports.
// A mutex serializes mutations so a sync and an edit never interleave.
type DeskService struct {
	repo ports.RosterRepository
	mu   sync.Mutex
}

// NewDeskService creates a new desk service
func NewDeskService(repo ports.RosterRepository) *DeskService {
	return &DeskService{repo: repo}
}

// SyncReport summarizes what a weekly sync changed.
type SyncReport struct {
	Added       int                  `json:"added"`
	CarriedOver int                  `json:"carried_over"`
	Removed     int                  `json:"removed"`
	Retained    int                  `json:"retained"`
	RowCount    int                  `json:"row_count"`
	Skipped     []tabular.SkippedRow `json:"skipped,omitempty"`
	Dropped     []string             `json:"dropped_columns,omitempty"`
}

// Summary aggregates the roster for the dashboard header.
type Summary struct {
	RowCount    int            `json:"row_count"`
	ThisWeek    int            `json:"this_week"`
	ByStatus    map[string]int `json:"by_status"`
	MeanWeeks   float64        `json:"mean_weeks"`
	MedianWeeks float64        `json:"median_weeks"`
	MaxWeeks    float64        `json:"max_weeks"`
}

// SyncUpload imports an uploaded table and merges it into the stored roster.
func (s *DeskService) SyncUpload(ctx context.Context, raw tabular.RawTable, asOf time.Time) (SyncReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := tabular.Import(raw)
	if err != nil {
		return SyncReport{}, err
	}

	current, tracking, err := s.repo.Load(ctx)
	if err != nil {
		return SyncReport{}, fmt.Errorf("failed to load roster: %w", err)
	}

	merged := desk.WeeklySync(current, tracking, result.Batch, asOf)

	message := fmt.Sprintf("weekly sync: %d added, %d carried over, %d removed, %d retained",
		merged.Added, merged.CarriedOver, merged.Removed, merged.Retained)
	if err := s.repo.Save(ctx, merged.Roster, merged.Tracking, message); err != nil {
		return SyncReport{}, fmt.Errorf("failed to save roster: %w", err)
	}

	log.Printf("[DeskService] %s (%d skipped rows, %d dropped columns)",
		message, len(result.Skipped), len(result.Dropped))

	return SyncReport{
		Added:       merged.Added,
		CarriedOver: merged.CarriedOver,
		Removed:     merged.Removed,
		Retained:    merged.Retained,
		RowCount:    merged.Roster.Len(),
		Skipped:     result.Skipped,
		Dropped:     result.Dropped,
	}, nil
}

// Roster returns the stored roster sorted for display, with tracking.
func (s *DeskService) Roster(ctx context.Context) (tabular.Batch, map[string]desk.Tracking, error) {
	roster, tracking, err := s.repo.Load(ctx)
	if err != nil {
		return tabular.Batch{}, nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return desk.SortForDisplay(roster), tracking, nil
}

// EditField updates one cell of one roster row and persists the result.
func (s *DeskService) EditField(ctx context.Context, rowID, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := tabular.ParseField(field)
	if err != nil {
		return err
	}

	roster, tracking, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	edited, err := roster.Edit(rowID, f, value)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("edit %s.%s", rowID, f)
	if err := s.repo.Save(ctx, edited, tracking, message); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	return nil
}

// ExportCSV renders the stored roster in the canonical column order.
func (s *DeskService) ExportCSV(ctx context.Context) ([]byte, error) {
	roster, _, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return tabular.Export(roster)
}

// RecomputeWeeks refreshes the weeks_on_list column from tracking dates.
func (s *DeskService) RecomputeWeeks(ctx context.Context, asOf time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster, tracking, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	updated := desk.RecomputeWeeks(roster, tracking, asOf)
	if err := s.repo.Save(ctx, updated, tracking, "recompute weeks"); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	return nil
}

// Summarize computes dashboard aggregates over the stored roster.
func (s *DeskService) Summarize(ctx context.Context) (Summary, error) {
	roster, tracking, err := s.repo.Load(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load roster: %w", err)
	}

	summary := Summary{
		RowCount: roster.Len(),
		ByStatus: desk.CountByStatus(roster),
	}
	for _, track := range tracking {
		if track.ThisWeek {
			summary.ThisWeek++
		}
	}

	var weeks []float64
	for _, row := range roster.Rows() {
		if w, err := strconv.ParseFloat(row.WeeksOnList, 64); err == nil {
			weeks = append(weeks, w)
		}
	}
	if len(weeks) > 0 {
		summary.MeanWeeks, _ = stats.Mean(weeks)
		summary.MedianWeeks, _ = stats.Median(weeks)
		summary.MaxWeeks, _ = stats.Max(weeks)
	}

	return summary, nil
}
