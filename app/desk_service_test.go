package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"bearpath/domain/core"
	"bearpath/domain/desk"
	"bearpath/domain/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRosterRepo keeps the roster in memory and records save messages.
type fakeRosterRepo struct {
	roster   tabular.Batch
	tracking map[string]desk.Tracking
	messages []string
}

func (f *fakeRosterRepo) Load(ctx context.Context) (tabular.Batch, map[string]desk.Tracking, error) {
	tracking := make(map[string]desk.Tracking, len(f.tracking))
	for k, v := range f.tracking {
		tracking[k] = v
	}
	return f.roster, tracking, nil
}

func (f *fakeRosterRepo) Save(ctx context.Context, roster tabular.Batch, tracking map[string]desk.Tracking, message string) error {
	f.roster = roster
	f.tracking = tracking
	f.messages = append(f.messages, message)
	return nil
}

func newFakeRosterRepo() *fakeRosterRepo {
	return &fakeRosterRepo{tracking: map[string]desk.Tracking{}}
}

func TestSyncUpload_PopulatesEmptyRoster(t *testing.T) {
	repo := newFakeRosterRepo()
	svc := NewDeskService(repo)

	raw := tabular.RawTable{
		Headers: []string{"Cust ID", "Cust Email", "Notes"},
		Records: [][]string{
			{"1", "a@x.com", "ok"},
			{"2", "b@x.com", ""},
		},
	}
	asOf := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	report, err := svc.SyncUpload(context.Background(), raw, asOf)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 0, report.CarriedOver)
	assert.Equal(t, 2, report.RowCount)
	assert.Equal(t, 2, repo.roster.Len())
	assert.True(t, repo.tracking["1"].ThisWeek)
	require.Len(t, repo.messages, 1)
}

func TestSyncUpload_RejectsUnrecognizableTable(t *testing.T) {
	repo := newFakeRosterRepo()
	svc := NewDeskService(repo)

	raw := tabular.RawTable{
		Headers: []string{"Foo", "Bar"},
		Records: [][]string{{"1", "2"}},
	}

	_, err := svc.SyncUpload(context.Background(), raw, time.Now())
	assert.True(t, errors.Is(err, core.ErrNoCanonicalColumns))
	assert.Equal(t, 0, repo.roster.Len())
	assert.Empty(t, repo.messages, "nothing should be saved on a failed import")
}

func TestSyncUpload_SecondWeekCarriesOver(t *testing.T) {
	repo := newFakeRosterRepo()
	svc := NewDeskService(repo)
	ctx := context.Background()

	week1 := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	week2 := week1.AddDate(0, 0, 7)

	upload := func(ids []string, asOf time.Time) SyncReport {
		records := make([][]string, len(ids))
		for i, id := range ids {
			records[i] = []string{id, ""}
		}
		report, err := svc.SyncUpload(ctx, tabular.RawTable{
			Headers: []string{"Task ID", "Notes"},
			Records: records,
		}, asOf)
		require.NoError(t, err)
		return report
	}

	upload([]string{"T-1", "T-2"}, week1)

	// Operator works the list between uploads.
	require.NoError(t, svc.EditField(ctx, "T-1", "status", desk.StatusReady))
	require.NoError(t, svc.EditField(ctx, "T-2", "notes", "called vendor"))

	report := upload([]string{"T-2", "T-3"}, week2)

	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 1, report.CarriedOver)
	assert.Equal(t, 1, report.Removed, "T-1 was marked ready and should drop off")

	row, ok := repo.roster.Find("T-2")
	require.True(t, ok)
	assert.Equal(t, "called vendor", row.Notes, "operator notes survive the sync")
	assert.Equal(t, "2", row.WeeksOnList)
}

func TestEditField_UnknownFieldLeavesRosterAlone(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.roster = tabular.NewBatch([]tabular.Row{{Identifier: "T-1", Notes: "before"}})
	svc := NewDeskService(repo)

	err := svc.EditField(context.Background(), "T-1", "po_number", "x")
	assert.True(t, errors.Is(err, core.ErrUnknownField))

	row, _ := repo.roster.Find("T-1")
	assert.Equal(t, "before", row.Notes)
	assert.Empty(t, repo.messages)
}

func TestEditField_RowNotFound(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.roster = tabular.NewBatch([]tabular.Row{{Identifier: "T-1"}})
	svc := NewDeskService(repo)

	err := svc.EditField(context.Background(), "T-9", "notes", "x")
	assert.True(t, errors.Is(err, core.ErrRowNotFound))
}

func TestExportCSV_HeaderAndBlankFill(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.roster = tabular.NewBatch([]tabular.Row{
		{Identifier: "1", Email: "a@x.com", Notes: "ok"},
	})
	svc := NewDeskService(repo)

	out, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t,
		"identifier,name,address,email,status,weeks_on_list,notes\n1,,,a@x.com,,,ok\n",
		string(out))
}

func TestSummarize(t *testing.T) {
	repo := newFakeRosterRepo()
	repo.roster = tabular.NewBatch([]tabular.Row{
		{Identifier: "T-1", Status: desk.StatusBackordered, WeeksOnList: "1"},
		{Identifier: "T-2", Status: desk.StatusBackordered, WeeksOnList: "3"},
		{Identifier: "T-3", Status: desk.StatusReady, WeeksOnList: "8"},
		{Identifier: "T-4", Status: "Mystery", WeeksOnList: ""},
	})
	repo.tracking = map[string]desk.Tracking{
		"T-1": {ThisWeek: true},
		"T-2": {ThisWeek: true},
		"T-3": {ThisWeek: false},
	}
	svc := NewDeskService(repo)

	summary, err := svc.Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.RowCount)
	assert.Equal(t, 2, summary.ThisWeek)
	assert.Equal(t, 2, summary.ByStatus[desk.StatusBackordered])
	assert.Equal(t, 1, summary.ByStatus[desk.StatusReady])
	assert.InDelta(t, 4.0, summary.MeanWeeks, 1e-9)
	assert.InDelta(t, 3.0, summary.MedianWeeks, 1e-9)
	assert.InDelta(t, 8.0, summary.MaxWeeks, 1e-9)
}

func TestRecomputeWeeks(t *testing.T) {
	firstSeen := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	asOf := firstSeen.AddDate(0, 0, 21)

	repo := newFakeRosterRepo()
	repo.roster = tabular.NewBatch([]tabular.Row{{Identifier: "T-1", WeeksOnList: "1"}})
	repo.tracking = map[string]desk.Tracking{"T-1": {FirstSeen: firstSeen, LastSeen: firstSeen}}
	svc := NewDeskService(repo)

	require.NoError(t, svc.RecomputeWeeks(context.Background(), asOf))

	row, _ := repo.roster.Find("T-1")
	assert.Equal(t, "4", row.WeeksOnList)
}
