package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bearpath/app"
	"bearpath/domain/core"
	"bearpath/domain/desk"
	"bearpath/domain/phonelog"
	"bearpath/domain/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRosterRepo struct {
	roster   tabular.Batch
	tracking map[string]desk.Tracking
}

func (m *memRosterRepo) Load(ctx context.Context) (tabular.Batch, map[string]desk.Tracking, error) {
	return m.roster, m.tracking, nil
}

func (m *memRosterRepo) Save(ctx context.Context, roster tabular.Batch, tracking map[string]desk.Tracking, message string) error {
	m.roster = roster
	m.tracking = tracking
	return nil
}

type memPhoneLogRepo struct {
	entries []phonelog.Entry
}

func (m *memPhoneLogRepo) List(ctx context.Context) ([]phonelog.Entry, error) {
	return append([]phonelog.Entry(nil), m.entries...), nil
}

func (m *memPhoneLogRepo) Append(ctx context.Context, entry phonelog.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memPhoneLogRepo) Update(ctx context.Context, entry phonelog.Entry) error {
	for i := range m.entries {
		if m.entries[i].ID == entry.ID {
			m.entries[i] = entry
			return nil
		}
	}
	return core.ErrEntryNotFound
}

func (m *memPhoneLogRepo) Delete(ctx context.Context, id core.EntryID) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return core.ErrEntryNotFound
}

func newTestApp(roster *memRosterRepo) *App {
	if roster.tracking == nil {
		roster.tracking = map[string]desk.Tracking{}
	}
	return NewApp(Config{Port: "0"},
		app.NewDeskService(roster),
		app.NewPhoneLogService(&memPhoneLogRepo{}),
	)
}

func TestRosterSync_CSVUpload(t *testing.T) {
	a := newTestApp(&memRosterRepo{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "weekly.csv")
	require.NoError(t, err)
	part.Write([]byte("Cust ID,Cust Email,Notes\n1,a@x.com,ok\n"))
	require.NoError(t, mw.WriteField("sync_date", "2025-03-03"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/roster/sync", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report app.SyncReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 1, report.RowCount)
}

func TestRosterSync_UnrecognizableColumnsIs400(t *testing.T) {
	a := newTestApp(&memRosterRepo{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "weekly.csv")
	part.Write([]byte("Foo,Bar\n1,2\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/roster/sync", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no recognizable columns")
}

func TestRosterEdit_NotFoundIs404(t *testing.T) {
	a := newTestApp(&memRosterRepo{
		roster: tabular.NewBatch([]tabular.Row{{Identifier: "T-1"}}),
	})

	body := strings.NewReader(`{"field":"notes","value":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/roster/T-9/edit", body)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRosterEdit_UnknownFieldIs400(t *testing.T) {
	a := newTestApp(&memRosterRepo{
		roster: tabular.NewBatch([]tabular.Row{{Identifier: "T-1"}}),
	})

	body := strings.NewReader(`{"field":"po_number","value":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/roster/T-1/edit", body)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRosterExport_CSVBody(t *testing.T) {
	a := newTestApp(&memRosterRepo{
		roster: tabular.NewBatch([]tabular.Row{
			{Identifier: "1", Email: "a@x.com", Notes: "ok"},
		}),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/roster/export.csv", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		"identifier,name,address,email,status,weeks_on_list,notes\n1,,,a@x.com,,,ok\n",
		rec.Body.String())
}

func TestCallLifecycle(t *testing.T) {
	a := newTestApp(&memRosterRepo{})

	body := strings.NewReader(`{"problem":"Dryer down","company_property":"Harbor Point"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/calls", body)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var stored phonelog.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	require.NotEmpty(t, stored.ID)

	req = httptest.NewRequest(http.MethodPost, "/api/calls/"+string(stored.ID)+"/done", nil)
	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/calls", nil)
	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"done":true`)

	req = httptest.NewRequest(http.MethodDelete, "/api/calls/"+string(stored.ID), nil)
	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/calls/"+string(stored.ID), nil)
	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
