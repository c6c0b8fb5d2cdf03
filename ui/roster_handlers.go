package ui

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"bearpath/adapters/excel"
	"bearpath/domain/desk"
	"bearpath/domain/tabular"
	"bearpath/internal/errors"
)

// rosterRowView is one roster row joined with its tracking sidecar.
type rosterRowView struct {
	tabular.Row
	FirstSeen string `json:"first_seen,omitempty"`
	LastSeen  string `json:"last_seen,omitempty"`
	ThisWeek  bool   `json:"this_week"`
	Color     string `json:"status_color"`
}

func (a *App) handleRoster(w http.ResponseWriter, r *http.Request) {
	roster, tracking, err := a.desk.Roster(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	views := make([]rosterRowView, 0, roster.Len())
	for _, row := range roster.Rows() {
		view := rosterRowView{Row: row, Color: desk.StatusColors[row.Status]}
		if view.Color == "" {
			view.Color = desk.StatusColors[""]
		}
		if track, ok := tracking[row.Identifier]; ok {
			view.ThisWeek = track.ThisWeek
			if !track.FirstSeen.IsZero() {
				view.FirstSeen = track.FirstSeen.Format("2006-01-02")
			}
			if !track.LastSeen.IsZero() {
				view.LastSeen = track.LastSeen.Format("2006-01-02")
			}
		}
		views = append(views, view)
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows":     views,
		"statuses": desk.StatusOrder,
	})
}

func (a *App) handleRosterSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.desk.Summarize(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, summary)
}

func (a *App) handleRosterExport(w http.ResponseWriter, r *http.Request) {
	data, err := a.desk.ExportCSV(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="waiting_for_parts.csv"`)
	w.Write(data)
}

// handleRosterSync accepts a multipart upload of the weekly Miracle export
// and merges it into the stored roster.
func (a *App) handleRosterSync(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing upload file"})
		return
	}
	defer file.Close()

	asOf := time.Now().UTC()
	if v := r.FormValue("sync_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sync_date must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	// The workbook reader works on paths, so spool the upload to a temp file.
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		a.writeError(w, errors.Wrap(err, "failed to stage upload"))
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		a.writeError(w, errors.Wrap(err, "failed to stage upload"))
		return
	}
	tmp.Close()

	raw, err := excel.NewDataReader(tmp.Name()).ReadTable()
	if err != nil {
		a.writeError(w, err)
		return
	}

	report, err := a.desk.SyncUpload(r.Context(), raw, asOf)
	if err != nil {
		a.writeError(w, err)
		return
	}

	log.Printf("[UI] Synced %s: %d rows", header.Filename, report.RowCount)
	a.writeJSON(w, http.StatusOK, report)
}

func (a *App) handleRosterRecompute(w http.ResponseWriter, r *http.Request) {
	if err := a.desk.RecomputeWeeks(r.Context(), time.Now().UTC()); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type editRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (a *App) handleRosterEdit(w http.ResponseWriter, r *http.Request) {
	rowID := chi.URLParam(r, "id")

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := a.desk.EditField(r.Context(), rowID, req.Field, req.Value); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
