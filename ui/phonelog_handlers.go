package ui

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"bearpath/domain/core"
	"bearpath/domain/phonelog"
)

func (a *App) handleCallList(w http.ResponseWriter, r *http.Request) {
	entries, err := a.phoneLog.List(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"needed":  phonelog.NeededOptions,
	})
}

func (a *App) handleCallCreate(w http.ResponseWriter, r *http.Request) {
	var entry phonelog.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	stored, err := a.phoneLog.Log(r.Context(), entry)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, stored)
}

func (a *App) handleCallUpdate(w http.ResponseWriter, r *http.Request) {
	var entry phonelog.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	entry.ID = core.EntryID(chi.URLParam(r, "id"))

	if err := a.phoneLog.Update(r.Context(), entry); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type doneRequest struct {
	Done bool `json:"done"`
}

func (a *App) handleCallDone(w http.ResponseWriter, r *http.Request) {
	id := core.EntryID(chi.URLParam(r, "id"))

	req := doneRequest{Done: true}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	if err := a.phoneLog.MarkDone(r.Context(), id, req.Done); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleCallDelete(w http.ResponseWriter, r *http.Request) {
	id := core.EntryID(chi.URLParam(r, "id"))
	if err := a.phoneLog.Delete(r.Context(), id); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleCallExport(w http.ResponseWriter, r *http.Request) {
	data, err := a.phoneLog.ExportCSV(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="phone_log.csv"`)
	w.Write(data)
}

func (a *App) handleCallEmail(w http.ResponseWriter, r *http.Request) {
	id := core.EntryID(chi.URLParam(r, "id"))

	var recipients []string
	if v := r.URL.Query().Get("to"); v != "" {
		for _, addr := range strings.Split(v, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				recipients = append(recipients, addr)
			}
		}
	}

	draft, err := a.phoneLog.EmailDraft(r.Context(), id, recipients)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"mailto": draft})
}
