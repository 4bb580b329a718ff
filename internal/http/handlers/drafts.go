package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"learnd/internal/domain"
)

type draftRequest struct {
	Step    int             `json:"step"`
	Payload json.RawMessage `json:"payload"`
}

type draftDTO struct {
	Step      int             `json:"step"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DraftSave overwrites the caller's single wizard draft.
func (a *App) DraftSave(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	userID := a.currentUserID(r)
	draft := &domain.LessonDraft{
		UserID:  userID,
		Step:    req.Step,
		Payload: req.Payload,
	}
	if err := a.Drafts.Upsert(r.Context(), draft); err != nil {
		a.writeDomainError(w, err, "failed to save draft")
		return
	}
	a.recordUsage(r.Context(), userID, domain.UsageDraftSaved, map[string]any{"step": req.Step})
	a.json(w, http.StatusOK, draftDTO{Step: draft.Step, Payload: req.Payload, UpdatedAt: draft.UpdatedAt})
}

func (a *App) DraftGet(w http.ResponseWriter, r *http.Request) {
	draft, err := a.Drafts.Get(r.Context(), a.currentUserID(r))
	if err != nil {
		a.writeDomainError(w, err, "failed to load draft")
		return
	}
	a.json(w, http.StatusOK, draftDTO{Step: draft.Step, Payload: draft.Payload, UpdatedAt: draft.UpdatedAt})
}

func (a *App) DraftDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Drafts.Delete(r.Context(), a.currentUserID(r)); err != nil {
		a.writeDomainError(w, err, "failed to discard draft")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
