package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"learnd/internal/domain"
	"learnd/internal/entitlement"
)

type fieldRequest struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Options []string `json:"options,omitempty"`
}

type fieldDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Options   []string  `json:"options,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func fieldToDTO(f *domain.CustomFieldDef) fieldDTO {
	return fieldDTO{ID: f.ID, Name: f.Name, Kind: f.Kind, Options: f.Options, CreatedAt: f.CreatedAt}
}

func (a *App) FieldsCreate(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	userID := a.currentUserID(r)
	tier, err := a.currentTier(r.Context(), userID)
	if err != nil {
		a.writeDomainError(w, err, "failed to load profile")
		return
	}
	if !a.requireQuota(w, r, tier, entitlement.QuotaCustomFields) {
		return
	}
	field, err := a.Fields.Create(r.Context(), &domain.CustomFieldDef{
		UserID:  userID,
		Name:    req.Name,
		Kind:    req.Kind,
		Options: req.Options,
	})
	if err != nil {
		a.writeDomainError(w, err, "failed to create field")
		return
	}
	a.json(w, http.StatusCreated, fieldToDTO(field))
}

func (a *App) FieldsList(w http.ResponseWriter, r *http.Request) {
	fields, err := a.Fields.List(r.Context(), a.currentUserID(r))
	if err != nil {
		a.writeDomainError(w, err, "failed to list fields")
		return
	}
	items := make([]fieldDTO, 0, len(fields))
	for i := range fields {
		items = append(items, fieldToDTO(&fields[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) FieldsDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Fields.Delete(r.Context(), a.currentUserID(r), chi.URLParam(r, "id")); err != nil {
		a.writeDomainError(w, err, "failed to delete field")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
