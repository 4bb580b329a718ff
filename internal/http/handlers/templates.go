package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"learnd/internal/domain"
	"learnd/internal/entitlement"
)

type templateRequest struct {
	Name     string         `json:"name"`
	Industry string         `json:"industry"`
	Fields   []fieldRequest `json:"fields,omitempty"`
}

type templateDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Industry  string     `json:"industry"`
	Fields    []fieldDTO `json:"fields,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func templateToDTO(t *domain.Template) templateDTO {
	dto := templateDTO{ID: t.ID, Name: t.Name, Industry: t.Industry, CreatedAt: t.CreatedAt}
	for i := range t.Fields {
		dto.Fields = append(dto.Fields, fieldToDTO(&t.Fields[i]))
	}
	return dto
}

func (a *App) TemplatesCreate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
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
	if !a.requireQuota(w, r, tier, entitlement.QuotaTemplates) {
		return
	}
	tpl := &domain.Template{UserID: userID, Name: req.Name, Industry: req.Industry}
	for _, f := range req.Fields {
		tpl.Fields = append(tpl.Fields, domain.CustomFieldDef{
			UserID:  userID,
			Name:    f.Name,
			Kind:    f.Kind,
			Options: f.Options,
		})
	}
	created, err := a.Templates.Create(r.Context(), tpl)
	if err != nil {
		a.writeDomainError(w, err, "failed to create template")
		return
	}
	a.json(w, http.StatusCreated, templateToDTO(created))
}

func (a *App) TemplatesList(w http.ResponseWriter, r *http.Request) {
	tpls, err := a.Templates.List(r.Context(), a.currentUserID(r))
	if err != nil {
		a.writeDomainError(w, err, "failed to list templates")
		return
	}
	items := make([]templateDTO, 0, len(tpls))
	for i := range tpls {
		items = append(items, templateToDTO(&tpls[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) TemplatesDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Templates.Delete(r.Context(), a.currentUserID(r), chi.URLParam(r, "id")); err != nil {
		a.writeDomainError(w, err, "failed to delete template")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
