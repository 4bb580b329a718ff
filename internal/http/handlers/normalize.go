package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"learnd/internal/domain"
	"learnd/internal/entitlement"
	"learnd/internal/providers/normalize"
	"learnd/internal/sqlinline"
)

type normalizeRequest struct {
	OriginalName    string   `json:"original_name"`
	ExistingClients []string `json:"existing_clients"`
}

// NormalizeClient resolves a raw client name against the caller's existing
// clients using the configured AI provider. The candidate list is the stored
// distinct clients merged with any list the caller supplies in the body.
func (a *App) NormalizeClient(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.OriginalName) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "original_name is required")
		return
	}
	userID := a.currentUserID(r)
	if _, ok := a.requireCapability(w, r, entitlement.CapabilityAI); !ok {
		return
	}

	stored, err := a.distinctClients(r, userID)
	if err != nil {
		a.writeDomainError(w, err, "failed to load clients")
		return
	}

	verdict, err := a.Normalizer.Normalize(r.Context(), normalize.Request{
		OriginalName:    req.OriginalName,
		ExistingClients: mergeClients(stored, req.ExistingClients),
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("normalize failed")
		a.error(w, http.StatusBadGateway, "provider_failure", "name normalization is temporarily unavailable")
		return
	}
	a.recordUsage(r.Context(), userID, domain.UsageNormalizeCalled, map[string]any{
		"provider": verdict.Provider,
		"is_match": verdict.IsMatch,
	})
	a.json(w, http.StatusOK, verdict)
}

// mergeClients appends the caller-supplied names to the stored ones, dropping
// blanks and exact duplicates. Stored names come first so a match prefers the
// canonical spelling already on record.
func mergeClients(stored, provided []string) []string {
	seen := make(map[string]struct{}, len(stored)+len(provided))
	merged := make([]string, 0, len(stored)+len(provided))
	for _, name := range append(append([]string{}, stored...), provided...) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		merged = append(merged, name)
	}
	return merged
}

func (a *App) distinctClients(r *http.Request, userID string) ([]string, error) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QSelectDistinctClients, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var clients []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		clients = append(clients, name)
	}
	return clients, rows.Err()
}
