package handlers

import (
	"net/http"

	"learnd/internal/entitlement"
)

// Entitlements returns the full gate set for the caller so clients render
// restrictions without duplicating tier logic.
func (a *App) Entitlements(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	tier, err := a.currentTier(r.Context(), userID)
	if err != nil {
		a.writeDomainError(w, err, "failed to load profile")
		return
	}
	usage := a.usageOrZero(r.Context(), userID)
	decision, err := entitlement.Evaluate(tier, usage)
	if err != nil {
		a.writeDomainError(w, err, "failed to evaluate entitlements")
		return
	}
	a.json(w, http.StatusOK, decision)
}
