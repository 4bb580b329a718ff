package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"learnd/internal/domain"
	"learnd/internal/entitlement"
	"learnd/internal/infra"
	"learnd/internal/middleware"
	"learnd/internal/providers/normalize"
)

// IDTokenVerifier validates a Google ID token and returns its claims.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (map[string]any, error)
}

// App carries the dependencies shared by all HTTP handlers. It is constructed
// once at startup and injected into the router; nothing here is global state.
type App struct {
	SQL            infra.SQLExecutor
	Logger         infra.Logger
	JWTSecret      string
	GoogleVerifier IDTokenVerifier

	Users     domain.UserRepository
	Lessons   domain.LessonRepository
	Drafts    domain.DraftRepository
	Usage     domain.UsageRepository
	Templates domain.TemplateRepository
	Fields    domain.CustomFieldRepository

	Normalizer normalize.Normalizer
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{"error": map[string]string{"code": errCode, "message": message}})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// currentTier loads the caller's profile and returns the tier. The token tier
// claim is only a hint; the stored record is authoritative for gating.
func (a *App) currentTier(ctx context.Context, userID string) (domain.SubscriptionTier, error) {
	user, err := a.Users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Tier, nil
}

// usageOrZero fetches the usage snapshot, degrading to zero usage when the
// store cannot be read. A counter outage must not break gating decisions.
func (a *App) usageOrZero(ctx context.Context, userID string) domain.UsageCounters {
	usage, err := a.Usage.CurrentUsage(ctx, userID)
	if err != nil {
		a.Logger.Warn().Err(err).Str("user_id", userID).Msg("usage snapshot unavailable, assuming zero")
		return domain.UsageCounters{}
	}
	return usage
}

// recordUsage appends a usage event, tagging it with the request country when
// known. Failures are logged and swallowed: usage tracking is best effort.
func (a *App) recordUsage(ctx context.Context, userID string, kind domain.UsageEventKind, properties map[string]any) {
	if country := middleware.CountryFromContext(ctx); country != "" {
		if properties == nil {
			properties = map[string]any{}
		}
		properties["country"] = country
	}
	if err := a.Usage.RecordEvent(ctx, userID, kind, properties); err != nil {
		a.Logger.Warn().Err(err).Str("user_id", userID).Str("event", string(kind)).Msg("record usage failed")
	}
}

// requireCapability resolves the caller's tier and enforces a capability
// gate, writing the denial response itself. The returned tier is valid only
// when ok is true.
func (a *App) requireCapability(w http.ResponseWriter, r *http.Request, capability entitlement.Capability) (domain.SubscriptionTier, bool) {
	userID := a.currentUserID(r)
	tier, err := a.currentTier(r.Context(), userID)
	if err != nil {
		a.writeDomainError(w, err, "failed to load profile")
		return "", false
	}
	allowed, err := entitlement.CanAccess(tier, capability)
	if err != nil {
		a.writeDomainError(w, err, "entitlement check failed")
		return "", false
	}
	if !allowed {
		a.json(w, http.StatusForbidden, map[string]any{
			"error": map[string]any{
				"code":       "upgrade_required",
				"message":    "your plan does not include this feature",
				"capability": capability,
			},
		})
		return "", false
	}
	return tier, true
}

// requireQuota enforces a countable limit, writing the denial response with
// the quota breakdown so clients can render the usage warning.
func (a *App) requireQuota(w http.ResponseWriter, r *http.Request, tier domain.SubscriptionTier, kind entitlement.QuotaKind) bool {
	userID := a.currentUserID(r)
	usage := a.usageOrZero(r.Context(), userID)
	atLimit, err := entitlement.IsAtLimit(tier, usage, kind)
	if err != nil {
		a.writeDomainError(w, err, "entitlement check failed")
		return false
	}
	if atLimit {
		limit, _ := entitlement.QuotaLimit(tier, kind)
		used, _ := entitlement.QuotaUsed(usage, kind)
		a.json(w, http.StatusForbidden, map[string]any{
			"error": map[string]any{
				"code":    "quota_exceeded",
				"message": "plan limit reached",
				"quota":   map[string]any{"kind": kind, "used": used, "limit": limit},
			},
		})
		return false
	}
	return true
}

// writeDomainError maps domain sentinel errors onto HTTP responses.
func (a *App) writeDomainError(w http.ResponseWriter, err error, internalMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", "not allowed")
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrQuotaExceeded):
		a.error(w, http.StatusForbidden, "quota_exceeded", "plan limit reached")
	case errors.Is(err, domain.ErrInvalidTier):
		// Corrupted profile record; fatal to the request, not the process.
		a.Logger.Error().Err(err).Msg("invalid tier reached the registry")
		a.error(w, http.StatusInternalServerError, "internal", internalMsg)
	default:
		a.Logger.Error().Err(err).Msg(internalMsg)
		a.error(w, http.StatusInternalServerError, "internal", internalMsg)
	}
}
