package handlers

import "net/http"

// Health reports liveness for load balancer probes.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok", "service": "learnd-api"})
}
