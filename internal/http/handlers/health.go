package handlers

import "net/http"

// Health is the liveness probe. It deliberately touches no dependencies so a
// broken database never takes the probe down with it.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok", "service": "pubgoods"})
}
