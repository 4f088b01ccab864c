package handlers

import "net/http"

type recommendation struct {
	ProjectID  string  `json:"project_id"`
	Name       string  `json:"name"`
	MatchScore float64 `json:"match_score"`
}

// Recommendations returns a fixed placeholder set until a real matching
// backend exists. TODO: replace with interest-based matching once profile
// interests are populated widely enough to score against.
func (a *App) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Missing or invalid user_id")
		return
	}
	a.json(w, http.StatusOK, []recommendation{
		{ProjectID: "abc123", Name: "SolarDAO", MatchScore: 0.87},
		{ProjectID: "xyz789", Name: "Open Education Grants", MatchScore: 0.72},
	})
}
