package handlers

import (
	"encoding/json"
	"net/http"

	"pubgoods/internal/providers/summary"
	"pubgoods/internal/sqlinline"
)

type summaryRequest struct {
	ProjectID   string `json:"project_id"`
	Description string `json:"description"`
}

// SummaryGenerate produces an AI summary for a project and stores it on the
// record's ai_summary column.
func (a *App) SummaryGenerate(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.ProjectID == "" || req.Description == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Missing project_id or description")
		return
	}

	sreq := summary.Request{
		ProjectID:   req.ProjectID,
		Description: req.Description,
	}
	// The stored name only labels the generated text. A failed lookup leaves
	// it blank and the provider falls back to its generic label.
	if p, err := scanProject(a.SQL.QueryRow(r.Context(), sqlinline.QSelectProjectByID, req.ProjectID).Scan); err == nil {
		sreq.ProjectName = p.Name
	}

	res, err := a.Summarizer.Summarize(r.Context(), sreq)
	if err != nil {
		a.Logger.Error().Err(err).Msg("generate summary failed")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to generate summary")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QUpdateProjectSummary, req.ProjectID, res.Summary)
	var id string
	if err := row.Scan(&id); err != nil {
		a.Logger.Error().Err(err).Msg("persist summary failed")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to generate summary")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"summary": res.Summary})
}
