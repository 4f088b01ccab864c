package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pubgoods/internal/avatar"
	"pubgoods/internal/domain"
	"pubgoods/internal/listing"
	"pubgoods/internal/search"
	"pubgoods/internal/sqlinline"
)

// projectView is a project record plus the deterministic placeholder visual
// every client renders when no image was uploaded.
type projectView struct {
	domain.Project
	Fallback avatar.Badge `json:"fallback"`
}

func viewProject(p domain.Project) projectView {
	return projectView{Project: p, Fallback: avatar.For(p.ID, p.Name)}
}

// ProjectsSearch resolves the search: substring text match over name and
// description, intersected with exact equality filters. Constrained searches
// return the store's natural order as a plain array; the unconstrained
// landing listing is shuffled and windowed for "load more".
func (a *App) ProjectsSearch(w http.ResponseWriter, r *http.Request) {
	params := search.ParseValues(r.URL.Query())
	rows, err := a.SQL.Query(r.Context(), sqlinline.QSearchProjects,
		params.Query, params.Category, params.FundingPlatform, params.GovernanceModel, params.Status)
	if err != nil {
		a.Logger.Error().Err(err).Msg("search projects failed")
		a.error(w, http.StatusInternalServerError, "internal", "Internal server error")
		return
	}
	defer rows.Close()

	var items []projectView
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			a.Logger.Error().Err(err).Msg("scan project failed")
			a.error(w, http.StatusInternalServerError, "internal", "Internal server error")
			return
		}
		items = append(items, viewProject(p))
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("search projects failed")
		a.error(w, http.StatusInternalServerError, "internal", "Internal server error")
		return
	}

	if params.HasConstraints() {
		if items == nil {
			items = []projectView{}
		}
		a.json(w, http.StatusOK, items)
		return
	}

	// Landing listing: shuffle, then reveal a window that grows by a fixed
	// step on each "load more".
	listing.Shuffle(len(items), a.listingSource(), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	reveal, _ := strconv.Atoi(r.URL.Query().Get("reveal"))
	shown, hasMore := listing.Window(len(items), reveal)
	a.json(w, http.StatusOK, map[string]any{
		"items":    items[:shown],
		"total":    len(items),
		"has_more": hasMore,
	})
}

func (a *App) ProjectsGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectProjectByID, id)
	p, err := scanProject(row.Scan)
	if err != nil {
		if errors.Is(lookupErr(err), domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "Project not found")
			return
		}
		a.Logger.Error().Err(err).Msg("fetch project failed")
		a.error(w, http.StatusInternalServerError, "internal", "Internal server error")
		return
	}
	a.json(w, http.StatusOK, viewProject(p))
}

type createProjectRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	ImpactAreas     []string `json:"impact_areas"`
	FundingPlatform string   `json:"funding_platform"`
	GovernanceModel string   `json:"governance_model"`
	WebsiteURL      string   `json:"website_url"`
	ContactEmail    string   `json:"contact_email"`
	ProfileImage    string   `json:"project_profile_image"`
	BannerImage     string   `json:"project_banner_image"`
	SubmittedBy     string   `json:"submitted_by"`
}

func (a *App) ProjectsCreate(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Name == "" || req.Description == "" || req.Category == "" ||
		req.ImpactAreas == nil || req.FundingPlatform == "" || req.GovernanceModel == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Missing required fields.")
		return
	}
	submittedBy := req.SubmittedBy
	if submittedBy == "" {
		submittedBy = a.currentUserID(r)
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertProject,
		req.Name, req.Description, req.Category, req.ImpactAreas,
		req.FundingPlatform, req.GovernanceModel,
		req.WebsiteURL, req.ContactEmail, req.ProfileImage, req.BannerImage, submittedBy)
	var id string
	if err := row.Scan(&id); err != nil {
		a.Logger.Error().Err(err).Msg("insert project failed")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to add project.")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"id": id})
}

// scanProject reads one project row; the column order matches the sqlinline
// select lists.
func scanProject(scan func(dest ...any) error) (domain.Project, error) {
	var p domain.Project
	err := scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.ImpactAreas,
		&p.FundingPlatform, &p.GovernanceModel, &p.WebsiteURL, &p.ContactEmail,
		&p.ProfileImage, &p.BannerImage, &p.SubmittedBy, &p.Status, &p.AISummary, &p.CreatedAt)
	return p, err
}
