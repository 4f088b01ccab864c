package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pubgoods/internal/avatar"
	"pubgoods/internal/domain"
	"pubgoods/internal/search"
	"pubgoods/internal/sqlinline"
)

type profileView struct {
	domain.Profile
	Fallback avatar.Badge `json:"fallback"`
}

func viewProfile(p domain.Profile) profileView {
	return profileView{Profile: p, Fallback: avatar.For(p.UserID, p.Username)}
}

// ProfilesSearch is the profile variant of search resolution: substring match
// over username and bio. Profiles carry no equality filters.
func (a *App) ProfilesSearch(w http.ResponseWriter, r *http.Request) {
	params := search.ParseValues(r.URL.Query())
	rows, err := a.SQL.Query(r.Context(), sqlinline.QSearchProfiles, params.Query)
	if err != nil {
		a.Logger.Error().Err(err).Msg("search profiles failed")
		a.error(w, http.StatusInternalServerError, "internal", "Internal server error")
		return
	}
	defer rows.Close()

	items := []profileView{}
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			a.Logger.Error().Err(err).Msg("scan profile failed")
			a.error(w, http.StatusInternalServerError, "internal", "Internal server error")
			return
		}
		items = append(items, viewProfile(p))
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("search profiles failed")
		a.error(w, http.StatusInternalServerError, "internal", "Internal server error")
		return
	}
	a.json(w, http.StatusOK, items)
}

func (a *App) ProfilesGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectProfileByUserID, id)
	p, err := scanProfile(row.Scan)
	if err != nil {
		if errors.Is(lookupErr(err), domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "Profile not found")
			return
		}
		a.Logger.Error().Err(err).Msg("fetch profile failed")
		a.error(w, http.StatusInternalServerError, "internal", "Internal server error")
		return
	}
	a.json(w, http.StatusOK, viewProfile(p))
}

type upsertProfileRequest struct {
	Username    string   `json:"username"`
	Bio         string   `json:"bio"`
	Photo       string   `json:"profile_photo"`
	BannerImage string   `json:"profile_banner_image"`
	Interests   []string `json:"interests"`
	SocialLinks []string `json:"social_links"`
}

// ProfilesUpsert creates or replaces the caller's profile, keyed on the
// session user id. Last write wins.
func (a *App) ProfilesUpsert(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req upsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Username == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Username is required.")
		return
	}
	if len(req.SocialLinks) > domain.MaxSocialLinks {
		a.error(w, http.StatusBadRequest, "bad_request",
			fmt.Sprintf("A maximum of %d social links is allowed.", domain.MaxSocialLinks))
		return
	}
	if req.Interests == nil {
		req.Interests = []string{}
	}
	if req.SocialLinks == nil {
		req.SocialLinks = []string{}
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QUpsertProfile,
		userID, req.Username, req.Bio, req.Photo, req.BannerImage, req.Interests, req.SocialLinks)
	var upsertedID string
	if err := row.Scan(&upsertedID); err != nil {
		a.Logger.Error().Err(err).Msg("upsert profile failed")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to save profile.")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"user_id": upsertedID})
}

func scanProfile(scan func(dest ...any) error) (domain.Profile, error) {
	var p domain.Profile
	err := scan(&p.UserID, &p.Username, &p.Bio, &p.Photo, &p.BannerImage,
		&p.Interests, &p.SocialLinks, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
