package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pubgoods/internal/domain"
	"pubgoods/internal/sqlinline"
)

type donationRequest struct {
	ProjectID     string `json:"project_id"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
}

// DonationsCreate appends a donation record. The user id comes from the
// session when one is present; anonymous donations are allowed.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.ProjectID == "" || req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "Missing required fields")
		return
	}
	userID := a.currentUserID(r)
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertDonation,
		req.ProjectID, userID, req.Amount, req.PaymentMethod)
	d, err := scanDonation(row.Scan)
	if err != nil {
		a.Logger.Error().Err(err).Msg("insert donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to record donation")
		return
	}
	a.json(w, http.StatusOK, []domain.Donation{d})
}

// DonationsRecent lists the latest donations, newest first.
func (a *App) DonationsRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListRecentDonations, limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to load donations")
		return
	}
	defer rows.Close()

	items := []domain.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows.Scan)
		if err != nil {
			a.Logger.Error().Err(err).Msg("scan donation failed")
			a.error(w, http.StatusInternalServerError, "internal", "Failed to load donations")
			return
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to load donations")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func scanDonation(scan func(dest ...any) error) (domain.Donation, error) {
	var d domain.Donation
	err := scan(&d.ID, &d.ProjectID, &d.UserID, &d.Amount, &d.PaymentMethod, &d.CreatedAt)
	return d, err
}
