package search

import (
	"net/url"
	"strings"
)

// Parameter keys shared by the builder and the search handlers. The text
// query deliberately lives under its own key so it can never collide with a
// filter column name.
const (
	KeyQuery           = "query"
	KeyCategory        = "category"
	KeyFundingPlatform = "funding_platform"
	KeyGovernanceModel = "governance_model"
	KeyStatus          = "status"
)

// Params is the normalized search input: an optional free-text query plus
// optional equality filters. Zero value means "no constraints".
type Params struct {
	Query           string
	Category        string
	FundingPlatform string
	GovernanceModel string
	Status          string
}

// ParseValues normalizes raw query-string values into Params. The text query
// is trimmed and dropped entirely when blank; filters are kept only when
// non-empty. Filter values are not case-normalized: equality filtering is
// exact.
func ParseValues(values url.Values) Params {
	return Params{
		Query:           strings.TrimSpace(values.Get(KeyQuery)),
		Category:        values.Get(KeyCategory),
		FundingPlatform: values.Get(KeyFundingPlatform),
		GovernanceModel: values.Get(KeyGovernanceModel),
		Status:          values.Get(KeyStatus),
	}
}

// Values renders the params back into url.Values, emitting only non-empty
// fields. ParseValues(p.Values()) round-trips.
func (p Params) Values() url.Values {
	values := url.Values{}
	set := func(key, val string) {
		if val != "" {
			values.Set(key, val)
		}
	}
	set(KeyQuery, strings.TrimSpace(p.Query))
	set(KeyCategory, p.Category)
	set(KeyFundingPlatform, p.FundingPlatform)
	set(KeyGovernanceModel, p.GovernanceModel)
	set(KeyStatus, p.Status)
	return values
}

// HasConstraints reports whether any search text or filter is active. The
// listing layer shuffles only unconstrained result sets.
func (p Params) HasConstraints() bool {
	return strings.TrimSpace(p.Query) != "" ||
		p.Category != "" ||
		p.FundingPlatform != "" ||
		p.GovernanceModel != "" ||
		p.Status != ""
}
