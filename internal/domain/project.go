package domain

import "time"

// ProjectStatus enumerates the lifecycle states a listing can be in.
type ProjectStatus string

const (
	ProjectStatusActive       ProjectStatus = "Active"
	ProjectStatusNeedsSupport ProjectStatus = "Needs Support"
	ProjectStatusClosed       ProjectStatus = "Closed"
)

// Project is a public-goods project listing. Identity is immutable; records
// are created by the submission flow and mutated only by re-submission and by
// the summary generator filling in AISummary.
type Project struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Category        string        `json:"category"`
	ImpactAreas     []string      `json:"impact_areas"`
	FundingPlatform string        `json:"funding_platform"`
	GovernanceModel string        `json:"governance_model"`
	WebsiteURL      *string       `json:"website_url"`
	ContactEmail    *string       `json:"contact_email"`
	ProfileImage    *string       `json:"project_profile_image"`
	BannerImage     *string       `json:"project_banner_image"`
	SubmittedBy     *string       `json:"submitted_by"`
	Status          ProjectStatus `json:"status"`
	AISummary       *string       `json:"ai_summary"`
	CreatedAt       time.Time     `json:"created_at"`
}
