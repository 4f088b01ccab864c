package domain

import "time"

// MaxSocialLinks caps the number of social links a profile may carry. The
// limit is enforced at the input layer only; the store accepts whatever the
// handlers hand it.
const MaxSocialLinks = 5

// Profile is a user-maintained directory profile, one per auth identity
// (upsert keyed on UserID). Interests and SocialLinks are order-preserving
// and not deduplicated.
type Profile struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Bio         string    `json:"bio"`
	Photo       *string   `json:"profile_photo"`
	BannerImage *string   `json:"profile_banner_image"`
	Interests   []string  `json:"interests"`
	SocialLinks []string  `json:"social_links"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
