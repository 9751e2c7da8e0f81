// Package campaigns implements the campaign domain for Hustings.
// It provides types, data access, and business logic for publishing,
// browsing, editing, and removing candidate campaign pages.
package campaigns

import (
	"time"

	"github.com/google/uuid"
)

// Election scope categories.
const (
	ScopeLocal    = "Local"
	ScopeState    = "State"
	ScopeNational = "National"
)

// ValidScope reports whether s is one of the fixed election scope categories.
func ValidScope(s string) bool {
	return s == ScopeLocal || s == ScopeState || s == ScopeNational
}

// Campaign represents a published candidate campaign page.
type Campaign struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	CandidateName    string     `json:"candidate_name"`
	PortraitURL      string     `json:"portrait_url"`
	ElectionName     string     `json:"election_name"`
	ElectionDeadline *time.Time `json:"election_deadline"`
	ElectionRegion   string     `json:"election_region"`
	Scope            string     `json:"scope"`
	PositionName     string     `json:"position_name"`
	ProposedPolicies string     `json:"proposed_policies"`
	PoliticalParty   string     `json:"political_party"`
	Gender           string     `json:"gender"`
	DateOfBirth      string     `json:"date_of_birth"`
	Religion         string     `json:"religion"`
	ResumeURL        string     `json:"resume_url"`
	ContactEmail     string     `json:"contact_email"`
	SocialMediaURL   string     `json:"social_media_url"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreateCommand carries the data needed to publish a new campaign.
// The owner is stamped from the authenticated actor at write time,
// never taken from the request body.
type CreateCommand struct {
	CandidateName    string     `json:"candidate_name"`
	PortraitURL      string     `json:"portrait_url"`
	ElectionName     string     `json:"election_name"`
	ElectionDeadline *time.Time `json:"election_deadline"`
	ElectionRegion   string     `json:"election_region"`
	Scope            string     `json:"scope"`
	PositionName     string     `json:"position_name"`
	ProposedPolicies string     `json:"proposed_policies"`
	PoliticalParty   string     `json:"political_party"`
	Gender           string     `json:"gender"`
	DateOfBirth      string     `json:"date_of_birth"`
	Religion         string     `json:"religion"`
	ResumeURL        string     `json:"resume_url"`
	ContactEmail     string     `json:"contact_email"`
	SocialMediaURL   string     `json:"social_media_url"`
}

// UpdateCommand carries a partial update. Nil fields are left unchanged.
type UpdateCommand struct {
	CandidateName    *string    `json:"candidate_name,omitempty"`
	PortraitURL      *string    `json:"portrait_url,omitempty"`
	ElectionName     *string    `json:"election_name,omitempty"`
	ElectionDeadline *time.Time `json:"election_deadline,omitempty"`
	ElectionRegion   *string    `json:"election_region,omitempty"`
	Scope            *string    `json:"scope,omitempty"`
	PositionName     *string    `json:"position_name,omitempty"`
	ProposedPolicies *string    `json:"proposed_policies,omitempty"`
	PoliticalParty   *string    `json:"political_party,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	DateOfBirth      *string    `json:"date_of_birth,omitempty"`
	Religion         *string    `json:"religion,omitempty"`
	ResumeURL        *string    `json:"resume_url,omitempty"`
	ContactEmail     *string    `json:"contact_email,omitempty"`
	SocialMediaURL   *string    `json:"social_media_url,omitempty"`
}

// Apply overlays the non-nil update fields onto c.
func (u UpdateCommand) Apply(c *Campaign) {
	if u.CandidateName != nil {
		c.CandidateName = *u.CandidateName
	}
	if u.PortraitURL != nil {
		c.PortraitURL = *u.PortraitURL
	}
	if u.ElectionName != nil {
		c.ElectionName = *u.ElectionName
	}
	if u.ElectionDeadline != nil {
		c.ElectionDeadline = u.ElectionDeadline
	}
	if u.ElectionRegion != nil {
		c.ElectionRegion = *u.ElectionRegion
	}
	if u.Scope != nil {
		c.Scope = *u.Scope
	}
	if u.PositionName != nil {
		c.PositionName = *u.PositionName
	}
	if u.ProposedPolicies != nil {
		c.ProposedPolicies = *u.ProposedPolicies
	}
	if u.PoliticalParty != nil {
		c.PoliticalParty = *u.PoliticalParty
	}
	if u.Gender != nil {
		c.Gender = *u.Gender
	}
	if u.DateOfBirth != nil {
		c.DateOfBirth = *u.DateOfBirth
	}
	if u.Religion != nil {
		c.Religion = *u.Religion
	}
	if u.ResumeURL != nil {
		c.ResumeURL = *u.ResumeURL
	}
	if u.ContactEmail != nil {
		c.ContactEmail = *u.ContactEmail
	}
	if u.SocialMediaURL != nil {
		c.SocialMediaURL = *u.SocialMediaURL
	}
}

// MediaURLs returns the campaign's media references, skipping empty values.
func (c *Campaign) MediaURLs() []string {
	urls := make([]string, 0, 2)
	if c.PortraitURL != "" {
		urls = append(urls, c.PortraitURL)
	}
	if c.ResumeURL != "" {
		urls = append(urls, c.ResumeURL)
	}
	return urls
}
