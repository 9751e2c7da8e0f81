package campaigns

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/societyfixer/hustings/pkg/query"
	"github.com/societyfixer/hustings/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "campaigns", "c").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("candidate_name", "CandidateName").
	Project("portrait_url", "PortraitURL").
	Project("election_name", "ElectionName").
	Project("election_deadline", "ElectionDeadline").
	Project("election_region", "ElectionRegion").
	Project("scope", "Scope").
	Project("position_name", "PositionName").
	Project("proposed_policies", "ProposedPolicies").
	Project("political_party", "PoliticalParty").
	Project("gender", "Gender").
	Project("date_of_birth", "DateOfBirth").
	Project("religion", "Religion").
	Project("resume_url", "ResumeURL").
	Project("contact_email", "ContactEmail").
	Project("social_media_url", "SocialMediaURL").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// searchFields are matched case-insensitively (OR across all three) when a
// search term is supplied.
var searchFields = []string{"CandidateName", "PositionName", "ElectionRegion"}

// Filters contains optional filtering criteria for campaign queries.
// Nil fields are ignored. OwnerID scopes results to a single publisher;
// Scope and PoliticalParty use exact matching.
type Filters struct {
	OwnerID        *uuid.UUID `json:"owner_id,omitempty"`
	Scope          *string    `json:"scope,omitempty"`
	PoliticalParty *string    `json:"political_party,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.OwnerID != nil {
		b.WhereEquals("UserID", *f.OwnerID)
	}
	return b.
		WhereEquals("Scope", f.Scope).
		WhereEquals("PoliticalParty", f.PoliticalParty)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if o := values.Get("owner_id"); o != "" {
		if id, err := uuid.Parse(o); err == nil {
			f.OwnerID = &id
		}
	}

	if s := values.Get("scope"); s != "" {
		f.Scope = &s
	}

	if p := values.Get("political_party"); p != "" {
		f.PoliticalParty = &p
	}

	return f
}

func scanCampaign(s repository.Scanner) (Campaign, error) {
	var c Campaign
	err := s.Scan(
		&c.ID,
		&c.UserID,
		&c.CandidateName,
		&c.PortraitURL,
		&c.ElectionName,
		&c.ElectionDeadline,
		&c.ElectionRegion,
		&c.Scope,
		&c.PositionName,
		&c.ProposedPolicies,
		&c.PoliticalParty,
		&c.Gender,
		&c.DateOfBirth,
		&c.Religion,
		&c.ResumeURL,
		&c.ContactEmail,
		&c.SocialMediaURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
