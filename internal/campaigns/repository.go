package campaigns

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/societyfixer/hustings/internal/auth"
	"github.com/societyfixer/hustings/internal/moderation"
	"github.com/societyfixer/hustings/pkg/markup"
	"github.com/societyfixer/hustings/pkg/media"
	"github.com/societyfixer/hustings/pkg/pagination"
	"github.com/societyfixer/hustings/pkg/query"
	"github.com/societyfixer/hustings/pkg/repository"
	"github.com/societyfixer/hustings/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	gate       *moderation.Gate
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a campaign repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	gate *moderation.Gate,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		gate:       gate,
		logger:     logger.With("system", "campaigns"),
		pagination: pagination,
	}
}

func (r *repo) Handler(sessions *auth.Middleware) *Handler {
	return NewHandler(r, sessions, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Campaign], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, searchFields...)

	filters.Apply(qb)

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCampaign)
	if err != nil {
		return nil, fmt.Errorf("query campaigns: %w", err)
	}

	// rich text is sanitized on every read path as well as at write time
	for i := range items {
		items[i].ProposedPolicies = markup.Sanitize(items[i].ProposedPolicies)
	}

	result := pagination.NewPageResult(items, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCampaign)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	c.ProposedPolicies = markup.Sanitize(c.ProposedPolicies)
	return &c, nil
}

func (r *repo) Create(ctx context.Context, actorID uuid.UUID, cmd CreateCommand) (*Campaign, error) {
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}

	if err := r.moderate(ctx, cmd.CandidateName, cmd.ElectionName, cmd.PositionName, cmd.ProposedPolicies); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO campaigns(
			id, user_id, candidate_name, portrait_url, election_name,
			election_deadline, election_region, scope, position_name,
			proposed_policies, political_party, gender, date_of_birth,
			religion, resume_url, contact_email, social_media_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + returningColumns

	insertArgs := []any{
		uuid.New(),
		actorID,
		cmd.CandidateName,
		cmd.PortraitURL,
		cmd.ElectionName,
		cmd.ElectionDeadline,
		cmd.ElectionRegion,
		cmd.Scope,
		cmd.PositionName,
		markup.Sanitize(cmd.ProposedPolicies),
		cmd.PoliticalParty,
		cmd.Gender,
		cmd.DateOfBirth,
		cmd.Religion,
		cmd.ResumeURL,
		cmd.ContactEmail,
		cmd.SocialMediaURL,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Campaign, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanCampaign)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("campaign created", "id", c.ID, "candidate", c.CandidateName)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, actorID, id uuid.UUID, cmd UpdateCommand) (*Campaign, error) {
	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	// ownership is verified before any mutating call reaches the store
	if existing.UserID != actorID {
		return nil, ErrForbidden
	}

	if cmd.Scope != nil && !ValidScope(*cmd.Scope) {
		return nil, fmt.Errorf("%w: unknown scope %q", ErrInvalid, *cmd.Scope)
	}

	updated := *existing
	cmd.Apply(&updated)
	updated.ProposedPolicies = markup.Sanitize(updated.ProposedPolicies)

	if err := r.moderate(ctx, updated.CandidateName, updated.ElectionName, updated.PositionName, updated.ProposedPolicies); err != nil {
		return nil, err
	}

	q := `
		UPDATE campaigns SET
			candidate_name = $1, portrait_url = $2, election_name = $3,
			election_deadline = $4, election_region = $5, scope = $6,
			position_name = $7, proposed_policies = $8, political_party = $9,
			gender = $10, date_of_birth = $11, religion = $12, resume_url = $13,
			contact_email = $14, social_media_url = $15, updated_at = now()
		WHERE id = $16 AND user_id = $17
		RETURNING ` + returningColumns

	updateArgs := []any{
		updated.CandidateName,
		updated.PortraitURL,
		updated.ElectionName,
		updated.ElectionDeadline,
		updated.ElectionRegion,
		updated.Scope,
		updated.PositionName,
		updated.ProposedPolicies,
		updated.PoliticalParty,
		updated.Gender,
		updated.DateOfBirth,
		updated.Religion,
		updated.ResumeURL,
		updated.ContactEmail,
		updated.SocialMediaURL,
		id,
		actorID,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Campaign, error) {
		return repository.QueryOne(ctx, tx, q, updateArgs, scanCampaign)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("campaign updated", "id", c.ID)
	return &c, nil
}

// Delete removes a campaign and cleans up its media. Media objects are
// removed first, best-effort: each failure is logged and never blocks the
// record delete, so a campaign can always be removed even when its blobs
// are already gone. The record delete itself is fatal on failure, leaving
// the record intact.
func (r *repo) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	existing, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	if existing.UserID != actorID {
		return ErrForbidden
	}

	refs := make([]storage.Ref, 0, 2)
	for _, raw := range existing.MediaURLs() {
		bucket, key, ok := media.ParseStorageURL(raw)
		if !ok {
			r.logger.Warn("unparseable media reference, skipping cleanup", "id", id, "url", raw)
			continue
		}
		refs = append(refs, storage.Ref{Bucket: bucket, Key: key})
	}
	r.storage.Remove(ctx, refs)

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM campaigns WHERE id = $1 AND user_id = $2",
			id, actorID,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("campaign deleted", "id", id)
	return nil
}

// moderate submits the campaign's free text to the safety gate. The gate
// receives one markup-stripped string; a deny verdict aborts persistence.
func (r *repo) moderate(ctx context.Context, fields ...string) error {
	text := markup.Strip(strings.Join(fields, " "))

	verdict := r.gate.Moderate(ctx, text)
	if !verdict.Safe {
		return fmt.Errorf("%w: %s", moderation.ErrRejected, verdict.Reason)
	}
	return nil
}

func validateCreate(cmd CreateCommand) error {
	if strings.TrimSpace(cmd.CandidateName) == "" {
		return fmt.Errorf("%w: candidate_name required", ErrInvalid)
	}
	if strings.TrimSpace(cmd.ElectionName) == "" {
		return fmt.Errorf("%w: election_name required", ErrInvalid)
	}
	if !ValidScope(cmd.Scope) {
		return fmt.Errorf("%w: unknown scope %q", ErrInvalid, cmd.Scope)
	}
	return nil
}

var returningColumns = strings.Join([]string{
	"id", "user_id", "candidate_name", "portrait_url", "election_name",
	"election_deadline", "election_region", "scope", "position_name",
	"proposed_policies", "political_party", "gender", "date_of_birth",
	"religion", "resume_url", "contact_email", "social_media_url",
	"created_at", "updated_at",
}, ", ")
