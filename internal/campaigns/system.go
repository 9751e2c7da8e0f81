package campaigns

import (
	"context"

	"github.com/google/uuid"

	"github.com/societyfixer/hustings/internal/auth"
	"github.com/societyfixer/hustings/pkg/pagination"
)

// System defines the public contract for campaign domain operations.
// Mutating operations take the authenticated actor's id; ownership is
// verified before any write reaches the record store.
type System interface {
	Handler(sessions *auth.Middleware) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Campaign], error)

	Find(ctx context.Context, id uuid.UUID) (*Campaign, error)
	Create(ctx context.Context, actorID uuid.UUID, cmd CreateCommand) (*Campaign, error)
	Update(ctx context.Context, actorID, id uuid.UUID, cmd UpdateCommand) (*Campaign, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}
