package providerRepo

import (
	"context"
	"errors"

	"slotify/models"
)

// ErrNotFound means no provider matches the given ID.
var ErrNotFound = errors.New("provider not found")

// ProviderRepository defines read access to the provider catalogue. The
// scheduling core never writes providers; working hours are owned by the
// provider-settings collaborator.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByServiceIDs returns providers whose catalogue contains every
	// one of the given service IDs.
	GetByServiceIDs(ctx context.Context, serviceIDs []string) ([]models.Provider, error)
}
