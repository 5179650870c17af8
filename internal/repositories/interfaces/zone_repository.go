package interfaces

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skyfence/internal/models"
)

// ErrNotFound reports an operation against a nonexistent record. Callers
// must keep it distinct from validation failures.
var ErrNotFound = errors.New("record not found")

type ZoneRepository interface {
	Create(ctx context.Context, zone *models.Zone) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Zone, error)
	// Update replaces the stored document; merging fields over the existing
	// record is the service's job so only validated records reach here.
	Update(ctx context.Context, zone *models.Zone) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// List returns all zones ordered by name ascending.
	List(ctx context.Context) ([]*models.Zone, error)
}
