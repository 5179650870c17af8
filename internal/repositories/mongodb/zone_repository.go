package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skyfence/internal/models"
	"skyfence/internal/repositories/interfaces"
	"skyfence/internal/utils"
)

// CacheService is the slice of the cache layer the repositories use.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type zoneRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewZoneRepository(db *mongo.Database, cache CacheService) interfaces.ZoneRepository {
	return &zoneRepository{
		collection: db.Collection(utils.ZonesCollection),
		cache:      cache,
	}
}

func (r *zoneRepository) Create(ctx context.Context, zone *models.Zone) error {
	zone.ID = primitive.NewObjectID()
	now := time.Now()
	zone.CreatedAt = now
	zone.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, zone)
	if err != nil {
		return fmt.Errorf("failed to create zone: %w", err)
	}

	r.invalidate(ctx, zone.ID)
	return nil
}

func (r *zoneRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Zone, error) {
	cacheKey := utils.CacheZonePrefix + id.Hex()
	if r.cache != nil {
		var cached models.Zone
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var zone models.Zone
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&zone)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, cacheKey, &zone, utils.ZoneCacheTTL)
	}
	return &zone, nil
}

func (r *zoneRepository) Update(ctx context.Context, zone *models.Zone) error {
	zone.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": zone.ID}, zone)
	if err != nil {
		return fmt.Errorf("failed to update zone: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidate(ctx, zone.ID)
	return nil
}

func (r *zoneRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete zone: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *zoneRepository) List(ctx context.Context) ([]*models.Zone, error) {
	if r.cache != nil {
		var cached []*models.Zone
		if err := r.cache.Get(ctx, utils.CacheZoneListKey, &cached); err == nil {
			return cached, nil
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	defer cursor.Close(ctx)

	zones := make([]*models.Zone, 0)
	if err := cursor.All(ctx, &zones); err != nil {
		return nil, fmt.Errorf("failed to decode zones: %w", err)
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, utils.CacheZoneListKey, zones, utils.ZoneListCacheTTL)
	}
	return zones, nil
}

func (r *zoneRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, utils.CacheZonePrefix+id.Hex(), utils.CacheZoneListKey)
}
