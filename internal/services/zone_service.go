package services

import (
	"context"
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skyfence/internal/models"
	"skyfence/internal/repositories/interfaces"
	"skyfence/internal/validators"
	"skyfence/pkg/logger"
)

// ZoneService owns the persisted zone collection. Every record it writes has
// passed validation; rejected requests leave stored state untouched.
type ZoneService interface {
	Create(ctx context.Context, req *validators.ZoneRequest) (*models.Zone, error)
	Update(ctx context.Context, id primitive.ObjectID, req *validators.ZoneRequest) (*models.Zone, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Zone, error)
	List(ctx context.Context) ([]*models.Zone, error)
}

type zoneService struct {
	zoneRepo interfaces.ZoneRepository
	logger   *logger.Logger
}

func NewZoneService(zoneRepo interfaces.ZoneRepository, log *logger.Logger) ZoneService {
	return &zoneService{
		zoneRepo: zoneRepo,
		logger:   log,
	}
}

func (s *zoneService) Create(ctx context.Context, req *validators.ZoneRequest) (*models.Zone, error) {
	polygon, _, verr := validators.ValidateZoneRequest(req, true)
	if verr != nil {
		s.logger.LogValidationFailure(verr.Reason, verr.Field, verr.Message)
		return nil, verr
	}

	zone := &models.Zone{
		Name:     strings.TrimSpace(*req.Name),
		Type:     models.ZoneType(*req.Type),
		Boundary: *polygon,
	}
	if req.AltitudeLimit != nil {
		limit := *req.AltitudeLimit
		zone.AltitudeLimit = &limit
	}
	if req.TimeWindow != nil {
		zone.TimeWindow = strings.TrimSpace(*req.TimeWindow)
	}

	if err := s.zoneRepo.Create(ctx, zone); err != nil {
		return nil, err
	}

	s.logger.LogZoneEvent(zone.ID, "zone_created", map[string]interface{}{"name": zone.Name})
	return zone, nil
}

// Update merges the supplied fields over the stored record and re-validates
// the merged result as a whole, so even a name-only update re-checks the
// existing geometry. The stored record is only replaced after the merged
// record passes.
func (s *zoneService) Update(ctx context.Context, id primitive.ObjectID, req *validators.ZoneRequest) (*models.Zone, error) {
	existing, err := s.zoneRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if req != nil {
		if req.Name != nil {
			merged.Name = strings.TrimSpace(*req.Name)
		}
		if req.Type != nil {
			merged.Type = models.ZoneType(*req.Type)
		}
		if req.AltitudeLimit != nil {
			limit := *req.AltitudeLimit
			merged.AltitudeLimit = &limit
		}
		if req.TimeWindow != nil {
			merged.TimeWindow = strings.TrimSpace(*req.TimeWindow)
		}
	}

	mergedBoundary := json.RawMessage(nil)
	if req != nil && len(req.Boundary) > 0 {
		mergedBoundary = req.Boundary
	} else {
		encoded, err := json.Marshal(merged.Boundary)
		if err != nil {
			return nil, err
		}
		mergedBoundary = encoded
	}
	name := merged.Name
	zoneType := string(merged.Type)
	fullReq := &validators.ZoneRequest{
		Name:     &name,
		Type:     &zoneType,
		Boundary: mergedBoundary,
	}
	if merged.AltitudeLimit != nil {
		fullReq.AltitudeLimit = merged.AltitudeLimit
	}
	if merged.TimeWindow != "" {
		fullReq.TimeWindow = &merged.TimeWindow
	}

	polygon, _, verr := validators.ValidateZoneRequest(fullReq, true)
	if verr != nil {
		s.logger.LogValidationFailure(verr.Reason, verr.Field, verr.Message)
		return nil, verr
	}
	merged.Boundary = *polygon

	if err := s.zoneRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	s.logger.LogZoneEvent(merged.ID, "zone_updated", map[string]interface{}{"name": merged.Name})
	return &merged, nil
}

func (s *zoneService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.zoneRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.LogZoneEvent(id, "zone_deleted", nil)
	return nil
}

func (s *zoneService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Zone, error) {
	return s.zoneRepo.GetByID(ctx, id)
}

func (s *zoneService) List(ctx context.Context) ([]*models.Zone, error) {
	return s.zoneRepo.List(ctx)
}
