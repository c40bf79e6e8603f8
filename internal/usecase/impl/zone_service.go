package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"geosynth/internal/domain/entity"
	"geosynth/internal/domain/repository"
	"geosynth/internal/usecase"

	"github.com/google/uuid"
)

var (
	// ErrZoneNotFound is returned when an interest zone is not found
	ErrZoneNotFound = errors.New("interest zone not found")
	// ErrUnauthorized is returned when a user tries to access a zone they don't own
	ErrUnauthorized = errors.New("unauthorized to access this zone")
)

type zoneService struct {
	zoneRepo repository.ZoneRepository
}

// NewZoneService creates a new interest zone service instance
func NewZoneService(zoneRepo repository.ZoneRepository) usecase.ZoneUsecase {
	return &zoneService{zoneRepo: zoneRepo}
}

// CreateZone creates a new interest zone, clamping the radius to range
func (s *zoneService) CreateZone(ctx context.Context, userID uuid.UUID, input *usecase.CreateZoneInput) (*entity.InterestZone, error) {
	zone := &entity.InterestZone{
		ID:           uuid.New(),
		UserID:       userID,
		Center:       entity.LatLng{Lat: input.Latitude, Lng: input.Longitude},
		RadiusMeters: entity.ClampZoneRadius(input.RadiusMeters),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.zoneRepo.CreateZone(ctx, zone); err != nil {
		return nil, fmt.Errorf("failed to create zone: %w", err)
	}

	return zone, nil
}

// GetUserZones retrieves all interest zones owned by a user
func (s *zoneService) GetUserZones(ctx context.Context, userID uuid.UUID) ([]*entity.InterestZone, error) {
	zones, err := s.zoneRepo.FindZonesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find zones by user: %w", err)
	}

	return zones, nil
}

// UpdateZone moves or resizes an existing zone after verifying ownership
func (s *zoneService) UpdateZone(ctx context.Context, userID, zoneID uuid.UUID, input *usecase.UpdateZoneInput) (*entity.InterestZone, error) {
	zone, err := s.findOwnedZone(ctx, userID, zoneID)
	if err != nil {
		return nil, err
	}

	if input.Latitude != nil {
		zone.Center.Lat = *input.Latitude
	}
	if input.Longitude != nil {
		zone.Center.Lng = *input.Longitude
	}
	if input.RadiusMeters != nil {
		zone.RadiusMeters = entity.ClampZoneRadius(*input.RadiusMeters)
	}
	zone.UpdatedAt = time.Now()

	if err := s.zoneRepo.UpdateZone(ctx, zone); err != nil {
		return nil, fmt.Errorf("failed to update zone: %w", err)
	}

	return zone, nil
}

// DeleteZone removes a zone after verifying ownership
func (s *zoneService) DeleteZone(ctx context.Context, userID, zoneID uuid.UUID) error {
	if _, err := s.findOwnedZone(ctx, userID, zoneID); err != nil {
		return err
	}

	if err := s.zoneRepo.DeleteZone(ctx, zoneID); err != nil {
		return fmt.Errorf("failed to delete zone: %w", err)
	}

	return nil
}

func (s *zoneService) findOwnedZone(ctx context.Context, userID, zoneID uuid.UUID) (*entity.InterestZone, error) {
	zone, err := s.zoneRepo.FindZoneByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, repository.ErrZoneNotFound) {
			return nil, ErrZoneNotFound
		}

		return nil, fmt.Errorf("failed to find zone by ID: %w", err)
	}

	if zone.UserID != userID {
		return nil, ErrUnauthorized
	}

	return zone, nil
}
