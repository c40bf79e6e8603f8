package impl

import (
	"context"
	"testing"

	"geosynth/internal/domain/entity"
	"geosynth/internal/domain/repository"
	"geosynth/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestZoneService_CreateZone_ClampsRadius(t *testing.T) {
	tests := []struct {
		name     string
		radius   float64
		expected float64
	}{
		{name: "below minimum", radius: 50, expected: 100},
		{name: "above maximum", radius: 5000, expected: 1000},
		{name: "within range", radius: 500, expected: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zoneRepo := &mockZoneRepository{}
			svc := NewZoneService(zoneRepo)

			ctx := context.Background()
			userID := uuid.New()
			zoneRepo.On("CreateZone", ctx, mock.AnythingOfType("*entity.InterestZone")).Return(nil)

			zone, err := svc.CreateZone(ctx, userID, &usecase.CreateZoneInput{
				Latitude:     42.6977,
				Longitude:    23.3219,
				RadiusMeters: tt.radius,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, zone.RadiusMeters)
			assert.Equal(t, userID, zone.UserID)
		})
	}
}

func TestZoneService_GetUserZones(t *testing.T) {
	zoneRepo := &mockZoneRepository{}
	svc := NewZoneService(zoneRepo)

	ctx := context.Background()
	userID := uuid.New()
	expected := []*entity.InterestZone{{ID: uuid.New(), UserID: userID}}

	zoneRepo.On("FindZonesByUser", ctx, userID).Return(expected, nil)

	zones, err := svc.GetUserZones(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, expected, zones)
}

func TestZoneService_UpdateZone_ClampsRadiusAndMovesCenter(t *testing.T) {
	zoneRepo := &mockZoneRepository{}
	svc := NewZoneService(zoneRepo)

	ctx := context.Background()
	userID := uuid.New()
	zoneID := uuid.New()
	existing := &entity.InterestZone{
		ID:           zoneID,
		UserID:       userID,
		Center:       entity.LatLng{Lat: 42.69, Lng: 23.32},
		RadiusMeters: 500,
	}

	zoneRepo.On("FindZoneByID", ctx, zoneID).Return(existing, nil)
	zoneRepo.On("UpdateZone", ctx, mock.AnythingOfType("*entity.InterestZone")).Return(nil)

	newLat := 42.70
	newRadius := 9999.0
	zone, err := svc.UpdateZone(ctx, userID, zoneID, &usecase.UpdateZoneInput{
		Latitude:     &newLat,
		RadiusMeters: &newRadius,
	})
	require.NoError(t, err)
	assert.Equal(t, 42.70, zone.Center.Lat)
	assert.Equal(t, 23.32, zone.Center.Lng)
	assert.Equal(t, entity.MaxZoneRadiusMeters, zone.RadiusMeters)
}

func TestZoneService_UpdateZone_NotFound(t *testing.T) {
	zoneRepo := &mockZoneRepository{}
	svc := NewZoneService(zoneRepo)

	ctx := context.Background()
	zoneID := uuid.New()
	zoneRepo.On("FindZoneByID", ctx, zoneID).Return(nil, repository.ErrZoneNotFound)

	_, err := svc.UpdateZone(ctx, uuid.New(), zoneID, &usecase.UpdateZoneInput{})
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestZoneService_UpdateZone_Unauthorized(t *testing.T) {
	zoneRepo := &mockZoneRepository{}
	svc := NewZoneService(zoneRepo)

	ctx := context.Background()
	zoneID := uuid.New()
	existing := &entity.InterestZone{ID: zoneID, UserID: uuid.New()}

	zoneRepo.On("FindZoneByID", ctx, zoneID).Return(existing, nil)

	_, err := svc.UpdateZone(ctx, uuid.New(), zoneID, &usecase.UpdateZoneInput{})
	assert.ErrorIs(t, err, ErrUnauthorized)
	zoneRepo.AssertNotCalled(t, "UpdateZone", mock.Anything, mock.Anything)
}

func TestZoneService_DeleteZone(t *testing.T) {
	zoneRepo := &mockZoneRepository{}
	svc := NewZoneService(zoneRepo)

	ctx := context.Background()
	userID := uuid.New()
	zoneID := uuid.New()
	existing := &entity.InterestZone{ID: zoneID, UserID: userID}

	zoneRepo.On("FindZoneByID", ctx, zoneID).Return(existing, nil)
	zoneRepo.On("DeleteZone", ctx, zoneID).Return(nil)

	require.NoError(t, svc.DeleteZone(ctx, userID, zoneID))
	zoneRepo.AssertExpectations(t)
}

func TestZoneService_DeleteZone_Unauthorized(t *testing.T) {
	zoneRepo := &mockZoneRepository{}
	svc := NewZoneService(zoneRepo)

	ctx := context.Background()
	zoneID := uuid.New()
	existing := &entity.InterestZone{ID: zoneID, UserID: uuid.New()}

	zoneRepo.On("FindZoneByID", ctx, zoneID).Return(existing, nil)

	err := svc.DeleteZone(ctx, uuid.New(), zoneID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	zoneRepo.AssertNotCalled(t, "DeleteZone", mock.Anything, mock.Anything)
}
