package impl

import (
	"context"

	"geosynth/internal/domain/entity"
	"geosynth/internal/domain/service"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/mock"
)

type mockZoneRepository struct {
	mock.Mock
}

func (m *mockZoneRepository) CreateZone(ctx context.Context, zone *entity.InterestZone) error {
	return m.Called(ctx, zone).Error(0)
}

func (m *mockZoneRepository) FindZoneByID(ctx context.Context, id uuid.UUID) (*entity.InterestZone, error) {
	args := m.Called(ctx, id)
	if zone := args.Get(0); zone != nil {
		return zone.(*entity.InterestZone), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockZoneRepository) FindZonesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.InterestZone, error) {
	args := m.Called(ctx, userID)
	if zones := args.Get(0); zones != nil {
		return zones.([]*entity.InterestZone), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockZoneRepository) UpdateZone(ctx context.Context, zone *entity.InterestZone) error {
	return m.Called(ctx, zone).Error(0)
}

func (m *mockZoneRepository) DeleteZone(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockZoneRepository) ListZones(ctx context.Context) ([]*entity.InterestZone, error) {
	args := m.Called(ctx)
	if zones := args.Get(0); zones != nil {
		return zones.([]*entity.InterestZone), args.Error(1)
	}

	return nil, args.Error(1)
}

type mockGeometryRepository struct {
	mock.Mock
}

func (m *mockGeometryRepository) SaveCollection(ctx context.Context, geometry *entity.MessageGeometry) error {
	return m.Called(ctx, geometry).Error(0)
}

func (m *mockGeometryRepository) FindByMessage(ctx context.Context, messageID uuid.UUID) (*entity.MessageGeometry, error) {
	args := m.Called(ctx, messageID)
	if geometry := args.Get(0); geometry != nil {
		return geometry.(*entity.MessageGeometry), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockGeometryRepository) FindUnmatched(ctx context.Context, limit int) ([]*entity.MessageGeometry, error) {
	args := m.Called(ctx, limit)
	if geometries := args.Get(0); geometries != nil {
		return geometries.([]*entity.MessageGeometry), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockGeometryRepository) MarkMatched(ctx context.Context, messageID uuid.UUID) error {
	return m.Called(ctx, messageID).Error(0)
}

type mockMatchRepository struct {
	mock.Mock
}

func (m *mockMatchRepository) CreateMatches(ctx context.Context, matches []*entity.NotificationMatch) error {
	return m.Called(ctx, matches).Error(0)
}

func (m *mockMatchRepository) FindUnnotified(ctx context.Context, limit int) ([]*entity.NotificationMatch, error) {
	args := m.Called(ctx, limit)
	if matches := args.Get(0); matches != nil {
		return matches.([]*entity.NotificationMatch), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockMatchRepository) MarkNotified(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) PublishMatch(ctx context.Context, event *service.MatchEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockNotifier) Close() error {
	return m.Called().Error(0)
}

type mockGeocodingUsecase struct {
	mock.Mock
}

func (m *mockGeocodingUsecase) ResolveExtraction(ctx context.Context, extraction *entity.LocationExtraction) (map[string]entity.GeocodedPoint, error) {
	args := m.Called(ctx, extraction)
	if resolved := args.Get(0); resolved != nil {
		return resolved.(map[string]entity.GeocodedPoint), args.Error(1)
	}

	return nil, args.Error(1)
}

type mockSynthesisUsecase struct {
	mock.Mock
}

func (m *mockSynthesisUsecase) BuildFeatureCollection(ctx context.Context, extraction *entity.LocationExtraction, resolved map[string]entity.GeocodedPoint) (*geojson.FeatureCollection, error) {
	args := m.Called(ctx, extraction, resolved)
	if collection := args.Get(0); collection != nil {
		return collection.(*geojson.FeatureCollection), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockSynthesisUsecase) SelectIncidentGeometry(report *entity.IncidentReport) orb.Geometry {
	args := m.Called(report)
	if geometry := args.Get(0); geometry != nil {
		return geometry.(orb.Geometry)
	}

	return nil
}
