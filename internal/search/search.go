package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"lagerstyring-client/config"
	"lagerstyring-client/internal/api"
	"lagerstyring-client/internal/model"
)

// Service resolves a search query into fully-enriched device records. The
// device-match request runs first; every matched device is then enriched by
// an independent task, so one slow or failing lookup never blocks or aborts
// its siblings. Reference data (status types, overviews, cupboards, rooms)
// is cached with a TTL because consecutive searches tend to hit the same
// handful of records.
type Service struct {
	inv   *api.Inventory
	cache *cache.Cache
	log   *zap.Logger
}

// NewService creates a search service.
func NewService(inv *api.Inventory, cfg *config.CacheConfig, log *zap.Logger) *Service {
	return &Service{
		inv:   inv,
		cache: cache.New(cfg.TTL, cfg.Cleanup),
		log:   log,
	}
}

// Search returns one EnrichedDevice per device matching query, in the order
// the backend returned them. A blank query issues no request. Enrichment
// failures degrade individual fields to their "not available" markers; only
// a failure of the device-match step itself is returned as an error.
func (s *Service) Search(ctx context.Context, query string) ([]model.EnrichedDevice, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	devices, err := s.inv.SearchDevices(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("device search failed: %w", err)
	}
	if len(devices) == 0 {
		return nil, nil
	}

	results := make([]model.EnrichedDevice, len(devices))
	var wg sync.WaitGroup
	for i, device := range devices {
		wg.Add(1)
		go func(i int, device model.Device) {
			defer wg.Done()
			results[i] = s.enrich(ctx, device)
		}(i, device)
	}
	wg.Wait()

	return results, nil
}

// enrich joins one device with its status, overview and resolved location.
// Status and overview resolve in parallel; the location chain is sequential
// because the room lookup needs the cupboard's result.
func (s *Service) enrich(ctx context.Context, device model.Device) model.EnrichedDevice {
	enriched := model.EnrichedDevice{
		Device:          device,
		LocationDetails: model.LocationUnknown,
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		status, err := s.status(ctx, device.StatusID)
		if err != nil {
			s.log.Warn("status lookup failed",
				zap.Int64("device_id", device.ID),
				zap.Int64("status_id", device.StatusID),
				zap.Error(err))
			return
		}
		enriched.Status = status
	}()

	go func() {
		defer wg.Done()
		overview, err := s.overview(ctx, device.OverviewID)
		if err != nil {
			s.log.Warn("overview lookup failed",
				zap.Int64("device_id", device.ID),
				zap.Int64("overview_id", device.OverviewID),
				zap.Error(err))
			return
		}
		enriched.Overview = overview
	}()

	if device.LocationID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			enriched.LocationDetails = s.location(ctx, device.ID, *device.LocationID)
		}()
	}

	wg.Wait()
	return enriched
}

// location resolves the cupboard -> room chain into a display string: both
// links give "{cupboard} - {room}", cupboard alone gives its designation,
// nothing gives the unknown sentinel.
func (s *Service) location(ctx context.Context, deviceID, cupboardID int64) string {
	cupboard, err := s.cupboard(ctx, cupboardID)
	if err != nil {
		s.log.Warn("cupboard lookup failed",
			zap.Int64("device_id", deviceID),
			zap.Int64("cupboard_id", cupboardID),
			zap.Error(err))
		return model.LocationUnknown
	}

	if cupboard.RoomID == nil {
		return cupboard.Designation
	}

	room, err := s.room(ctx, *cupboard.RoomID)
	if err != nil {
		s.log.Warn("room lookup failed",
			zap.Int64("device_id", deviceID),
			zap.Int64("room_id", *cupboard.RoomID),
			zap.Error(err))
		return cupboard.Designation
	}

	return fmt.Sprintf("%s - %s", cupboard.Designation, room.Designation)
}

func (s *Service) status(ctx context.Context, id int64) (*model.StatusInfo, error) {
	key := fmt.Sprintf("status/%d", id)
	if cached, found := s.cache.Get(key); found {
		return cached.(*model.StatusInfo), nil
	}
	status, err := s.inv.GetStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, status)
	return status, nil
}

func (s *Service) overview(ctx context.Context, id int64) (*model.OverviewInfo, error) {
	key := fmt.Sprintf("overview/%d", id)
	if cached, found := s.cache.Get(key); found {
		return cached.(*model.OverviewInfo), nil
	}
	overview, err := s.inv.GetOverview(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, overview)
	return overview, nil
}

func (s *Service) cupboard(ctx context.Context, id int64) (*model.Cupboard, error) {
	key := fmt.Sprintf("cupboard/%d", id)
	if cached, found := s.cache.Get(key); found {
		return cached.(*model.Cupboard), nil
	}
	cupboard, err := s.inv.GetCupboard(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, cupboard)
	return cupboard, nil
}

func (s *Service) room(ctx context.Context, id int64) (*model.Room, error) {
	key := fmt.Sprintf("room/%d", id)
	if cached, found := s.cache.Get(key); found {
		return cached.(*model.Room), nil
	}
	room, err := s.inv.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, room)
	return room, nil
}
