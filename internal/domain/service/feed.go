package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Steelnight/dumpdate-bot/internal/domain/entity"
	"github.com/Steelnight/dumpdate-bot/internal/domain/utils/calendar"
	"github.com/Steelnight/dumpdate-bot/internal/domain/utils/waste"
	"github.com/Steelnight/dumpdate-bot/pkg/logger/types"
)

// feedWindow is how far ahead the feed is asked for events.
const feedWindow = 90 * 24 * time.Hour

type feedEventStorage interface {
	ReplaceUpcoming(ctx context.Context, locationID entity.LocationID, from time.Time, events []entity.PickupEvent) error
}

type feedUserStorage interface {
	DistinctLocations(ctx context.Context) ([]entity.LocationID, error)
}

// FeedService pulls the municipal iCal feed and refreshes the pickup_events
// rows for every location users are registered at.
type FeedService struct {
	eventStorage feedEventStorage
	userStorage  feedUserStorage

	endpoint string
	client   *http.Client
	logger   *types.Logger
}

func NewFeedService(
	endpoint string,
	logger *types.Logger,
	eventStorage feedEventStorage,
	userStorage feedUserStorage,
) *FeedService {
	return &FeedService{
		eventStorage: eventStorage,
		userStorage:  userStorage,
		endpoint:     endpoint,
		client:       &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
	}
}

// RefreshAll refreshes every registered location. A failure for one
// location is logged and the rest are still refreshed.
func (s *FeedService) RefreshAll(ctx context.Context) error {
	locations, err := s.userStorage.DistinctLocations(ctx)
	if err != nil {
		return err
	}

	s.logger.Infof("refreshing pickup calendar for %d locations", len(locations))
	for _, locationID := range locations {
		if err = s.RefreshLocation(ctx, locationID); err != nil {
			s.logger.Errorf("failed to refresh location %s: %v", locationID, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second): // be nice to the municipal API
		}
	}
	return nil
}

// RefreshLocation fetches and stores the upcoming events for one location.
// The location id is a validated type, so it can be put into the query
// string without further checks.
func (s *FeedService) RefreshLocation(ctx context.Context, locationID entity.LocationID) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("STANDORT", locationID.String())
	query.Set("DATUM_VON", today.Format("02.01.2006"))
	query.Set("DATUM_BIS", today.Add(feedWindow).Format("02.01.2006"))
	req.URL.RawQuery = query.Encode()

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed returned status %d for location %s", resp.StatusCode, locationID)
	}

	entries, err := calendar.ParsePickupCalendar(resp.Body)
	if err != nil {
		return err
	}

	var events []entity.PickupEvent
	for _, entry := range entries {
		if entry.Date.Before(today) {
			continue
		}
		for _, category := range waste.SplitSummary(entry.Summary) {
			events = append(events, entity.PickupEvent{
				LocationID: locationID,
				Date:       entry.Date,
				WasteType:  category,
			})
		}
	}

	if err = s.eventStorage.ReplaceUpcoming(ctx, locationID, today, events); err != nil {
		return err
	}

	s.logger.Infof("stored %d upcoming events for location %s", len(events), locationID)
	return nil
}
