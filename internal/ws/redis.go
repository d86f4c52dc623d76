package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CatalogChannel carries reload notices between server instances.
const CatalogChannel = "catalog_events"

const eventCatalogReloaded = "catalog_reloaded"

type CatalogEvent struct {
	Type    string    `json:"type"`
	Origin  string    `json:"origin"`
	Pitches int       `json:"pitches"`
	At      time.Time `json:"at"`
}

// PublishCatalogReload tells the other instances that the catalog changed.
// A nil client is a no-op.
func PublishCatalogReload(ctx context.Context, rdb *redis.Client, origin string, pitches int) error {
	if rdb == nil {
		return nil
	}
	payload, err := json.Marshal(CatalogEvent{
		Type:    eventCatalogReloaded,
		Origin:  origin,
		Pitches: pitches,
		At:      time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return rdb.Publish(ctx, CatalogChannel, payload).Err()
}

// StartCatalogSubscriber refreshes the catalog and pushes it to every local
// viewer when another instance announces a reload.
func StartCatalogSubscriber(ctx context.Context, rdb *redis.Client, h *Hub) {
	if rdb == nil {
		log.Info().Str("component", "ws").Msg("redis client not set; catalog subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, CatalogChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Info().Str("component", "ws").Str("channel", CatalogChannel).Msg("catalog subscriber started")
		for msg := range ch {
			h.handleCatalogEvent(ctx, []byte(msg.Payload))
		}
	}()
}

func (h *Hub) handleCatalogEvent(ctx context.Context, payload []byte) bool {
	var ev CatalogEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		log.Warn().Str("component", "ws").Err(err).Msg("invalid catalog event payload")
		return false
	}
	if ev.Type != eventCatalogReloaded {
		log.Debug().Str("component", "ws").Str("type", ev.Type).Msg("ignoring catalog event")
		return false
	}
	if ev.Origin == h.instanceID {
		return false
	}

	cat, err := h.holder.Refresh(ctx)
	if err != nil {
		log.Error().Str("component", "ws").Err(err).Msg("catalog refresh failed")
		return false
	}
	h.ReloadAll(cat)
	return true
}
