package statsclient

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/internal/event"
	"github.com/sharath018/ewm-backend/internal/stats"
	"github.com/sharath018/ewm-backend/utils"
)

// viewsEpoch is the lower bound of every views query.
var viewsEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// StatsReader is satisfied by *Client.
type StatsReader interface {
	Stats(ctx context.Context, q stats.StatsQuery) ([]stats.ViewStats, error)
}

// Gateway records hits and resolves event views. Failures are logged and
// never returned: stats are best effort for the main service.
type Gateway struct {
	App       string
	Publisher HitPublisher
	Reader    StatsReader
	Cache     ViewsCache
	Log       *zap.Logger
	Clock     func() time.Time
}

func NewGateway(app string, publisher HitPublisher, reader StatsReader, cache ViewsCache, log *zap.Logger) *Gateway {
	return &Gateway{
		App:       app,
		Publisher: publisher,
		Reader:    reader,
		Cache:     cache,
		Log:       log,
		Clock:     func() time.Time { return time.Now().UTC() },
	}
}

func (g *Gateway) RecordHit(ctx context.Context, uri, ip string) {
	ts := utils.NewDateTime(g.Clock().Truncate(time.Second))
	hit := stats.EndpointHitDto{App: g.App, URI: uri, IP: ip, Timestamp: &ts}

	if err := g.Publisher.Publish(ctx, hit); err != nil {
		g.Log.Warn("record hit failed", zap.String("uri", uri), zap.Error(err))
		return
	}

	// the next views read for this event goes back to the stats-service
	if g.Cache == nil {
		return
	}
	if id, ok := eventIDFromURI(uri); ok {
		if err := g.Cache.Invalidate(ctx, id); err != nil {
			g.Log.Warn("views cache invalidate failed", zap.Uint("event_id", id), zap.Error(err))
		}
	}
}

// Views returns unique views per event id; unknown ids map to zero.
func (g *Gateway) Views(ctx context.Context, eventIDs []uint) map[uint]int64 {
	views := make(map[uint]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return views
	}

	missing := eventIDs
	if g.Cache != nil {
		cached, err := g.Cache.Get(ctx, eventIDs)
		if err != nil {
			g.Log.Warn("views cache read failed", zap.Error(err))
		} else {
			missing = missing[:0:0]
			for _, id := range eventIDs {
				if n, ok := cached[id]; ok {
					views[id] = n
				} else {
					missing = append(missing, id)
				}
			}
		}
	}
	if len(missing) == 0 {
		return views
	}

	uris := make([]string, len(missing))
	for i, id := range missing {
		uris[i] = event.EventURI(id)
	}

	rows, err := g.Reader.Stats(ctx, stats.StatsQuery{
		Start:  viewsEpoch,
		End:    g.Clock().Add(time.Second),
		Uris:   uris,
		Unique: true,
	})
	if err != nil {
		g.Log.Warn("views lookup failed", zap.Int("events", len(missing)), zap.Error(err))
		return views
	}

	fetched := make(map[uint]int64, len(missing))
	for _, id := range missing {
		fetched[id] = 0
	}
	for _, row := range rows {
		if id, ok := eventIDFromURI(row.URI); ok {
			if _, wanted := fetched[id]; wanted {
				fetched[id] += row.Hits
			}
		}
	}
	for id, n := range fetched {
		views[id] = n
	}

	if g.Cache != nil {
		if err := g.Cache.Set(ctx, fetched); err != nil {
			g.Log.Warn("views cache write failed", zap.Error(err))
		}
	}
	return views
}

func eventIDFromURI(uri string) (uint, bool) {
	raw, ok := strings.CutPrefix(uri, "/events/")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
