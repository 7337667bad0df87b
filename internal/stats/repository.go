package stats

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	SaveHit(ctx context.Context, hit *EndpointHit) error
	GetStats(ctx context.Context, q StatsQuery) ([]ViewStats, error)
	GetUniqueStats(ctx context.Context, q StatsQuery) ([]ViewStats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveHit(ctx context.Context, hit *EndpointHit) error {
	return r.db.WithContext(ctx).Create(hit).Error
}

func (r *repository) GetStats(ctx context.Context, q StatsQuery) ([]ViewStats, error) {
	return r.aggregate(ctx, q, "COUNT(ip)")
}

func (r *repository) GetUniqueStats(ctx context.Context, q StatsQuery) ([]ViewStats, error) {
	return r.aggregate(ctx, q, "COUNT(DISTINCT ip)")
}

// aggregate groups hits per (app, uri), busiest first.
func (r *repository) aggregate(ctx context.Context, q StatsQuery, counter string) ([]ViewStats, error) {
	var out []ViewStats

	query := r.db.WithContext(ctx).
		Model(&EndpointHit{}).
		Select("app, uri, "+counter+" AS hits").
		Where("timestamp BETWEEN ? AND ?", q.Start, q.End)
	if len(q.Uris) > 0 {
		query = query.Where("uri IN ?", q.Uris)
	}

	err := query.Group("app, uri").
		Order("hits DESC").
		Order("uri ASC").
		Scan(&out).Error
	return out, err
}
