package stats

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/internal/apierror"
)

// Service records endpoint hits and serves aggregates over them
type Service struct {
	Repo     Repository
	Exporter Exporter
	Log      *zap.Logger
}

func NewService(r Repository, exporter Exporter, log *zap.Logger) *Service {
	return &Service{Repo: r, Exporter: exporter, Log: log}
}

// ===========================
// 🎯 Record Hit
func (s *Service) RecordHit(ctx context.Context, dto EndpointHitDto) (*EndpointHitDto, error) {
	if strings.TrimSpace(dto.App) == "" || strings.TrimSpace(dto.URI) == "" || strings.TrimSpace(dto.IP) == "" {
		return nil, apierror.Validation("Hit must carry app, uri and ip")
	}
	if dto.Timestamp == nil || dto.Timestamp.IsZero() {
		return nil, apierror.Validation("Hit must carry a timestamp")
	}

	hit := &EndpointHit{
		App:       dto.App,
		URI:       dto.URI,
		IP:        dto.IP,
		Timestamp: dto.Timestamp.UTC(),
	}
	if err := s.Repo.SaveHit(ctx, hit); err != nil {
		return nil, err
	}

	dto.ID = hit.ID
	return &dto, nil
}

// ===========================
// 📊 Query Stats
func (s *Service) GetStats(ctx context.Context, q StatsQuery) ([]ViewStats, error) {
	if q.Start.After(q.End) {
		return nil, apierror.Validation("start must not be after end")
	}

	var (
		out []ViewStats
		err error
	)
	if q.Unique {
		out, err = s.Repo.GetUniqueStats(ctx, q)
	} else {
		out, err = s.Repo.GetStats(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []ViewStats{}
	}
	return out, nil
}

// ===========================
// 📤 Export Stats
// Export returns the file bytes, its name and content type.
func (s *Service) Export(ctx context.Context, q StatsQuery, format string) ([]byte, string, string, error) {
	switch format {
	case FormatCSV, FormatExcel, FormatPDF:
	default:
		return nil, "", "", apierror.Validation("Unsupported export format %q", format)
	}

	rows, err := s.GetStats(ctx, q)
	if err != nil {
		return nil, "", "", err
	}
	return s.Exporter.Export(format, q, rows)
}
