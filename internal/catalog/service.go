package catalog

import (
	"context"
	"fmt"

	"inventario-backend/internal/models"
	"inventario-backend/internal/sheets"

	"go.uber.org/zap"
)

// Service answers catalog queries from a fresh snapshot on every call.
type Service struct {
	source sheets.CatalogSource
	log    *zap.Logger
}

func NewService(source sheets.CatalogSource, log *zap.Logger) *Service {
	return &Service{source: source, log: log}
}

func (s *Service) Query(ctx context.Context, q Query) (*Result, error) {
	rows, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("katalog okunamadı: %w", err)
	}

	res := Filter(rows, q)
	if res.Fallback {
		s.log.Debug("yerel şehir için sonuç yok, tüm katalog dönülüyor",
			zap.String("ciudad", res.Query.City),
			zap.Int("rows", len(res.Normalized)),
		)
	}
	return &res, nil
}

// Stock returns false when no catalog row carries the code.
func (s *Service) Stock(ctx context.Context, code string) (models.StockInfo, bool, error) {
	rows, err := s.source.FetchAll(ctx)
	if err != nil {
		return models.StockInfo{}, false, fmt.Errorf("katalog okunamadı: %w", err)
	}
	info, ok := FindByCode(rows, code)
	return info, ok, nil
}
