package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"inventario-backend/internal/auth"
	"inventario-backend/internal/ledger"
	"inventario-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// Service keeps a Postgres copy of every ledger write. It implements ledger.Recorder.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// Record never fails the ledger call; the sheet already holds the change.
func (s *Service) Record(ctx context.Context, e ledger.Event) {
	entry := newLogEntry(auth.ClientFrom(ctx), e)
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Error("audit log kaydedilemedi",
			zap.String("action", string(e.Action)),
			zap.String("code", e.Code),
			zap.Error(err),
		)
	}
}

func newLogEntry(client string, e ledger.Event) models.AuditLog {
	// jsonb kolonu boş string kabul etmez
	data := "null"
	if e.Data != nil {
		if b, err := json.Marshal(e.Data); err == nil {
			data = string(b)
		}
	}
	return models.AuditLog{
		Client: client,
		Action: string(e.Action),
		Code:   e.Code,
		Row:    e.Row,
		Value:  e.Value,
		Data:   data,
	}
}

type Filter struct {
	Code   string
	Action string
	Limit  int
}

// List returns the newest entries first.
func (s *Service) List(ctx context.Context, f Filter) ([]models.AuditLog, error) {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.Code != "" {
		q = q.Where("code = ?", f.Code)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("audit loglar listelenemedi: %w", err)
	}
	return logs, nil
}
