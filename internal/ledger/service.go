package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventario-backend/internal/models"
	"inventario-backend/internal/sheets"

	"go.uber.org/zap"
)

var (
	ErrCodeNotFound = errors.New("Código no encontrado en Entregas")
	ErrMissingCode  = errors.New("El código es obligatorio")
)

type EventAction string

const (
	ActionRegister       EventAction = "register"
	ActionPaymentUpdate  EventAction = "payment_update"
	ActionDeliveryUpdate EventAction = "delivery_update"
)

// Event describes a ledger write that already reached the store.
type Event struct {
	Action EventAction
	Code   string
	Row    int // kayıt için 0, satır aranmadı
	Value  string
	Data   any
}

// Recorder is told about every successful ledger write.
type Recorder interface {
	Record(ctx context.Context, e Event)
}

type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service writes the Entregas sheet. Lookups and updates are separate store calls;
// two concurrent updates for one code are last-writer-wins.
type Service struct {
	store    sheets.Store
	log      *zap.Logger
	recorder Recorder
	now      func() time.Time
}

func NewService(store sheets.Store, log *zap.Logger, opts ...Option) *Service {
	s := &Service{store: store, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterDelivery appends a new row. Empty Pago/Estado fall back to Pendiente/Por despachar.
func (s *Service) RegisterDelivery(ctx context.Context, in DeliveryInput) error {
	d := in.Delivery(s.now())

	ws, err := s.store.OpenLedger(ctx)
	if err != nil {
		return fmt.Errorf("entregas açılamadı: %w", err)
	}
	if err := ws.AppendRow(ctx, d.Row()); err != nil {
		return fmt.Errorf("entrega kaydedilemedi: %w", err)
	}

	s.log.Info("teslimat kaydedildi",
		zap.String("codigo", d.Code),
		zap.String("ciudad", d.City),
		zap.String("pago", string(d.Payment)),
		zap.String("estado", string(d.Status)),
	)
	s.record(ctx, Event{Action: ActionRegister, Code: d.Code, Value: string(d.Status), Data: in})
	return nil
}

// SetPaymentStatus writes Pagado or Pendiente into the Pago column of the first row holding code.
func (s *Service) SetPaymentStatus(ctx context.Context, code string, paid bool) error {
	value := models.PaymentStatusFor(paid)
	row, err := s.updateByCode(ctx, code, models.LedgerColumnPayment, string(value))
	if err != nil {
		return err
	}
	s.record(ctx, Event{Action: ActionPaymentUpdate, Code: code, Row: row, Value: string(value)})
	return nil
}

// SetDeliveryStatus writes Entregado or En ruta into the Estado column of the first row holding code.
// Any transition is accepted.
func (s *Service) SetDeliveryStatus(ctx context.Context, code string, delivered bool) error {
	value := models.DeliveryStatusFor(delivered)
	row, err := s.updateByCode(ctx, code, models.LedgerColumnStatus, string(value))
	if err != nil {
		return err
	}
	s.record(ctx, Event{Action: ActionDeliveryUpdate, Code: code, Row: row, Value: string(value)})
	return nil
}

func (s *Service) updateByCode(ctx context.Context, code string, col int, value string) (int, error) {
	if strings.TrimSpace(code) == "" {
		return 0, ErrMissingCode
	}

	ws, err := s.store.OpenLedger(ctx)
	if err != nil {
		return 0, fmt.Errorf("entregas açılamadı: %w", err)
	}

	// Kod benzersiz değil; Codigo sütununda ilk eşleşen satır güncellenir
	row, err := ws.FindRow(ctx, models.LedgerColumnCode, code)
	if errors.Is(err, sheets.ErrRowNotFound) {
		return 0, ErrCodeNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("kod aranamadı: %w", err)
	}

	if err := ws.UpdateCell(ctx, row, col, value); err != nil {
		return 0, fmt.Errorf("hücre güncellenemedi: %w", err)
	}

	s.log.Info("teslimat güncellendi",
		zap.String("codigo", code),
		zap.Int("row", row),
		zap.Int("col", col),
		zap.String("value", value),
	)
	return row, nil
}

func (s *Service) record(ctx context.Context, e Event) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(ctx, e)
}
