package audit

import (
	"encoding/json"
	"strconv"

	"inventario-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuditLogResponse struct {
	ID        string          `json:"id"`
	CreatedAt string          `json:"created_at"`
	Client    string          `json:"client"`
	Action    string          `json:"action"`
	Code      string          `json:"codigo"`
	Row       int             `json:"fila,omitempty"`
	Value     string          `json:"valor,omitempty"`
	Data      json.RawMessage `json:"data"`
}

// GET /api/audit-logs?codigo=P1&action=payment_update&limit=50
func ListAuditLogsHandler(svc *Service, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFilter(c)
		if err != nil {
			return err
		}

		logs, err := svc.List(c.UserContext(), f)
		if err != nil {
			log.Error("audit loglar listelenemedi", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los registros")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			data := json.RawMessage(l.Data)
			if !json.Valid(data) {
				data = json.RawMessage("null")
			}
			resp = append(resp, AuditLogResponse{
				ID:        l.ID.String(),
				CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
				Client:    l.Client,
				Action:    l.Action,
				Code:      l.Code,
				Row:       l.Row,
				Value:     l.Value,
				Data:      data,
			})
		}
		return c.JSON(resp)
	}
}

func parseFilter(c *fiber.Ctx) (Filter, error) {
	f := Filter{
		Code:   c.Query("codigo"),
		Action: c.Query("action"),
	}

	switch ledger.EventAction(f.Action) {
	case "", ledger.ActionRegister, ledger.ActionPaymentUpdate, ledger.ActionDeliveryUpdate:
	default:
		return f, fiber.NewError(fiber.StatusBadRequest, "action inválida")
	}

	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return f, fiber.NewError(fiber.StatusBadRequest, "limit inválido")
		}
		f.Limit = n
	}
	return f, nil
}
