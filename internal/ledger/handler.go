package ledger

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// POST /api/registrar_entrega
func RegisterDeliveryHandler(svc *Service, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DeliveryInput
		if err := decodeBody(c, &body); err != nil {
			return malformed(c, log, err)
		}
		return respond(c, log, svc.RegisterDelivery(c.UserContext(), body))
	}
}

// POST /api/actualizar_pago  {codigo, pagado}
// pagado is read as a flag: "false", "0", 0 and null mean false. Unlike a plain truthiness
// check, the string "false" does not mark the delivery as paid.
func UpdatePaymentHandler(svc *Service, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PaymentInput
		if err := decodeBody(c, &body); err != nil {
			return malformed(c, log, err)
		}
		return respond(c, log, svc.SetPaymentStatus(c.UserContext(), string(body.Code), bool(body.Paid)))
	}
}

// POST /api/actualizar_entrega  {codigo, entregado}
// entregado follows the same flag rules as pagado.
func UpdateDeliveryHandler(svc *Service, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DeliveryStatusInput
		if err := decodeBody(c, &body); err != nil {
			return malformed(c, log, err)
		}
		return respond(c, log, svc.SetDeliveryStatus(c.UserContext(), string(body.Code), bool(body.Delivered)))
	}
}

// decodeBody reads the body as JSON whatever the Content-Type header says.
func decodeBody(c *fiber.Ctx, out any) error {
	return c.App().Config().JSONDecoder(c.Body(), out)
}

// MethodNotAllowedHandler answers non-POST calls to the mutation routes.
func MethodNotAllowedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusMethodNotAllowed, "Método no permitido")
	}
}

// respond: kod bulunamadı ve tablo hataları 400, istemci {ok:false} bekliyor
func respond(c *fiber.Ctx, log *zap.Logger, err error) error {
	if err == nil {
		return c.JSON(fiber.Map{"ok": true})
	}
	if !errors.Is(err, ErrCodeNotFound) && !errors.Is(err, ErrMissingCode) {
		log.Error("entregas işlemi başarısız", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"ok":    false,
		"error": err.Error(),
	})
}

func malformed(c *fiber.Ctx, log *zap.Logger, err error) error {
	log.Warn("geçersiz istek gövdesi", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"ok":    false,
		"error": err.Error(),
	})
}
