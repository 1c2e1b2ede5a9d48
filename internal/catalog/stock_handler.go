package catalog

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GET /api/consultar_stock/:codigo
func GetStockHandler(svc *Service, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := url.PathUnescape(c.Params("codigo"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Código inválido")
		}

		info, found, err := svc.Stock(c.UserContext(), code)
		if err != nil {
			log.Error("stok sorgulanamadı", zap.String("codigo", code), zap.Error(err))
			return fiber.NewError(fiber.StatusBadGateway, "No se pudo consultar el inventario")
		}
		if !found {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}
		return c.JSON(info)
	}
}
