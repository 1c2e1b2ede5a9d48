package catalog

import (
	"strconv"
	"strings"

	"inventario-backend/internal/models"
	"inventario-backend/internal/sheets"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const debugSampleSize = 5

type debugResponse struct {
	Query            NormalizedQuery        `json:"query"`
	Counts           debugCounts            `json:"counts"`
	SampleRaw        []sheets.Row           `json:"sample_raw"`
	SampleNormalized []models.CatalogRecord `json:"sample_normalized"`
	Result           []models.CatalogRecord `json:"result"`
}

type debugCounts struct {
	Raw        int `json:"raw"`
	Normalized int `json:"normalized"`
	Filtered   int `json:"filtered"`
}

// GET /api/consultar_productos_gsheet?ciudad=bogota&categoria=&producto=&limit=0&debug=1
// Bot için ürün listesi; her istekte tablo baştan okunur.
func ListProductsHandler(svc *Service, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 0
		if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "limit inválido")
			}
			limit = n
		}

		res, err := svc.Query(c.UserContext(), Query{
			City:     c.Query("ciudad"),
			Category: c.Query("categoria"),
			Product:  c.Query("producto"),
			Limit:    limit,
		})
		if err != nil {
			log.Error("ürün listesi alınamadı", zap.Error(err))
			return fiber.NewError(fiber.StatusBadGateway, "No se pudo consultar el inventario")
		}

		if c.Query("debug") == "1" {
			return c.JSON(debugResponse{
				Query: res.Query,
				Counts: debugCounts{
					Raw:        len(res.Raw),
					Normalized: len(res.Normalized),
					Filtered:   len(res.Items),
				},
				SampleRaw:        head(res.Raw, debugSampleSize),
				SampleNormalized: head(res.Normalized, debugSampleSize),
				Result:           head(res.Items, debugSampleSize),
			})
		}

		return c.JSON(res.Items)
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
