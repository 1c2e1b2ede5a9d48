package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"time"

	"inventario-backend/internal/auth"
	"inventario-backend/internal/catalog"
	"inventario-backend/internal/ledger"
	"inventario-backend/internal/server"
	"inventario-backend/internal/sheets"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var catalogRows = [][]any{
	{"Producto", "Codigo", "Precio_Venta", "Categoria", "Ciudad", "Stock_Actual"},
	{"Aceite de coco", "AC-1", 15000, "Cuidado personal", "Bogotá", 12},
	{"Jabón artesanal", "JB-2", 8000, "Aseo", "Riohacha", 5},
	{"Crema de manos", "CR-3", 22000, "Cuidado personal", "Medellín", 0},
}

func writeWorkbook(path string) {
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range catalogRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		Expect(err).NotTo(HaveOccurred())
		row := r
		Expect(f.SetSheetRow("Sheet1", cell, &row)).To(Succeed())
	}
	Expect(f.SaveAs(path)).To(Succeed())
}

func ledgerRows(path string) [][]string {
	f, err := excelize.OpenFile(path)
	Expect(err).NotTo(HaveOccurred())
	defer f.Close()
	rows, err := f.GetRows("Entregas")
	Expect(err).NotTo(HaveOccurred())
	return rows
}

func newApp(path, secret string) *fiber.App {
	log := zap.NewNop()
	store := sheets.NewWorkbookStore(path, "", "Entregas")
	clock := func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) }

	return server.NewApp(server.Deps{
		Catalog:     catalog.NewService(store, log),
		Ledger:      ledger.NewService(store, log, ledger.WithClock(clock)),
		JWTSecret:   secret,
		CORSOrigins: "*",
		Log:         log,
	}, fiber.Config{})
}

func do(app *fiber.App, method, target, body, token string) (int, []byte) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	Expect(err).NotTo(HaveOccurred())
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	return resp.StatusCode, data
}

func post(app *fiber.App, target, body, contentType string) (int, []byte) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	Expect(err).NotTo(HaveOccurred())
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	return resp.StatusCode, data
}

func decode[T any](data []byte) T {
	var v T
	Expect(json.Unmarshal(data, &v)).To(Succeed())
	return v
}

var _ = Describe("App", func() {
	var (
		path string
		app  *fiber.App
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "inventario.xlsx")
		writeWorkbook(path)
		app = newApp(path, "")
	})

	It("reports health", func() {
		status, body := do(app, http.MethodGet, "/health", "", "")
		Expect(status).To(Equal(http.StatusOK))
		Expect(decode[map[string]string](body)).To(HaveKeyWithValue("status", "UP"))
	})

	Describe("GET /api/consultar_productos_gsheet", func() {
		It("filters by city alias", func() {
			status, body := do(app, http.MethodGet, "/api/consultar_productos_gsheet?ciudad=La%20Guajira", "", "")
			Expect(status).To(Equal(http.StatusOK))

			items := decode[[]map[string]any](body)
			Expect(items).To(HaveLen(1))
			Expect(items[0]).To(HaveKeyWithValue("codigo", "JB-2"))
			Expect(items[0]).To(HaveKeyWithValue("nombre", "Jabón artesanal"))
			Expect(items[0]).NotTo(HaveKey("stock"))
		})

		It("falls back to the whole catalog for a local city with no match", func() {
			status, body := do(app, http.MethodGet, "/api/consultar_productos_gsheet?ciudad=bogota&producto=zzz", "", "")
			Expect(status).To(Equal(http.StatusOK))
			Expect(decode[[]map[string]any](body)).To(HaveLen(3))
		})

		It("returns an empty list for other cities with no match", func() {
			status, body := do(app, http.MethodGet, "/api/consultar_productos_gsheet?ciudad=cali", "", "")
			Expect(status).To(Equal(http.StatusOK))
			Expect(decode[[]map[string]any](body)).To(BeEmpty())
		})

		It("applies the limit", func() {
			status, body := do(app, http.MethodGet, "/api/consultar_productos_gsheet?limit=1", "", "")
			Expect(status).To(Equal(http.StatusOK))
			Expect(decode[[]map[string]any](body)).To(HaveLen(1))
		})

		It("rejects a non-numeric limit", func() {
			status, body := do(app, http.MethodGet, "/api/consultar_productos_gsheet?limit=diez", "", "")
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(decode[map[string]string](body)).To(HaveKeyWithValue("error", "limit inválido"))
		})

		It("returns the debug payload", func() {
			status, body := do(app, http.MethodGet, "/api/consultar_productos_gsheet?ciudad=Medell%C3%ADn&debug=1", "", "")
			Expect(status).To(Equal(http.StatusOK))

			var payload struct {
				Query  map[string]any `json:"query"`
				Counts map[string]int `json:"counts"`
				Raw    []any          `json:"sample_raw"`
				Result []any          `json:"result"`
			}
			Expect(json.Unmarshal(body, &payload)).To(Succeed())
			Expect(payload.Query).To(HaveKeyWithValue("ciudad", "medellin"))
			Expect(payload.Counts).To(Equal(map[string]int{"raw": 3, "normalized": 3, "filtered": 1}))
			Expect(payload.Raw).To(HaveLen(3))
			Expect(payload.Result).To(HaveLen(1))
		})

		It("tolerates a trailing slash", func() {
			status, _ := do(app, http.MethodGet, "/api/consultar_productos_gsheet/", "", "")
			Expect(status).To(Equal(http.StatusOK))
		})

		It("maps a store failure to 502", func() {
			app = newApp(filepath.Join(GinkgoT().TempDir(), "missing.xlsx"), "")
			status, body := do(app, http.MethodGet, "/api/consultar_productos_gsheet", "", "")
			Expect(status).To(Equal(http.StatusBadGateway))
			Expect(decode[map[string]string](body)).To(HaveKey("error"))
		})
	})

	Describe("GET /api/consultar_stock/:codigo", func() {
		It("finds a product by normalized code", func() {
			status, body := do(app, http.MethodGet, "/api/consultar_stock/ac-1", "", "")
			Expect(status).To(Equal(http.StatusOK))

			info := decode[map[string]any](body)
			Expect(info).To(HaveKeyWithValue("producto", "Aceite de coco"))
			Expect(info).To(HaveKeyWithValue("stock", BeNumerically("==", 12)))
			Expect(info).To(HaveKeyWithValue("precio", BeNumerically("==", 15000)))
		})

		It("answers 404 for an unknown code", func() {
			status, body := do(app, http.MethodGet, "/api/consultar_stock/NOPE", "", "")
			Expect(status).To(Equal(http.StatusNotFound))
			Expect(decode[map[string]string](body)).To(HaveKeyWithValue("error", "Producto no encontrado"))
		})
	})

	Describe("ledger routes", func() {
		DescribeTable("reject non-POST methods",
			func(method, target string) {
				status, body := do(app, method, target, "", "")
				Expect(status).To(Equal(http.StatusMethodNotAllowed))
				Expect(decode[map[string]string](body)).To(HaveKeyWithValue("error", "Método no permitido"))
			},
			Entry("registrar_entrega", http.MethodGet, "/api/registrar_entrega"),
			Entry("actualizar_pago", http.MethodGet, "/api/actualizar_pago"),
			Entry("actualizar_entrega", http.MethodPut, "/api/actualizar_entrega"),
		)

		It("registers a delivery and updates its statuses", func() {
			status, body := do(app, http.MethodPost, "/api/registrar_entrega",
				`{"codigo":"P1","producto":"Aceite de coco","ciudad":"Bogotá","monto":45000}`, "")
			Expect(status).To(Equal(http.StatusOK))
			Expect(decode[map[string]any](body)).To(HaveKeyWithValue("ok", true))

			status, _ = do(app, http.MethodPost, "/api/actualizar_pago", `{"codigo":"P1","pagado":true}`, "")
			Expect(status).To(Equal(http.StatusOK))
			status, _ = do(app, http.MethodPost, "/api/actualizar_entrega", `{"codigo":"P1","entregado":true}`, "")
			Expect(status).To(Equal(http.StatusOK))

			rows := ledgerRows(path)
			Expect(rows).To(HaveLen(2))
			Expect(rows[0][0]).To(Equal("Fecha"))
			Expect(rows[1][0]).To(Equal("2025-03-14 09:30:00"))
			Expect(rows[1][3]).To(Equal("P1"))
			Expect(rows[1][7]).To(Equal("Pagado"))
			Expect(rows[1][8]).To(Equal("Entregado"))
		})

		It("reports an unknown code as ok:false", func() {
			status, body := do(app, http.MethodPost, "/api/actualizar_pago", `{"codigo":"NADA","pagado":true}`, "")
			Expect(status).To(Equal(http.StatusBadRequest))

			resp := decode[map[string]any](body)
			Expect(resp).To(HaveKeyWithValue("ok", false))
			Expect(resp).To(HaveKeyWithValue("error", ledger.ErrCodeNotFound.Error()))
		})

		DescribeTable("reads the body as JSON whatever the Content-Type",
			func(contentType string) {
				status, body := post(app, "/api/registrar_entrega", `{"codigo":"P1","ciudad":"Bogotá"}`, contentType)
				Expect(status).To(Equal(http.StatusOK))
				Expect(decode[map[string]any](body)).To(HaveKeyWithValue("ok", true))

				rows := ledgerRows(path)
				Expect(rows).To(HaveLen(2))
				Expect(rows[1][1]).To(Equal("Bogotá"))
				Expect(rows[1][3]).To(Equal("P1"))
			},
			Entry("form encoded", "application/x-www-form-urlencoded"),
			Entry("plain text", "text/plain"),
			Entry("no content type", ""),
		)

		It("does not append a row for a form body", func() {
			status, body := post(app, "/api/registrar_entrega", "codigo=P1&ciudad=Bogota", "application/x-www-form-urlencoded")
			Expect(status).To(Equal(http.StatusInternalServerError))
			Expect(decode[map[string]any](body)).To(HaveKeyWithValue("ok", false))
		})

		It("answers 500 for an empty body", func() {
			status, body := post(app, "/api/actualizar_pago", "", "application/json")
			Expect(status).To(Equal(http.StatusInternalServerError))
			Expect(decode[map[string]any](body)).To(HaveKeyWithValue("ok", false))
		})

		It("answers 500 for a malformed body", func() {
			status, body := do(app, http.MethodPost, "/api/actualizar_entrega", `{"codigo":`, "")
			Expect(status).To(Equal(http.StatusInternalServerError))
			Expect(decode[map[string]any](body)).To(HaveKeyWithValue("ok", false))
		})
	})

	Context("with JWT enabled", func() {
		BeforeEach(func() {
			app = newApp(path, testSecret)
		})

		It("requires a token on mutation routes", func() {
			status, body := do(app, http.MethodPost, "/api/registrar_entrega", `{"codigo":"P9"}`, "")
			Expect(status).To(Equal(http.StatusUnauthorized))
			Expect(decode[map[string]string](body)).To(HaveKey("error"))
		})

		It("accepts a bot token", func() {
			token, err := auth.GenerateToken(testSecret, "whatsapp-bot", auth.RoleBot, time.Hour)
			Expect(err).NotTo(HaveOccurred())

			status, _ := do(app, http.MethodPost, "/api/registrar_entrega", `{"codigo":"P9"}`, token)
			Expect(status).To(Equal(http.StatusOK))
		})

		It("keeps catalog queries public", func() {
			status, _ := do(app, http.MethodGet, "/api/consultar_stock/JB-2", "", "")
			Expect(status).To(Equal(http.StatusOK))
		})
	})

	It("does not expose audit logs without a database", func() {
		status, _ := do(app, http.MethodGet, "/api/audit-logs", "", "")
		Expect(status).To(Equal(http.StatusNotFound))
	})
})
