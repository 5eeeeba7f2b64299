package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/reports"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/infrastructure/memory"
	"github.com/jhoicas/ventas-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/ventas-api/internal/interfaces/http"
)

// newAPI arma la API completa sobre el almacenamiento en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)
	log := zerolog.Nop()

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log, true)})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}, auth.Policy{}, log),
		UserUC:     usecase.NewUserUseCase(store.Users()),
		ProductUC:  usecase.NewProductUseCase(store.Products(), txRunner, usecase.ProductPolicy{}),
		RecordSale: sales.NewRecordSaleUseCase(txRunner, log),
		SalesQuery: sales.NewQueryUseCase(store.Sales()),
		ReportUC:   reports.NewReportUseCase(store.Reports(), store.StockHistory(), pdf.NewMarotoReportGenerator("ventas-api")),
		JWTSecret:  testJWTSecret,
	})
	return app
}

type apiResponse struct {
	status int
	header http.Header
	body   []byte
}

func (r apiResponse) object(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(r.body, &out), string(r.body))
	return out
}

func (r apiResponse) list(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(r.body, &out), string(r.body))
	return out
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) apiResponse {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return apiResponse{status: resp.StatusCode, header: resp.Header, body: raw}
}

func registerAndLogin(t *testing.T, app *fiber.App, username, role string) string {
	t.Helper()
	in := map[string]string{"username": username, "password": "secreto123"}
	if role != "" {
		in["role"] = role
	}
	resp := call(t, app, http.MethodPost, "/api/auth/register", "", in)
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": "secreto123"})
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	token, _ := resp.object(t)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAuth_RegistroYLogin(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "ana", "password": "secreto123"})
	require.Equal(t, http.StatusCreated, resp.status)
	body := resp.object(t)
	assert.Equal(t, "Usuario registrado correctamente", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "Staff", user["role"], "sin rol explícito se registra como Staff")
	assert.NotContains(t, string(resp.body), "password")

	resp = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "ana", "password": "otro1234"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "DUPLICATE_USER", resp.object(t)["code"])

	resp = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "jo", "password": "secreto123"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "VALIDATION", resp.object(t)["code"])

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "ana", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.object(t)["code"])

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "nadie", "password": "secreto123"})
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, "USER_NOT_FOUND", resp.object(t)["code"])

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", "{no-json")
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "INVALID_BODY", resp.object(t)["code"])
}

func TestAuth_ListarUsuariosRequiereToken(t *testing.T) {
	app := newAPI(t)
	token := registerAndLogin(t, app, "ana", "Staff")

	resp := call(t, app, http.MethodGet, "/api/auth/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.status)

	resp = call(t, app, http.MethodGet, "/api/auth/users", token, nil)
	require.Equal(t, http.StatusOK, resp.status)
	users := resp.list(t)
	require.Len(t, users, 1)
	assert.Equal(t, "ana", users[0]["username"])
}

func TestFlujoCompleto_ProductoVentaReportes(t *testing.T) {
	app := newAPI(t)
	admin := registerAndLogin(t, app, "admin", "Admin")
	staff := registerAndLogin(t, app, "caja", "")

	// Staff no puede crear productos
	newProduct := map[string]any{"name": "Teclado", "quantity": 8, "price": "2.50", "category": "perifericos"}
	resp := call(t, app, http.MethodPost, "/api/products", staff, newProduct)
	assert.Equal(t, http.StatusForbidden, resp.status)

	resp = call(t, app, http.MethodPost, "/api/products", admin, newProduct)
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))
	productID := resp.object(t)["id"].(string)

	// Lectura para cualquier rol
	resp = call(t, app, http.MethodGet, "/api/products/"+productID, staff, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "Teclado", resp.object(t)["name"])

	resp = call(t, app, http.MethodGet, "/api/products/no-existe", staff, nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", resp.object(t)["code"])

	// Venta de 4 unidades: quedan 4, por debajo del nivel de reorden
	resp = call(t, app, http.MethodPost, "/api/sales", staff, map[string]any{"productId": productID, "quantity": 4})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))
	total, err := decimal.NewFromString(resp.object(t)["totalPrice"].(string))
	require.NoError(t, err)
	assert.Equal(t, "10.00", total.StringFixed(2))

	resp = call(t, app, http.MethodPost, "/api/sales", staff, map[string]any{"productId": productID, "quantity": 5})
	assert.Equal(t, http.StatusConflict, resp.status)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.object(t)["code"])

	resp = call(t, app, http.MethodPost, "/api/sales", staff, map[string]any{"productId": productID, "quantity": 1, "totalPrice": "99"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "PRICE_MISMATCH", resp.object(t)["code"])

	resp = call(t, app, http.MethodGet, "/api/products/low-stock", staff, nil)
	require.Equal(t, http.StatusOK, resp.status)
	low := resp.list(t)
	require.Len(t, low, 1)
	assert.Equal(t, float64(4), low[0]["quantity"])

	resp = call(t, app, http.MethodGet, "/api/sales/product/"+productID, staff, nil)
	require.Equal(t, http.StatusOK, resp.status)
	require.Len(t, resp.list(t), 1)

	resp = call(t, app, http.MethodGet, "/api/reports/stock-history", staff, nil)
	require.Equal(t, http.StatusOK, resp.status)
	hist := resp.list(t)
	require.Len(t, hist, 1)
	assert.Equal(t, "ORDER", hist[0]["transactionType"])

	resp = call(t, app, http.MethodGet, "/api/reports/top-selling-products", staff, nil)
	require.Equal(t, http.StatusOK, resp.status)
	top := resp.list(t)
	require.Len(t, top, 1)
	assert.Equal(t, float64(4), top[0]["totalQuantitySold"])

	resp = call(t, app, http.MethodGet, "/api/reports/top-selling-products?limit=51", staff, nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)

	// Admin ve todas las ventas; otro Staff sin ventas no ve ninguna
	resp = call(t, app, http.MethodGet, "/api/reports/sales-summary", admin, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Len(t, resp.list(t), 1)

	other := registerAndLogin(t, app, "caja2", "Staff")
	resp = call(t, app, http.MethodGet, "/api/reports/sales-summary", other, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Empty(t, resp.list(t))

	resp = call(t, app, http.MethodGet, "/api/reports/sales-summary/pdf", staff, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "application/pdf", resp.header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(resp.body, []byte("%PDF")))

	// Eliminar el producto no borra sus ventas
	resp = call(t, app, http.MethodDelete, "/api/products/"+productID, admin, nil)
	require.Equal(t, http.StatusOK, resp.status)

	resp = call(t, app, http.MethodGet, "/api/sales", staff, nil)
	require.Equal(t, http.StatusOK, resp.status)
	require.Len(t, resp.list(t), 1)
}

func TestProductos_ValidacionYActualizacion(t *testing.T) {
	app := newAPI(t)
	admin := registerAndLogin(t, app, "admin", "Admin")

	resp := call(t, app, http.MethodPost, "/api/products", admin, map[string]any{"name": "Mouse", "quantity": -1, "price": 3, "category": "perifericos"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "VALIDATION", resp.object(t)["code"])

	resp = call(t, app, http.MethodPost, "/api/products", admin, map[string]any{"name": "Mouse", "price": 3, "category": "perifericos"})
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = call(t, app, http.MethodPost, "/api/products", admin, map[string]any{"name": "Mouse", "quantity": "12", "price": 3, "category": "perifericos"})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))
	id := resp.object(t)["id"].(string)

	resp = call(t, app, http.MethodPut, "/api/products/"+id, admin, map[string]any{"quantity": 20})
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, float64(20), resp.object(t)["quantity"])

	resp = call(t, app, http.MethodGet, "/api/products?limit=1", admin, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Len(t, resp.list(t), 1, "la lista es un arreglo JSON sin envoltorio")

	resp = call(t, app, http.MethodGet, "/api/products?limit=500", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)
}

func TestEntradasFueraDeRango_Responden400(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "larga", "password": strings.Repeat("a", 80)})
	assert.Equal(t, http.StatusBadRequest, resp.status, string(resp.body))
	assert.Equal(t, "VALIDATION", resp.object(t)["code"])

	admin := registerAndLogin(t, app, "admin", "Admin")
	resp = call(t, app, http.MethodPost, "/api/products", admin, map[string]any{"name": "Caro", "quantity": 1, "price": "100000000000", "category": "c"})
	assert.Equal(t, http.StatusBadRequest, resp.status, string(resp.body))
	assert.Equal(t, "VALIDATION", resp.object(t)["code"])

	resp = call(t, app, http.MethodPost, "/api/products", admin, map[string]any{"name": "Tope", "quantity": 5, "price": "9999999999.99", "category": "c"})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))
	id := resp.object(t)["id"].(string)

	resp = call(t, app, http.MethodPost, "/api/sales", admin, map[string]any{"productId": id, "quantity": 2})
	assert.Equal(t, http.StatusBadRequest, resp.status, string(resp.body))
	assert.Equal(t, "VALIDATION", resp.object(t)["code"])
}

// Con la política por defecto el registro anónimo acepta role=Admin.
func TestRegistroAdminAbiertoPorDefecto(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "jefe", "password": "secreto123", "role": "Admin"})
	require.Equal(t, http.StatusCreated, resp.status)
	assert.Equal(t, "Admin", resp.object(t)["user"].(map[string]any)["role"])
}
