package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mama-doner/models"
	"mama-doner/services"
)

type fakeMenu struct {
	items []models.MenuItem
	cats  []string
	err   error
}

func (f fakeMenu) ListActive(context.Context) ([]models.MenuItem, error) {
	return f.items, f.err
}

func (f fakeMenu) ListCategories(context.Context) ([]string, error) {
	return f.cats, f.err
}

type fakePending struct {
	nextID int64
	carts  map[int64][]models.CartItem
}

func (f *fakePending) Create(_ context.Context, items []models.CartItem) (int64, error) {
	f.nextID++
	f.carts[f.nextID] = items
	return f.nextID, nil
}

func (f *fakePending) Fetch(_ context.Context, id int64) ([]models.CartItem, bool, error) {
	items, ok := f.carts[id]
	return items, ok, nil
}

func (f *fakePending) Delete(_ context.Context, id int64) error {
	delete(f.carts, id)
	return nil
}

type fakeOrders struct{}

func (fakeOrders) Finalize(context.Context, int64, int64, []models.CartItem, float64) error {
	return nil
}

type fakeIssuer struct {
	link string
	err  error
}

func (f fakeIssuer) CreateInvoiceLink(context.Context, models.Invoice) (string, error) {
	return f.link, f.err
}

func newTestServer(menu services.MenuStore, issuer services.InvoiceIssuer) *echo.Echo {
	lc := &services.Lifecycle{
		Menu:     menu,
		Pending:  &fakePending{carts: map[int64][]models.CartItem{}},
		Orders:   fakeOrders{},
		Issuer:   issuer,
		Currency: "BYN",
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	e := echo.New()
	h := &Handler{Lifecycle: lc, Log: lc.Log}
	h.RegisterRoutes(e)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

var testMenu = []models.MenuItem{
	{ID: 1, Name: "Classic Kebab", Price: 120.0, Category: "Classic", Emoji: "🌯", IsActive: true},
}

func TestCreateInvoice_Success(t *testing.T) {
	e := newTestServer(fakeMenu{items: testMenu}, fakeIssuer{link: "https://t.me/invoice/abc"})

	rec := postJSON(e, "/api/create-invoice", `{"cart":[{"id":1,"count":2,"price":120.0,"name":"Classic Kebab"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CreateInvoiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://t.me/invoice/abc", resp.InvoiceLink)
}

func TestCreateInvoice_EmptyCart(t *testing.T) {
	e := newTestServer(fakeMenu{items: testMenu}, fakeIssuer{link: "x"})

	rec := postJSON(e, "/api/create-invoice", `{"cart":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestCreateInvoice_UnresolvableCart(t *testing.T) {
	e := newTestServer(fakeMenu{items: testMenu}, fakeIssuer{link: "x"})

	rec := postJSON(e, "/api/create-invoice", `{"cart":[{"id":999,"count":1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateInvoice_IssuerFailure(t *testing.T) {
	e := newTestServer(fakeMenu{items: testMenu}, fakeIssuer{err: errors.New("provider rejected")})

	rec := postJSON(e, "/api/create-invoice", `{"cart":[{"id":1,"count":1}]}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "provider rejected")
}

func TestCreateInvoice_BadBody(t *testing.T) {
	e := newTestServer(fakeMenu{items: testMenu}, fakeIssuer{link: "x"})

	rec := postJSON(e, "/api/create-invoice", `{"cart":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMenu(t *testing.T) {
	e := newTestServer(fakeMenu{items: testMenu}, nil)

	rec := get(e, "/api/menu")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Classic Kebab", items[0].Name)
	assert.True(t, items[0].IsActive)
}

func TestGetMenu_Error(t *testing.T) {
	e := newTestServer(fakeMenu{err: errors.New("db down")}, nil)

	rec := get(e, "/api/menu")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestGetCategories(t *testing.T) {
	e := newTestServer(fakeMenu{cats: []string{"Classic", "Drinks"}}, nil)

	rec := get(e, "/api/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	var cats []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	assert.Equal(t, []string{"Classic", "Drinks"}, cats)
}

func TestIndex_Missing(t *testing.T) {
	e := echo.New()
	h := &Handler{
		Lifecycle: &services.Lifecycle{Menu: fakeMenu{}},
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		IndexPath: filepath.Join(t.TempDir(), "nope.html"),
	}
	h.RegisterRoutes(e)

	rec := get(e, "/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "index.html not found", rec.Body.String())
}

func TestIndex_Served(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<html>menu</html>"), 0o644))

	e := echo.New()
	h := &Handler{
		Lifecycle: &services.Lifecycle{Menu: fakeMenu{}},
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		IndexPath: path,
	}
	h.RegisterRoutes(e)

	rec := get(e, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Equal(t, "<html>menu</html>", rec.Body.String())
}
