package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminapp "github.com/medistore/storefront/internal/application/admin"
	cartapp "github.com/medistore/storefront/internal/application/cart"
	catalogapp "github.com/medistore/storefront/internal/application/catalog"
	identityapp "github.com/medistore/storefront/internal/application/identity"
	orderapp "github.com/medistore/storefront/internal/application/order"
	sellerapp "github.com/medistore/storefront/internal/application/seller"
	"github.com/medistore/storefront/internal/infrastructure/medistore"
	"github.com/medistore/storefront/internal/interfaces/http/handler"
	"github.com/medistore/storefront/internal/interfaces/http/middleware"
)

const (
	shopperCookie = "better-auth.session_token=shopper"
	sellerCookie  = "better-auth.session_token=seller"
)

// remoteAPI is a minimal stand-in for the MediStore API and its auth service
type remoteAPI struct {
	mu       sync.Mutex
	quantity int
	calls    []string
}

func (a *remoteAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, r.Method+" "+r.URL.Path)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/api/auth/get-session":
		switch r.Header.Get("Cookie") {
		case shopperCookie:
			_, _ = w.Write([]byte(`{"user":{"id":"u1","name":"Rafi","email":"rafi@example.com","role":"customer"}}`))
		case sellerCookie:
			_, _ = w.Write([]byte(`{"user":{"id":"s1","name":"Lazz Pharma","email":"lazz@example.com","role":"SELLER"}}`))
		default:
			_, _ = w.Write([]byte(`null`))
		}
	case r.URL.Path == "/api/medicines":
		_, _ = w.Write([]byte(`{"success":true,"data":{"data":[{"id":"p1","name":"Napa","price":"10.00","stock":5,"isActive":true}],"pagination":{"page":1,"limit":12,"total":1,"totalPages":1}}}`))
	case r.URL.Path == "/api/orders/cart" && r.Method == http.MethodGet:
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"c1","items":[` + a.lineLocked() + `]}}`))
	case r.URL.Path == "/api/orders/cart/items/l1" && r.Method == http.MethodPatch:
		var body struct {
			Action string `json:"action"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch body.Action {
		case "inc":
			if a.quantity >= 3 {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"success":false,"message":"Not enough stock"}`))
				return
			}
			a.quantity++
		case "dec":
			a.quantity--
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid action"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"Cart updated","data":` + a.lineLocked() + `}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Route not found"}`))
	}
}

func (a *remoteAPI) lineLocked() string {
	return `{"id":"l1","quantity":` + strconv.Itoa(a.quantity) +
		`,"isSelected":true,"medicine":{"id":"p1","name":"Napa","price":"10.00","stock":5,"imageUrl":null,"isActive":true}}`
}

func newStorefront(t *testing.T) (*gin.Engine, *remoteAPI) {
	t.Helper()
	api := &remoteAPI{quantity: 2}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := medistore.NewClient(medistore.ClientConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)

	carts := cartapp.NewRegistry(func() *cartapp.ViewModel { return cartapp.NewViewModel(client) }, time.Minute)
	catalogSvc := catalogapp.NewService(client)
	identitySvc := identityapp.NewService(client, nil)
	orderSvc := orderapp.NewService(client, carts, nil)

	h := Handlers{
		Catalog: handler.NewCatalogHandler(catalogSvc),
		Cart:    handler.NewCartHandler(carts, orderSvc),
		Order:   handler.NewOrderHandler(orderSvc),
		Seller:  handler.NewSellerHandler(sellerapp.NewService(client, catalogSvc, nil)),
		Admin:   handler.NewAdminHandler(adminapp.NewService(client, nil)),
		Account: handler.NewAccountHandler(identitySvc),
	}

	engine := gin.New()
	NewRouter(engine, WithMiddleware(middleware.Credential(), middleware.LoadSession(identitySvc))).
		Register(StorefrontGroups(h)...).
		Setup()
	return engine, api
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func call(t *testing.T, engine *gin.Engine, method, path, cookie, body string) (int, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func TestStorefront_Routes(t *testing.T) {
	engine, _ := newStorefront(t)
	r := NewRouter(engine)

	routes := engine.Routes()
	paths := make(map[string]bool, len(routes))
	for _, rt := range routes {
		paths[rt.Method+" "+rt.Path] = true
	}
	for _, want := range []string{
		"GET " + r.BasePath() + "/products",
		"GET " + r.BasePath() + "/cart",
		"POST " + r.BasePath() + "/cart/items/:id/increment",
		"DELETE " + r.BasePath() + "/cart/items/:id",
		"POST " + r.BasePath() + "/checkout",
		"PATCH " + r.BasePath() + "/seller/orders/:id/status",
		"PATCH " + r.BasePath() + "/admin/users/:id/ban",
		"GET " + r.BasePath() + "/guard",
	} {
		assert.True(t, paths[want], "missing route %s", want)
	}
}

func TestStorefront_PublicCatalog(t *testing.T) {
	engine, _ := newStorefront(t)

	status, resp := call(t, engine, http.MethodGet, "/api/v1/products", "", "")

	require.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), `"Napa"`)
}

func TestStorefront_CartRequiresSession(t *testing.T) {
	engine, api := newStorefront(t)

	status, resp := call(t, engine, http.MethodGet, "/api/v1/cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Please login first", resp.Error.Message)

	status, _ = call(t, engine, http.MethodGet, "/api/v1/cart", "better-auth.session_token=expired", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotContains(t, api.calls, "GET /api/orders/cart")
}

func TestStorefront_CartFlow(t *testing.T) {
	engine, api := newStorefront(t)

	status, resp := call(t, engine, http.MethodGet, "/api/v1/cart", shopperCookie, "")
	require.Equal(t, http.StatusOK, status)
	var view struct {
		Items []struct {
			ID       string `json:"id"`
			Quantity int64  `json:"quantity"`
		} `json:"items"`
		Summary struct {
			GrandTotal struct {
				Amount string `json:"amount"`
			} `json:"grandTotal"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, "140.00", view.Summary.GrandTotal.Amount)

	status, resp = call(t, engine, http.MethodPost, "/api/v1/cart/items/l1/increment", shopperCookie, "")
	require.Equal(t, http.StatusOK, status)
	var committed struct {
		Outcome string `json:"outcome"`
		Message string `json:"message"`
		Cart    struct {
			Items []struct {
				Quantity int64 `json:"quantity"`
			} `json:"items"`
		} `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &committed))
	assert.Equal(t, "committed", committed.Outcome)
	assert.Equal(t, "Cart updated", committed.Message)
	assert.Equal(t, int64(3), committed.Cart.Items[0].Quantity)

	status, resp = call(t, engine, http.MethodPost, "/api/v1/cart/intents", shopperCookie, `{"action":"increment","lineId":"l1"}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Not enough stock", resp.Error.Message)
	require.NoError(t, json.Unmarshal(resp.Data, &committed))
	assert.Equal(t, "rolled_back", committed.Outcome)
	assert.Equal(t, int64(3), committed.Cart.Items[0].Quantity)

	status, resp = call(t, engine, http.MethodPost, "/api/v1/cart/items/l1/decrement", shopperCookie, "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &committed))
	assert.Equal(t, "committed", committed.Outcome)
	assert.Equal(t, int64(2), committed.Cart.Items[0].Quantity)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, 2, api.quantity, "remote saw inc, rejected inc, dec")
}

func TestStorefront_RoleAreas(t *testing.T) {
	engine, _ := newStorefront(t)

	status, resp := call(t, engine, http.MethodGet, "/api/v1/seller/medicines", shopperCookie, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "ERR_FORBIDDEN", resp.Error.Code)

	status, _ = call(t, engine, http.MethodGet, "/api/v1/admin/stats", sellerCookie, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, resp = call(t, engine, http.MethodGet, "/api/v1/session", sellerCookie, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), `"role":"SELLER"`)

	status, resp = call(t, engine, http.MethodGet, "/api/v1/guard?path=/seller-dashboard", sellerCookie, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"allow":true}`, string(resp.Data))

	status, resp = call(t, engine, http.MethodGet, "/api/v1/guard?path=/profile", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"allow":false,"redirectTo":"/login"}`, string(resp.Data))
}
