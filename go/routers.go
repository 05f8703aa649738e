package retailserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds one method and pattern to its handler chain.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	Middleware  []gin.HandlerFunc
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	AuthAPI    AuthAPI
	AdminAPI   AdminAPI
	CatalogAPI CatalogAPI
	OrdersAPI  OrdersAPI
	// Metrics serves the Prometheus scrape endpoint when set.
	Metrics http.Handler
	// Authenticator guards bearer and role protected routes.
	Authenticator Authenticator
}

// NewRouter returns a gin engine with middleware applied ahead of every route.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine registers the API routes on router.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := append(append([]gin.HandlerFunc{}, route.Middleware...), route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(h ApiHandleFunctions) []Route {
	bearer := []gin.HandlerFunc{RequireAuthentication(h.Authenticator)}
	admin := []gin.HandlerFunc{RequireAuthentication(h.Authenticator), RequireRole(RoleAdmin)}

	routes := []Route{
		{"Login", http.MethodPost, "/auth/login", nil, h.AuthAPI.Login},
		{"Logout", http.MethodPost, "/auth/logout", bearer, h.AuthAPI.Logout},
		{"AdminSecret", http.MethodGet, "/admin/secret", admin, h.AdminAPI.Secret},

		{"ListCustomers", http.MethodGet, "/api/customers", bearer, h.CatalogAPI.ListCustomers},
		{"ImportCustomers", http.MethodPost, "/api/customers/import", bearer, h.CatalogAPI.ImportCustomers},
		{"GetCustomer", http.MethodGet, "/api/customers/:id", bearer, h.CatalogAPI.GetCustomer},
		{"ListProducts", http.MethodGet, "/api/products", bearer, h.CatalogAPI.ListProducts},
		{"ImportProducts", http.MethodPost, "/api/products/import", admin, h.CatalogAPI.ImportProducts},
		{"GetProduct", http.MethodGet, "/api/products/:id", bearer, h.CatalogAPI.GetProduct},

		{"CreateOrder", http.MethodPost, "/api/orders", nil, h.OrdersAPI.CreateOrder},
		{"ListOrders", http.MethodGet, "/api/orders", nil, h.OrdersAPI.ListOrders},
		{"GetOrderSummary", http.MethodGet, "/api/orders/summary", nil, h.OrdersAPI.GetSummary},
		{"GenerateOrders", http.MethodPost, "/api/orders/generate", nil, h.OrdersAPI.GenerateOrders},
		{"GetOrder", http.MethodGet, "/api/orders/:id", nil, h.OrdersAPI.GetOrder},
		{"CompleteOrder", http.MethodPost, "/api/orders/:id/complete", nil, h.OrdersAPI.CompleteOrder},
		{"CancelOrder", http.MethodPost, "/api/orders/:id/cancel", nil, h.OrdersAPI.CancelOrder},
	}
	if h.Metrics != nil {
		routes = append(routes, Route{"Metrics", http.MethodGet, "/metrics", nil, gin.WrapH(h.Metrics)})
	}
	return routes
}
