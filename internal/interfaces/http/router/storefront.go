package router

import (
	"github.com/medistore/storefront/internal/domain/identity"
	"github.com/medistore/storefront/internal/interfaces/http/handler"
	"github.com/medistore/storefront/internal/interfaces/http/middleware"
)

// Handlers are the storefront's HTTP handlers
type Handlers struct {
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Seller  *handler.SellerHandler
	Admin   *handler.AdminHandler
	Account *handler.AccountHandler
}

// StorefrontGroups builds the route groups of the storefront API. Shop and
// account reads are public; cart and orders need a session; the dashboards
// need their role.
func StorefrontGroups(h Handlers) []RouteRegistrar {
	shop := NewDomainGroup("shop", "")
	shop.GET("/products", h.Catalog.ListProducts)
	shop.GET("/products/:id", h.Catalog.GetProduct)
	shop.GET("/categories", h.Catalog.ListCategories)

	account := NewDomainGroup("account", "")
	account.GET("/session", h.Account.Session)
	account.GET("/guard", h.Account.Guard)

	profile := NewDomainGroup("profile", "/profile").Use(middleware.RequireSession())
	profile.GET("", h.Account.GetProfile)
	profile.PATCH("", h.Account.UpdateProfile)

	cart := NewDomainGroup("cart", "/cart").Use(middleware.RequireSession())
	cart.GET("", h.Cart.Get)
	cart.POST("/items", h.Cart.AddItem)
	cart.POST("/items/:id/increment", h.Cart.Increment)
	cart.POST("/items/:id/decrement", h.Cart.Decrement)
	cart.DELETE("/items/:id", h.Cart.Remove)
	cart.POST("/intents", h.Cart.Intent)

	checkout := NewDomainGroup("checkout", "/checkout").Use(middleware.RequireSession())
	checkout.POST("", h.Order.Checkout)

	orders := NewDomainGroup("orders", "/orders").Use(middleware.RequireSession())
	orders.GET("", h.Order.List)
	orders.GET("/:id", h.Order.Get)

	seller := NewDomainGroup("seller", "/seller").Use(middleware.RequireRole(identity.RoleSeller))
	seller.GET("/medicines", h.Seller.ListMedicines)
	seller.POST("/medicines", h.Seller.CreateMedicine)
	seller.PATCH("/medicines/:id", h.Seller.UpdateMedicine)
	seller.DELETE("/medicines/:id", h.Seller.DeleteMedicine)
	seller.POST("/categories", h.Seller.CreateCategory)
	sellerOrders := seller.Group("seller-orders", "/orders")
	sellerOrders.GET("", h.Seller.ListOrders)
	sellerOrders.PATCH("/:id/status", h.Seller.UpdateOrderStatus)

	admin := NewDomainGroup("admin", "/admin").Use(middleware.RequireRole(identity.RoleAdmin))
	admin.GET("/users", h.Admin.ListUsers)
	admin.GET("/stats", h.Admin.Stats)
	admin.GET("/orders", h.Admin.ListOrders)
	admin.PATCH("/users/:id/ban", h.Admin.SetBanned)
	admin.PATCH("/sellers/:id/approve", h.Admin.ApproveSeller)

	return []RouteRegistrar{shop, account, profile, cart, checkout, orders, seller, admin}
}
