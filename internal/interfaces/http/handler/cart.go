package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/medistore/storefront/internal/application/cart"
	"github.com/medistore/storefront/internal/domain/identity"
	"github.com/medistore/storefront/internal/interfaces/http/dto"
	"github.com/medistore/storefront/internal/interfaces/http/middleware"
)

// CartAdder places a medicine into the caller's cart
type CartAdder interface {
	AddToCart(ctx context.Context, session *identity.Session, productID string, quantity int64) error
}

// CartHandler serves the shopper's cart. Mutations go through the caller's
// view-model so the response always carries the visible cart.
type CartHandler struct {
	BaseHandler
	carts *cartapp.Registry
	adder CartAdder
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cartapp.Registry, adder CartAdder) *CartHandler {
	return &CartHandler{carts: carts, adder: adder}
}

// Get returns the visible cart. A new or refreshed view-model is mounted
// from the remote API first.
// GET /cart?refresh=true
func (h *CartHandler) Get(c *gin.Context) {
	cred := middleware.GetCredential(c)
	if cred.Empty() {
		h.Unauthorized(c, "Please login first")
		return
	}
	ctx := c.Request.Context()
	vm, mounted, err := h.carts.Acquire(ctx, cred)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !mounted && c.Query("refresh") == "true" {
		view, err := vm.Mount(ctx)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, view)
		return
	}
	h.Success(c, vm.View())
}

// AddItem adds a medicine to the cart. The cached view-model is dropped so
// the next read sees the remote cart.
// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddToCartRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.adder.AddToCart(c.Request.Context(), middleware.GetSession(c), req.ProductID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"message": "Added to cart"})
}

// Increment adds one unit to a line
// POST /cart/items/:id/increment
func (h *CartHandler) Increment(c *gin.Context) {
	h.dispatch(c, cartapp.Intent{Kind: cartapp.IntentIncrement, LineID: c.Param("id")})
}

// Decrement removes one unit from a line
// POST /cart/items/:id/decrement
func (h *CartHandler) Decrement(c *gin.Context) {
	h.dispatch(c, cartapp.Intent{Kind: cartapp.IntentDecrement, LineID: c.Param("id")})
}

// Remove deletes a line
// DELETE /cart/items/:id
func (h *CartHandler) Remove(c *gin.Context) {
	h.dispatch(c, cartapp.Intent{Kind: cartapp.IntentRemove, LineID: c.Param("id")})
}

// Intent applies a named action to a line
// POST /cart/intents
func (h *CartHandler) Intent(c *gin.Context) {
	var req dto.CartIntentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	kind, err := cartapp.ParseIntentKind(req.Action)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.dispatch(c, cartapp.Intent{Kind: kind, LineID: req.LineID})
}

func (h *CartHandler) dispatch(c *gin.Context, in cartapp.Intent) {
	cred := middleware.GetCredential(c)
	if cred.Empty() {
		h.Unauthorized(c, "Please login first")
		return
	}
	vm, _, err := h.carts.Acquire(c.Request.Context(), cred)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	res := vm.Dispatch(c.Request.Context(), in)
	if res.Outcome == cartapp.OutcomeCommitted {
		h.Success(c, res)
		return
	}
	h.writeRefusal(c, res)
}

// writeRefusal answers a mutation that did not commit. The body still
// carries the restored cart so the page can re-render it.
func (h *CartHandler) writeRefusal(c *gin.Context, res cartapp.Result) {
	status, code, message := http.StatusInternalServerError, dto.ErrCodeInternal, res.Message
	if res.Err != nil {
		var derived string
		status, code, derived = classifyError(res.Err)
		if message == "" {
			message = derived
		}
		_ = c.Error(res.Err)
	}
	c.JSON(status, dto.Response{
		Success: false,
		Data:    res,
		Error: &dto.ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: getRequestID(c),
		},
	})
}
