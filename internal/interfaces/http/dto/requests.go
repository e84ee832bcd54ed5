package dto

// AddToCartRequest adds a medicine to the caller's cart
type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"omitempty,min=1"`
}

// CartIntentRequest is a shopper action on one cart line
type CartIntentRequest struct {
	Action string `json:"action" binding:"required,oneof=increment decrement remove"`
	LineID string `json:"lineId" binding:"required"`
}

// BanRequest bans or unbans a user
type BanRequest struct {
	IsBanned *bool `json:"isBanned" binding:"required"`
}

// OrderStatusRequest moves an order to a new status
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
