package order

import "github.com/shopspring/decimal"

// CreateOrderRequest payload of creation.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	OrderNo     string           `json:"order_no"     binding:"required" example:"ORD1"`
	UserName    string           `json:"user_name"    binding:"required" example:"Alice"`
	ProductName string           `json:"product_name" binding:"required" example:"Widget"`
	Quantity    *int             `json:"quantity"     binding:"required" example:"2"`
	TotalPrice  *decimal.Decimal `json:"total_price"  binding:"required" swaggertype:"number" example:"19.98"`
}

// Order builds the row to insert. Status and creation time are not taken
// from the caller.
func (r CreateOrderRequest) Order() *Order {
	return &Order{
		OrderNo:     r.OrderNo,
		UserName:    r.UserName,
		ProductName: r.ProductName,
		Quantity:    *r.Quantity,
		TotalPrice:  *r.TotalPrice,
	}
}

// UpdateStatusRequest payload of status change.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"已付款"`
}

// MessageResponse is the body of every acknowledgement and error.
// swagger:model
type MessageResponse struct {
	// example: 订单创建成功
	Message string `json:"message"`
	// only set on create
	OrderID int64 `json:"order_id,omitempty"`
}
