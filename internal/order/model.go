package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusPendingPayment is the status every new order starts in. Later
// statuses are free-form; update-status accepts any non-empty string.
const StatusPendingPayment = "待付款"

type Order struct {
	ID          int64           `json:"order_id"`
	OrderNo     string          `json:"order_no"`
	UserName    string          `json:"user_name"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"` // DECIMAL, kept exact
	Status      string          `json:"order_status"`
	CreateTime  time.Time       `json:"create_time"`
}
