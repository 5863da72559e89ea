package order

import (
	"context"
	"errors"
	"time"

	"github.com/MikeMC777/shop-orders/internal/store"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	List(ctx context.Context, q Query) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, o *Order) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// SQLRepo maps orders onto the orders table of any supported store.
type SQLRepo struct{ db store.DB }

func NewSQLRepo(db store.DB) *SQLRepo { return &SQLRepo{db: db} }

func (r *SQLRepo) List(ctx context.Context, q Query) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query, args := listStatement(r.db.Dialect(), q)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := scan(rows, &o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *SQLRepo) GetByID(ctx context.Context, id int64) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query, args := selectOrders().Where("order_id = ?", id).Build(r.db.Dialect())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	var o Order
	if err := scan(rows, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts o as a new pending-payment order stamped with the store's
// clock and sets o.ID to the generated id.
func (r *SQLRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	d := r.db.Dialect()
	id, err := r.db.Insert(ctx, d.Rebind(`
		INSERT INTO orders
		(order_no, user_name, product_name, quantity, total_price, order_status, create_time)
		VALUES (?, ?, ?, ?, ?, ?, `+d.Now+`)`),
		"order_id",
		o.OrderNo, o.UserName, o.ProductName, o.Quantity, o.TotalPrice, StatusPendingPayment,
	)
	if err != nil {
		return err
	}
	o.ID = id
	o.Status = StatusPendingPayment
	return nil
}

func (r *SQLRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.db.Exec(ctx, r.db.Dialect().Rebind(`
		UPDATE orders SET order_status = ? WHERE order_id = ?`), status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.db.Exec(ctx, r.db.Dialect().Rebind(`DELETE FROM orders WHERE order_id = ?`), id)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func scan(rows store.Rows, o *Order) error {
	return rows.Scan(&o.ID, &o.OrderNo, &o.UserName, &o.ProductName, &o.Quantity,
		&o.TotalPrice, &o.Status, &o.CreateTime)
}
