package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo struct{ DB *pgxpool.Pool }

// PlaceOrder runs the whole placement as one transaction: insert the order,
// insert its items in input order, decrement stock per item. Any failure
// rolls everything back; no partial order is ever observable.
func (r *Repo) PlaceOrder(ctx context.Context, in OrderInput) (*Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := scanOrder(tx.QueryRow(ctx, `
		INSERT INTO orders (customer_name, customer_email, customer_phone, delivery_address, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+orderCols,
		in.CustomerName, in.CustomerEmail, in.CustomerPhone, in.DeliveryAddress, in.TotalAmount.String(), StatusPending))
	if err != nil {
		return nil, err
	}

	for _, it := range in.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)`,
			o.ID, it.ProductID, it.Quantity, it.Price.String()); err != nil {
			return nil, err
		}

		// Conditional decrement: zero rows means the product is missing or
		// the stock would go negative, either way the unit aborts.
		ct, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
			it.Quantity, it.ProductID)
		if err != nil {
			return nil, err
		}
		if ct.RowsAffected() != 1 {
			return nil, fmt.Errorf("product %d: %w", it.ProductID, ErrInsufficientStock)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repo) GetOrder(ctx context.Context, id int64) (*Order, []OrderItemDetail, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price::text, p.name, p.image_url
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var items []OrderItemDetail
	for rows.Next() {
		var d OrderItemDetail
		var price string
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Quantity, &price, &d.ProductName, &d.ImageURL); err != nil {
			return nil, nil, err
		}
		if d.Price, err = decimal.NewFromString(price); err != nil {
			return nil, nil, fmt.Errorf("normalize item price for order %d: %w", id, err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return o, items, nil
}

const orderCols = `id, customer_name, customer_email, customer_phone, delivery_address, total_amount::text, status, created_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var total string
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.DeliveryAddress, &total, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("normalize total for order %d: %w", o.ID, err)
	}
	o.TotalAmount = d
	return &o, nil
}
