package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const orderColumns = `id, user_id, total, status, address, city, state, zip_code, created_at`

func (r *postgresRepo) Place(ctx context.Context, in PlaceInput) (*domain.Order, []domain.OrderItem, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	o := in.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, total, status, address, city, state, zip_code, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at
`, o.UserID, o.Total, o.Status, o.Address, o.City, o.State, o.ZipCode, o.CreatedAt).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		cmd, err := tx.Exec(ctx, `
UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1
`, line.Quantity, line.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if cmd.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, line.ProductID).Scan(&exists); err != nil {
				return nil, nil, err
			}
			if !exists {
				return nil, nil, domain.ErrIntegrity
			}
			return nil, nil, domain.Invalid("quantity", "insufficient stock")
		}

		item := domain.OrderItem{OrderID: o.ID, ProductID: line.ProductID, Quantity: line.Quantity, Price: line.UnitPrice}
		err = tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, price)
VALUES ($1, $2, $3, $4)
RETURNING id
`, item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &o, items, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) ListItems(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	const q = `SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.Address, &o.City, &o.State, &o.ZipCode, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
