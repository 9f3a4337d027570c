package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const itemColumns = `id, user_id, product_id, quantity, COALESCE(color, ''), COALESCE(size, '')`

func (r *postgresRepo) Create(ctx context.Context, item domain.CartItem) (*domain.CartItem, error) {
	const q = `
INSERT INTO cart_items (user_id, product_id, quantity, color, size)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
RETURNING ` + itemColumns
	created, err := scanItem(r.pool.QueryRow(ctx, q, item.UserID, item.ProductID, item.Quantity, item.Color, item.Size))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int) (*domain.CartItem, error) {
	const q = `SELECT ` + itemColumns + ` FROM cart_items WHERE id = $1`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) GetByUserAndProduct(ctx context.Context, userID, productID int) (*domain.CartItem, error) {
	const q = `SELECT ` + itemColumns + ` FROM cart_items WHERE user_id = $1 AND product_id = $2`
	return r.getOne(ctx, q, userID, productID)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int) ([]domain.CartItem, error) {
	const q = `SELECT ` + itemColumns + ` FROM cart_items WHERE user_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CartItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int, in UpdateInput) (*domain.CartItem, error) {
	const q = `
UPDATE cart_items
SET quantity = COALESCE($2, quantity),
    color    = COALESCE($3, color),
    size     = COALESCE($4, size)
WHERE id = $1
RETURNING ` + itemColumns
	item, err := scanItem(r.pool.QueryRow(ctx, q, id, in.Quantity, in.Color, in.Size))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	return err
}

func (r *postgresRepo) DeleteByUser(ctx context.Context, userID int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

func (r *postgresRepo) getOne(ctx context.Context, q string, args ...interface{}) (*domain.CartItem, error) {
	item, err := scanItem(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func scanItem(row pgx.Row) (*domain.CartItem, error) {
	var item domain.CartItem
	if err := row.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.Color, &item.Size); err != nil {
		return nil, err
	}
	return &item, nil
}
