package postgres

import (
	"context"
	"errors"
	"math/big"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaganm/balance-store/internal/models"
	repo "github.com/mkaganm/balance-store/internal/repository"
)

type balancesRepo struct{ pool *pgxpool.Pool }

func (r *balancesRepo) Create(ctx context.Context, instanceID string) (models.Balance, error) {
	return r.scanRow(r.pool.QueryRow(ctx,
		`INSERT INTO balances(instance_id, value, created_at, last_updated_at)
		 VALUES($1, 0, now(), now())
		 RETURNING instance_id, value, created_at, last_updated_at`,
		instanceID,
	))
}

func (r *balancesRepo) Increase(ctx context.Context, instanceID string, amount *big.Int) (models.Balance, error) {
	return r.scanRow(r.pool.QueryRow(ctx,
		`UPDATE balances
		    SET value = value + $2,
		        last_updated_at = now()
		  WHERE instance_id = $1
		  RETURNING instance_id, value, created_at, last_updated_at`,
		instanceID, numericFromBig(amount),
	))
}

func (r *balancesRepo) Get(ctx context.Context, instanceID string) (models.Balance, error) {
	return r.scanRow(r.pool.QueryRow(ctx,
		`SELECT instance_id, value, created_at, last_updated_at
		   FROM balances
		  WHERE instance_id=$1`,
		instanceID,
	))
}

func (r *balancesRepo) scanRow(row pgx.Row) (models.Balance, error) {
	var b models.Balance
	var value pgtype.Numeric
	err := row.Scan(&b.InstanceID, &value, &b.CreatedAt, &b.LastUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Balance{}, repo.ErrNotFound
	}
	if err != nil {
		return models.Balance{}, err
	}
	b.Value = bigFromNumeric(value)
	return b, nil
}

func numericFromBig(v *big.Int) pgtype.Numeric {
	return pgtype.Numeric{Int: new(big.Int).Set(v), Valid: true}
}

// bigFromNumeric rebuilds an integer from pgx's coefficient/exponent
// form. Balance values are whole numbers, so a negative exponent never
// occurs for rows this repo wrote.
func bigFromNumeric(n pgtype.Numeric) *big.Int {
	if !n.Valid || n.Int == nil {
		return new(big.Int)
	}
	v := new(big.Int).Set(n.Int)
	if n.Exp > 0 {
		v.Mul(v, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil))
	}
	return v
}
