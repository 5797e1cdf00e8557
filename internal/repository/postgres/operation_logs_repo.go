package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaganm/balance-store/internal/models"
)

type operationLogsRepo struct{ pool *pgxpool.Pool }

func (r *operationLogsRepo) Create(ctx context.Context, l models.OperationLog) error {
	var amount pgtype.Numeric
	if l.Amount != nil {
		amount = numericFromBig(l.Amount)
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO operation_logs(id, instance_id, operation, amount, created_at)
		 VALUES($1, $2, $3, $4, now())`,
		l.ID, l.InstanceID, string(l.Operation), amount,
	)
	return err
}

func (r *operationLogsRepo) ListByInstance(ctx context.Context, instanceID string, limit, offset int) ([]models.OperationLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, instance_id, operation, amount, created_at
		   FROM operation_logs
		  WHERE instance_id=$1
		  ORDER BY created_at
		  LIMIT $2 OFFSET $3`,
		instanceID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.OperationLog
	for rows.Next() {
		var l models.OperationLog
		var op string
		var amount pgtype.Numeric
		if err := rows.Scan(&l.ID, &l.InstanceID, &op, &amount, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Operation = models.OperationType(op)
		if amount.Valid {
			l.Amount = bigFromNumeric(amount)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
