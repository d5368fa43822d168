package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxSerializationRetries bounds how often a serializable unit of work is
// re-run after a commit-time conflict abort before the error surfaces to the
// caller.
const maxSerializationRetries = 3

func runInTx(ctx context.Context, db *pgxpool.Pool, txOptions pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

// runSerializable executes fn inside a serializable transaction. Overlap
// detection is a range predicate, so the snapshot must be protected against
// phantom inserts; Postgres signals a lost race at commit time with SQLSTATE
// 40001 (or 40P01 under lock contention), in which case the whole unit of
// work is retried. fn must therefore be safe to re-run from scratch.
func runSerializable(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	txOptions := pgx.TxOptions{IsoLevel: pgx.Serializable}

	var err error
	for attempt := 0; attempt < maxSerializationRetries; attempt++ {
		err = runInTx(ctx, db, txOptions, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}

	return err
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}
