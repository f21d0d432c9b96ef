// Package sqlstore keeps scores in postgres.
package sqlstore

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // Import pq driver.
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/battlesnakeio/arena/config"
	"github.com/battlesnakeio/arena/scores"
)

const migrations = `
CREATE TABLE IF NOT EXISTS scores (
	id VARCHAR(255) PRIMARY KEY,
	snake_id VARCHAR(255) NOT NULL,
	name VARCHAR(255) NOT NULL,
	score INTEGER NOT NULL,
	length INTEGER NOT NULL,
	is_bot BOOLEAN NOT NULL,
	cause VARCHAR(64) NOT NULL,
	recorded TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS scores_rank ON scores (score DESC, recorded ASC);
`

// NewSQLStore returns a new store using a postgres database.
func NewSQLStore(url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	if err = db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	_, err = db.ExecContext(ctx, migrations)
	if err != nil {
		return nil, errors.Wrap(err, "unable to migrate")
	}
	return &Store{db: db}, nil
}

// Store represents an SQL store.
type Store struct {
	db *sql.DB
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// transact is a transaction wrapper, helps avoid failed to close connections.
func (s *Store) transact(
	ctx context.Context, txFunc func(*sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
			panic(p) // re-throw panic after Rollback
		} else if err != nil {
			// err is non-nil; don't change it
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
		} else {
			err = tx.Commit() // err is nil; if Commit returns error update err
		}
	}()
	err = txFunc(tx)
	return err
}

// Record inserts or replaces a result.
func (s *Store) Record(ctx context.Context, r scores.Result) error {
	if r.ID == "" {
		return scores.ErrInvalidResult
	}
	return s.transact(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO scores (id, snake_id, name, score, length, is_bot, cause, recorded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET snake_id=$2, name=$3, score=$4, length=$5, is_bot=$6, cause=$7, recorded=$8`,
			r.ID, r.SnakeID, r.Name, r.Score, r.Length, r.IsBot, r.Cause, r.Recorded.UTC(),
		)
		return err
	})
}

// Get fetches a result by id.
func (s *Store) Get(ctx context.Context, id string) (scores.Result, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT id, snake_id, name, score, length, is_bot, cause, recorded
	FROM scores WHERE id=$1`, id)
	r, err := scanResult(row)
	if err == sql.ErrNoRows {
		return scores.Result{}, scores.ErrNotFound
	}
	return r, err
}

// Top returns the best limit results. A limit of 0 or less returns all.
func (s *Store) Top(ctx context.Context, limit int) ([]scores.Result, error) {
	q := `
	SELECT id, snake_id, name, score, length, is_bot, cause, recorded
	FROM scores ORDER BY score DESC, recorded ASC, id ASC`
	args := []interface{}{}
	if limit > 0 {
		q += " LIMIT $1"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []scores.Result{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanResult(row scanner) (scores.Result, error) {
	var r scores.Result
	err := row.Scan(&r.ID, &r.SnakeID, &r.Name, &r.Score, &r.Length, &r.IsBot, &r.Cause, &r.Recorded)
	r.Recorded = r.Recorded.UTC()
	return r, err
}
