// Package redisstore keeps scores in redis: a sorted set ranks result ids by
// score and a hash holds the encoded results.
package redisstore

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"

	"github.com/battlesnakeio/arena/scores"
)

const (
	rankKey    = "arena:scores:rank"
	resultsKey = "arena:scores:results"
)

// Store is a scores.Store backed by redis.
type Store struct {
	client *redis.Client
}

// NewStore will create a new instance of an underlying redis client, so it should not be re-created across "threads"
// - connectURL see: github.com/go-redis/redis/options.go for URL specifics
// The underlying redis client will be immediately tested for connectivity.
func NewStore(connectURL string) (*Store, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)

	// Validate it's connected
	err = client.Ping().Err()
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	return &Store{client: client}, nil
}

// Close closes the underlying client.
func (rs *Store) Close() error {
	return rs.client.Close()
}

// Record saves the result and ranks it.
func (rs *Store) Record(ctx context.Context, r scores.Result) error {
	if r.ID == "" {
		return scores.ErrInvalidResult
	}
	data, err := json.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "unable to marshal result")
	}
	_, err = rs.client.TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.HSet(resultsKey, r.ID, data)
		pipe.ZAdd(rankKey, redis.Z{Score: float64(r.Score), Member: r.ID})
		return nil
	})
	return errors.Wrap(err, "unable to record result")
}

// Get fetches a result by id.
func (rs *Store) Get(ctx context.Context, id string) (scores.Result, error) {
	data, err := rs.client.HGet(resultsKey, id).Bytes()
	if err == redis.Nil {
		return scores.Result{}, scores.ErrNotFound
	}
	if err != nil {
		return scores.Result{}, errors.Wrap(err, "unable to fetch result")
	}
	var r scores.Result
	if err := json.Unmarshal(data, &r); err != nil {
		return scores.Result{}, errors.Wrap(err, "unable to unmarshal result")
	}
	return r, nil
}

// Top returns the best limit results.
func (rs *Store) Top(ctx context.Context, limit int) ([]scores.Result, error) {
	stop := int64(limit) - 1
	if limit <= 0 {
		stop = -1
	}
	ids, err := rs.client.ZRevRange(rankKey, 0, stop).Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read ranking")
	}
	if len(ids) == 0 {
		return []scores.Result{}, nil
	}
	values, err := rs.client.HMGet(resultsKey, ids...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read results")
	}

	out := make([]scores.Result, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// ranked but the payload is gone, skip it
			continue
		}
		var r scores.Result
		if err := json.Unmarshal([]byte(s), &r); err != nil {
			return nil, errors.Wrapf(err, "unable to unmarshal result %s", ids[i])
		}
		out = append(out, r)
	}
	scores.Sort(out)
	return out, nil
}
