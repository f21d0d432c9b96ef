// Package filestore keeps scores as JSON lines in a single append only file.
package filestore

import (
	"context"
	"os/user"
	"path"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/battlesnakeio/arena/scores"
)

// DefaultPath is where results go when no path is given.
func DefaultPath() string {
	return path.Join(homeDir(), ".arena", "scores.jsonl")
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// NewFileStore loads the history in file and appends new results to it.
func NewFileStore(file string) (*Store, error) {
	if file == "" {
		file = DefaultPath()
	}
	results, err := readFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", file)
	}
	w, err := openFileWriter(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", file)
	}
	log.WithField("file", file).WithField("results", len(results)).Info("loaded scores")
	return &Store{results: results, w: w, path: file}, nil
}

// Store is a scores.Store that writes through to a file.
type Store struct {
	results map[string]scores.Result
	w       writer
	path    string
	lock    sync.Mutex
}

// Close closes the file handle.
func (fs *Store) Close() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return fs.w.Close()
}

// Record appends r to the file.
func (fs *Store) Record(ctx context.Context, r scores.Result) error {
	if r.ID == "" {
		return scores.ErrInvalidResult
	}
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := writeLine(fs.w, r); err != nil {
		return errors.Wrap(err, "unable to write result")
	}
	fs.results[r.ID] = r
	return nil
}

// Get fetches a result by id.
func (fs *Store) Get(ctx context.Context, id string) (scores.Result, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	r, ok := fs.results[id]
	if !ok {
		return scores.Result{}, scores.ErrNotFound
	}
	return r, nil
}

// Top returns the best limit results.
func (fs *Store) Top(ctx context.Context, limit int) ([]scores.Result, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	out := make([]scores.Result, 0, len(fs.results))
	for _, r := range fs.results {
		out = append(out, r)
	}
	scores.Sort(out)
	return scores.Limit(out, limit), nil
}
