package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// openFileWriter is swapped out in tests.
var openFileWriter = openAppendLog

type writer interface {
	WriteString(s string) (int, error)
	Close() error
}

// writeLine appends data as a single JSON line.
func writeLine(w writer, data interface{}) error {
	j, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "marshal result")
	}
	if _, err := w.WriteString(string(j) + "\n"); err != nil {
		return errors.Wrap(err, "append result")
	}
	return nil
}

func openAppendLog(path string) (writer, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0775); err != nil {
		return nil, errors.Wrapf(err, "create %s", dir)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return f, nil
}
