package filestore

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/battlesnakeio/arena/scores"
)

func readLine(r *bufio.Reader, out interface{}) (bool, bool, error) {
	line, err := r.ReadBytes('\n')
	eof := err == io.EOF

	if err != nil && !eof {
		return false, false, err
	}

	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return false, !eof, nil
	}
	if err = json.Unmarshal(line, out); err != nil {
		return false, false, err
	}

	return true, !eof, nil
}

// readResults loads every result in r. Later lines replace earlier ones with
// the same id.
func readResults(r io.Reader) (map[string]scores.Result, error) {
	results := map[string]scores.Result{}
	reader := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		var res scores.Result
		ok, more, err := readLine(reader, &res)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		if ok {
			results[res.ID] = res
		}
		if !more {
			return results, nil
		}
	}
}

// readFile is readResults for a file, a missing file is an empty history.
func readFile(path string) (map[string]scores.Result, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return map[string]scores.Result{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readResults(f)
}
