// Package export writes registry contents as comma-separated
// key,count records.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/adwski/freqtable/internal/logger"
	"github.com/adwski/freqtable/internal/registry"
)

const filePerm = 0o644

var (
	ErrSnapshot = errors.New("snapshot error")
	ErrEncode   = errors.New("csv error")
	ErrEncoding = errors.New("utf-8 conversion error")
	ErrIO       = errors.New("io error")

	errInvalidUTF8 = errors.New("encoded table is not valid utf-8")
)

type (
	Snapshotter interface {
		TrySnapshot() (registry.Counts, error)
	}

	// Error is export failure of particular Kind.
	// Kind is one of ErrSnapshot, ErrEncode, ErrEncoding, ErrIO.
	Error struct {
		Kind error
		Err  error
	}

	Exporter struct {
		src    Snapshotter
		logger logger.Logger
	}

	Config struct {
		Source Snapshotter
		Logger logger.Logger
	}
)

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func New(cfg Config) *Exporter {
	return &Exporter{
		src:    cfg.Source,
		logger: cfg.Logger,
	}
}

// Export writes snapshot of source to path overwriting existing file.
// On success, it returns confirmation message naming the path.
func (e *Exporter) Export(path string) (string, error) {
	data, err := e.encodeSnapshot()
	if err == nil {
		if err = os.WriteFile(path, data, filePerm); err != nil {
			err = &Error{Kind: ErrIO, Err: err}
		}
	}
	if err != nil {
		e.logger.Error("table export failed", "path", path, "error", err)
		return "", err
	}

	e.logger.Info("table exported", "path", path, "bytes", len(data))

	return "Data saved to " + path, nil
}

func (e *Exporter) encodeSnapshot() ([]byte, error) {
	counts, err := e.src.TrySnapshot()
	if err != nil {
		return nil, &Error{Kind: ErrSnapshot, Err: err}
	}

	buf := &bytes.Buffer{}
	if err = encode(buf, counts); err != nil {
		return nil, &Error{Kind: ErrEncode, Err: err}
	}

	data := buf.Bytes()
	if !utf8.Valid(data) {
		return nil, &Error{Kind: ErrEncoding, Err: errInvalidUTF8}
	}

	return data, nil
}

// encode writes one key,count record per key in map iteration order.
func encode(w io.Writer, counts registry.Counts) error {
	cw := csv.NewWriter(w)
	for key, count := range counts {
		if err := cw.Write([]string{key, strconv.FormatUint(count, 10)}); err != nil {
			return err //nolint:wrapcheck // classified by caller
		}
	}
	cw.Flush()

	return cw.Error() //nolint:wrapcheck // classified by caller
}
