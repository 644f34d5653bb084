package executor

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

var (
	// ErrNilDB is returned when the provided database handle is nil.
	ErrNilDB = errors.New("db is nil")
	// ErrMissingParam is returned when a placeholder has no value.
	ErrMissingParam = errors.New("missing parameter")
)

// caller is the source location of the code calling the executor.
type caller struct {
	file string
	line int
}

func callerAt(skip int) caller {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return caller{}
	}
	return caller{file: file, line: line}
}

func (c caller) String() string {
	if c.file == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(c.file), c.line)
}

func wrapErr(funcName string, c caller, err error) error {
	if err == nil {
		return err
	}
	// not wrapping well known errors for easier checking
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return fmt.Errorf("%s (called at %s): %w", funcName, c, err)
}
