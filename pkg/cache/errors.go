package cache

import (
	"errors"
	"fmt"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// OpError is a failed Redis round trip or an entry that would not (de)serialize.
type OpError struct {
	Op  string
	Key string
	Err error
}

func opError(op, key string, err error) *OpError {
	return &OpError{Op: op, Key: key, Err: err}
}

func (e *OpError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("cache %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
