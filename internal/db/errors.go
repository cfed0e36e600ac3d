package db

import "errors"

// Sentinel errors for store operations. Drivers return them unwrapped.
var (
	ErrKeyNotFound   = errors.New("db: key not found")
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
)

// Command names reported in Error.Op.
const (
	OpCreateIndex = "FT.CREATE"
	OpDropIndex   = "FT.DROPINDEX"
	OpIndexInfo   = "FT.INFO"
	OpSearch      = "FT.SEARCH"
	OpDel         = "DEL"
	OpHGetAll     = "HGETALL"
	OpHSet        = "HSET"
	OpExists      = "EXISTS"
)

// Error is a failed store command. Key names the hash key or index the
// command addressed and may be empty.
type Error struct {
	Op  string
	Key string
	Err error
}

// NewError wraps err as a failed op on key.
func NewError(op, key string, err error) *Error {
	return &Error{Op: op, Key: key, Err: err}
}

func (e *Error) Error() string {
	if e.Key == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
