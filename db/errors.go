package db

import (
	"strings"

	"github.com/teranos/resgen/errors"
)

// ErrDatabaseClosed is returned when the cache is used after Close
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed reports whether err comes from a closed connection,
// either wrapped by resgen or raw from the sql driver
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
