package nlsql

import "errors"

// ErrDatabaseRequired is returned when a service is constructed without a
// database handle.
var ErrDatabaseRequired = errors.New("nlsql: database handle is required")
