package storage

import (
	"fmt"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/storage/diskv"
	"github.com/julianstephens/weekendly/internal/storage/memory"
	"github.com/julianstephens/weekendly/internal/storage/postgres"
	"github.com/julianstephens/weekendly/internal/storage/sqlite"
)

// NewBackend builds the named backend. For postgres, location is the
// connection string and must already be validated; for the file backends it
// is a path.
func NewBackend(kind, location string) (Backend, error) {
	switch kind {
	case constants.BackendDiskv, "":
		return diskv.NewStore(location), nil
	case constants.BackendSQLite:
		return sqlite.NewStore(location), nil
	case constants.BackendPostgres:
		if location == "" {
			return nil, fmt.Errorf("postgres backend needs a connection string (set %s or run 'weekendly keyring set')", constants.EnvDBConnection)
		}
		return postgres.New(location), nil
	case constants.BackendMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q (expected diskv, sqlite, postgres or memory)", kind)
	}
}
