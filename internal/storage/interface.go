package storage

// Backend is a key-value store holding serialized records. Get reports
// found=false with a nil error when the key is absent.
type Backend interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	Get(key string) (value []byte, found bool, err error)
	Put(key string, value []byte) error
	Delete(key string) error

	// Utils
	GetConfigPath() string
}
