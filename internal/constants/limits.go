package constants

const (
	MaxNameLen = 100
	MaxNoteLen = 200
)

const (
	DefaultCurrency = "EUR"
	DefaultBackend  = BackendFile
)

const (
	// Storage backends
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendBolt     = "bolt"
)

var Backends = []string{BackendFile, BackendSQLite, BackendPostgres, BackendBolt}
