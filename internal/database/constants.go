package database

// Error messages for pool setup and migrations
const (
	ErrMsgBadConnString    = "bad connection string"
	ErrMsgPoolOpenFailed   = "could not open connection pool"
	ErrMsgPingFailed       = "database unreachable"
	ErrMsgMigrationsFailed = "could not apply migrations"
)

// Log messages
const (
	LogMsgDatabaseConnected = "Database connected"
	LogMsgMigrationsApplied = "Database migrations applied"
)
