package config

// Log level constants
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// Log type constants
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Database type constants
const (
	MysqlDbType    = "mysql"
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)

// Notification policy constants
const (
	NotifyAlways = "always"
	NotifyChange = "change"
	NotifyNever  = "never"
)
