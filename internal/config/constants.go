package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "STUDYDESK_"

	defaultPort       = 3333
	defaultEnv        = "development"
	defaultTimezone   = "Local"
	defaultDBDriver   = DriverMySQL
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "studydesk"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultSQLitePath = "data/studydesk.db"
	defaultStorage    = StorageLocal
	defaultStaticDir  = "static"
	defaultS3Region   = "auto"
	defaultLogLevel   = "info"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	StorageS3    = "s3"
	StorageLocal = "local"
)
