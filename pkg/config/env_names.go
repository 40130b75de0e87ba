package config

// EnvPrefix is passed to envconfig; individual fields carry fully qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "KITBOX_APP_ENV"
	EnvPort     = "KITBOX_APP_PORT"
	EnvDBDSN    = "KITBOX_DB_DSN"
	EnvDBHost   = "KITBOX_DB_HOST"
	EnvDBUser   = "KITBOX_DB_USER"
	EnvDBName   = "KITBOX_DB_NAME"
	EnvRedisURL = "KITBOX_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
