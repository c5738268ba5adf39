package config

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Port           int            `yaml:"port"            env:"PORT"`
	Env            string         `yaml:"env"             env:"ENV"` // "development" | "production"
	Timezone       string         `yaml:"timezone"        env:"TIMEZONE"`
	JWTSecret      string         `yaml:"jwt_secret"      env:"JWT_SECRET"`
	AllowedOrigins []string       `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	Database       DatabaseConfig `yaml:"database"        envPrefix:"DATABASE_"`
	Redis          RedisConfig    `yaml:"redis"           envPrefix:"REDIS_"`
	Storage        StorageConfig  `yaml:"storage"         envPrefix:"STORAGE_"`
	Log            LogConfig      `yaml:"log"             envPrefix:"LOG_"`
}

// DatabaseConfig selects the gorm dialector and its connection settings.
type DatabaseConfig struct {
	Driver    string            `yaml:"driver"     env:"DRIVER"` // "mysql" | "sqlite"
	DSN       string            `yaml:"dsn"        env:"DSN"`
	Host      string            `yaml:"host"       env:"HOST"`
	Port      int               `yaml:"port"       env:"PORT"`
	User      string            `yaml:"user"       env:"USER"`
	Password  string            `yaml:"password"   env:"PASSWORD"`
	Name      string            `yaml:"name"       env:"NAME"`
	Charset   string            `yaml:"charset"    env:"CHARSET"`
	Loc       string            `yaml:"loc"        env:"LOC"`
	Path      string            `yaml:"path"       env:"PATH"` // sqlite file
	Params    map[string]string `yaml:"params"`
	ParseTime bool              `yaml:"-"`
}

// RedisConfig is optional; an empty URL disables redis-backed middleware.
type RedisConfig struct {
	URL string `yaml:"url" env:"URL"`
}

// StorageConfig configures where uploaded images and avatars are written.
type StorageConfig struct {
	Driver    string `yaml:"driver"     env:"DRIVER"` // "s3" | "local"
	Endpoint  string `yaml:"endpoint"   env:"ENDPOINT"`
	Region    string `yaml:"region"     env:"REGION"`
	Bucket    string `yaml:"bucket"     env:"BUCKET"`
	AccessKey string `yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY"`
	PublicURL string `yaml:"public_url" env:"PUBLIC_URL"`
	PathStyle bool   `yaml:"path_style" env:"PATH_STYLE"`
	StaticDir string `yaml:"static_dir" env:"STATIC_DIR"`
}

// LogConfig controls the zap logger built at startup.
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	Dir   string `yaml:"dir"   env:"DIR"`
}
