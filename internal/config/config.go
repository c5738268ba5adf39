package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at configPath, applies STUDYDESK_* environment
// overrides and validates the result. A missing file is not an error when
// configPath is the default path; the defaults plus the environment are used.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeYAML(content, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultConfigPath:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	normalize(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

func decodeYAML(content []byte, cfg *AppConfig) error {
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:     defaultPort,
		Env:      defaultEnv,
		Timezone: defaultTimezone,
		Database: DatabaseConfig{
			Driver:    defaultDBDriver,
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			Loc:       defaultDBLoc,
			ParseTime: true,
		},
		Storage: StorageConfig{
			Driver:    defaultStorage,
			Region:    defaultS3Region,
			StaticDir: defaultStaticDir,
		},
		Log: LogConfig{
			Level: defaultLogLevel,
		},
	}
}

func validate(cfg *AppConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", cfg.Port)
	}
	switch cfg.Database.Driver {
	case DriverMySQL:
		if cfg.Database.DSN == "" && (cfg.Database.Port < 1 || cfg.Database.Port > 65535) {
			return fmt.Errorf("database.port %d out of range 1-65535", cfg.Database.Port)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("database.driver %q, expected mysql or sqlite", cfg.Database.Driver)
	}
	switch cfg.Storage.Driver {
	case StorageS3:
		var missing []string
		if cfg.Storage.Bucket == "" {
			missing = append(missing, "bucket")
		}
		if cfg.Storage.AccessKey == "" {
			missing = append(missing, "access_key")
		}
		if cfg.Storage.SecretKey == "" {
			missing = append(missing, "secret_key")
		}
		if len(missing) > 0 {
			return fmt.Errorf("storage.driver s3 requires %s", strings.Join(missing, ", "))
		}
	case StorageLocal:
	default:
		return fmt.Errorf("storage.driver %q, expected s3 or local", cfg.Storage.Driver)
	}
	return nil
}

// IsDev reports whether the server runs in development mode.
func (c *AppConfig) IsDev() bool {
	return c.Env == "development"
}

// StaticDir returns the absolute directory served at /static.
func (c *AppConfig) StaticDir() string {
	return ResolveRuntimePath(c.Storage.StaticDir, defaultStaticDir)
}

// LogDir returns the directory for daily log files, or "" when file logging is off.
func (c *AppConfig) LogDir() string {
	if c.Log.Dir == "" {
		return ""
	}
	return ResolveRuntimePath(c.Log.Dir, "")
}
