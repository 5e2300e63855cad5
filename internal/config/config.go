package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Images   ImagesConfig   `mapstructure:"images"   validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains connection and pool settings. MaxOpenConns bounds
// the pool; acquisition blocks once the bound is reached.
type DatabaseConfig struct {
	URL             string `mapstructure:"url"                validate:"required"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"     validate:"required,gt=0"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"     validate:"gte=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"  validate:"gt=0"` // seconds
}

// ImagesConfig contains ad image storage settings.
type ImagesConfig struct {
	Dir           string `mapstructure:"dir"             validate:"required"`
	PublicPrefix  string `mapstructure:"public_prefix"   validate:"required"`
	MaxUploadSize int64  `mapstructure:"max_upload_size" validate:"gt=0"` // bytes
}
