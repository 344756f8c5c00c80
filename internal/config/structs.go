package config

// Config represents the complete configuration for the atlas application.
// It includes settings for all commands (image, pdf, batch, list, serve) and
// supports loading from configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// OCR collaborator settings
	Engine EngineConfig `mapstructure:"engine" yaml:"engine" json:"engine"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`

	// Record system configuration
	ERP ERPConfig `mapstructure:"erp" yaml:"erp" json:"erp"`
}

// EngineConfig locates the external OCR collaborator.
type EngineConfig struct {
	Interpreter      string `mapstructure:"interpreter" yaml:"interpreter" json:"interpreter"`
	Script           string `mapstructure:"script" yaml:"script" json:"script"`
	DocumentTypeHint string `mapstructure:"document_type_hint" yaml:"document_type_hint" json:"document_type_hint"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Limit int `mapstructure:"limit" yaml:"limit" json:"limit"`
}

// ERPConfig contains record-system connection settings. The API key is
// expected to come from the environment, not a config file.
type ERPConfig struct {
	URL      string `mapstructure:"url" yaml:"url" json:"url"`
	Database string `mapstructure:"database" yaml:"database" json:"database"`
	Username string `mapstructure:"username" yaml:"username" json:"username"`
	APIKey   string `mapstructure:"api_key" yaml:"api_key" json:"-"`
}

// Enabled reports whether enough settings are present to reach the record system.
func (c ERPConfig) Enabled() bool {
	return c.URL != "" && c.Database != "" && c.Username != "" && c.APIKey != ""
}
