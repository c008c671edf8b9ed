package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/query-server/config"
	ConfigFileName    = "query-server.yml"
)

// Sources an attribute value may come from.
const (
	SourceDefault     = "default"
	SourceFile        = "file"
	SourceEnvironment = "environment"
)

// Settings holds all query server configuration
type Settings struct {
	// Database connection strings, one per schema
	ServiceDBURI  string `yaml:"servicedb_uri" json:"servicedb_uri" env:"SERVICEDB_URI" validate:"required"`
	FeatureDBURI  string `yaml:"featuredb_uri" json:"featuredb_uri" env:"FEATUREDB_URI" validate:"required"`
	MetadataDBURI string `yaml:"metadatadb_uri" json:"metadatadb_uri" env:"METADATADB_URI" validate:"required"`
	PLCDBURI      string `yaml:"plcdb_uri" json:"plcdb_uri" env:"PLCDB_URI" validate:"required"`
	FDCDBURI      string `yaml:"fdcdb_uri" json:"fdcdb_uri" env:"FDCDB_URI" validate:"required"`

	// Object storage
	EndpointURL        string `yaml:"endpoint_url" json:"endpoint_url" env:"ENDPOINT_URL" validate:"required"`
	AWSAccessKeyID     string `yaml:"aws_access_key_id" json:"aws_access_key_id" env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `yaml:"aws_secret_access_key" json:"aws_secret_access_key" env:"AWS_SECRET_ACCESS_KEY"`
	Verify             bool   `yaml:"verify" json:"verify" env:"VERIFY"`
	BucketName         string `yaml:"bucket_name" json:"bucket_name" env:"BUCKET_NAME" validate:"required"`

	// Site
	Timezone string `yaml:"timezone" json:"timezone" env:"TIMEZONE" validate:"required,timezone"`
	LineNum  string `yaml:"line_num" json:"line_num" env:"LINE_NUM" validate:"required,numeric"`

	// Logging
	LogLevel string `yaml:"log_level" json:"log_level" env:"LOG_LEVEL" validate:"required,oneof=trace debug info warn warning error"`
	LogDir   string `yaml:"log_dir" json:"log_dir" env:"LOG_DIR"`

	sources        map[string]string
	configFilePath string
	zone           *zone
}

// zone is the time zone resolved when the settings were loaded.
type zone struct {
	name string
	loc  *time.Location
}

func loadZone(name string) *zone {
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}
	return &zone{name: name, loc: loc}
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Settings
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Settings {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = New()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment. Settings
// that fail validation are rejected and the current ones stay in place.
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// Set replaces the global configuration
func Set(cfg *Settings) {
	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
}

// New returns settings holding only the defaults
func New() *Settings {
	cfg := &Settings{
		BucketName: "lami",
		Timezone:   "Asia/Seoul",
		LineNum:    "1",
		LogLevel:   "info",
		LogDir:     "./log",
		sources:    make(map[string]string),
	}
	for _, name := range attributeNames() {
		cfg.sources[name] = SourceDefault
	}
	cfg.zone = loadZone(cfg.Timezone)
	return cfg
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Settings, error) {
	config := New()

	configPath := os.Getenv("QUERY_SERVER_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Settings
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	if err := config.applyEnvConfig(); err != nil {
		return nil, err
	}
	config.zone = loadZone(config.Timezone)

	return config, nil
}

func attributeNames() []string {
	return []string{
		"servicedb_uri", "featuredb_uri", "metadatadb_uri", "plcdb_uri", "fdcdb_uri",
		"endpoint_url", "aws_access_key_id", "aws_secret_access_key", "verify",
		"bucket_name", "timezone", "line_num", "log_level", "log_dir",
	}
}

// stringFields maps attribute names to the string fields they populate.
func (c *Settings) stringFields() map[string]*string {
	return map[string]*string{
		"servicedb_uri":         &c.ServiceDBURI,
		"featuredb_uri":         &c.FeatureDBURI,
		"metadatadb_uri":        &c.MetadataDBURI,
		"plcdb_uri":             &c.PLCDBURI,
		"fdcdb_uri":             &c.FDCDBURI,
		"endpoint_url":          &c.EndpointURL,
		"aws_access_key_id":     &c.AWSAccessKeyID,
		"aws_secret_access_key": &c.AWSSecretAccessKey,
		"bucket_name":           &c.BucketName,
		"timezone":              &c.Timezone,
		"line_num":              &c.LineNum,
		"log_level":             &c.LogLevel,
		"log_dir":               &c.LogDir,
	}
}

func (c *Settings) applyFileConfig(file *Settings) {
	from := file.stringFields()
	for name, dst := range c.stringFields() {
		if v := *from[name]; v != "" {
			*dst = v
			c.sources[name] = SourceFile
		}
	}
	if file.Verify {
		c.Verify = true
		c.sources["verify"] = SourceFile
	}
}

func (c *Settings) applyEnvConfig() error {
	opts := env.Options{
		// value is the raw variable, "" when it is unset.
		OnSet: func(tag string, value interface{}, isDefault bool) {
			if s, ok := value.(string); ok && s != "" {
				c.sources[strings.ToLower(tag)] = SourceEnvironment
			}
		},
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *Settings) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Settings) Source(name string) string {
	if c.sources == nil {
		return SourceDefault
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return SourceDefault
}

// Location returns the configured time zone, UTC when it cannot be loaded.
// The zone is resolved once on load; a Timezone changed afterwards is
// looked up on every call.
func (c *Settings) Location() *time.Location {
	if c.zone != nil && c.zone.name == c.Timezone {
		return c.zone.loc
	}
	return loadZone(c.Timezone).loc
}

// Now returns the current time in the configured time zone
func (c *Settings) Now() time.Time {
	return time.Now().In(c.Location())
}

// IsLami reports whether this deployment serves the lamination bucket,
// which carries the full service schema.
func (c *Settings) IsLami() bool {
	return c.BucketName == "lami"
}

// DatabaseURLs returns the connection string of every database keyed by name
func (c *Settings) DatabaseURLs() map[string]string {
	return map[string]string{
		"service":  c.ServiceDBURI,
		"feature":  c.FeatureDBURI,
		"metadata": c.MetadataDBURI,
		"plc":      c.PLCDBURI,
		"fdc":      c.FDCDBURI,
	}
}

// Validate validates the configuration
func (c *Settings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for Settings: %w", err)
	}

	for name, dsn := range c.DatabaseURLs() {
		if !IsPostgresURL(dsn) {
			return fmt.Errorf("invalid %sdb_uri: not a postgres connection string", name)
		}
	}
	return nil
}

// IsPostgresURL reports whether dsn is a postgres URL naming a host and a database
func IsPostgresURL(dsn string) bool {
	u, err := url.Parse(dsn)
	if err != nil {
		return false
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return false
	}
	return u.Host != "" && strings.Trim(u.Path, "/") != ""
}

// Attributes returns all configuration attributes with their values and sources.
// Credentials are masked.
func (c *Settings) Attributes() []Attribute {
	attrs := make([]Attribute, 0, len(attributeNames()))
	fields := c.stringFields()
	for _, name := range attributeNames() {
		var value string
		switch {
		case name == "verify":
			value = strconv.FormatBool(c.Verify)
		case name == "aws_secret_access_key":
			value = mask(*fields[name])
		case strings.HasSuffix(name, "db_uri"):
			value = redactURL(*fields[name])
		default:
			value = *fields[name]
		}
		attrs = append(attrs, Attribute{Name: name, Value: value, Source: c.Source(name)})
	}
	return attrs
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

func redactURL(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.User == nil {
		return s
	}
	return u.Redacted()
}

// FormatText returns a text representation of the configuration
func (c *Settings) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-25s %-55s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-25s %-55s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-25s %-55s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Settings) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
