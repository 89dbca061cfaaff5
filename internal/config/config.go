// Package config loads the service configuration from an optional YAML file
// and CANTINE_* environment variables, environment taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/cantine/catalogue"
	"github.com/tsawler/cantine/layout"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CANTINE"

// Config represents the complete service configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Store     StoreConfig     `yaml:"store" envconfig:"STORE"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	Schedule  ScheduleConfig  `yaml:"schedule" envconfig:"SCHEDULE"`
	Layout    LayoutConfig    `yaml:"layout" envconfig:"LAYOUT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr" envconfig:"ADDR" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
}

// StoreConfig locates the sqlite database. An empty path keeps the catalogue
// in memory only.
type StoreConfig struct {
	Path string `yaml:"path" envconfig:"PATH"`
}

// RateLimitConfig limits menu uploads.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"gte=1"`
}

// ScheduleConfig holds the canteen's time zone and lunch hours.
type ScheduleConfig struct {
	Timezone     string `yaml:"timezone" envconfig:"TIMEZONE" validate:"required"`
	LunchCutoff  int    `yaml:"lunch_cutoff" envconfig:"LUNCH_CUTOFF" validate:"gte=0,lte=23"`
	LunchStart   int    `yaml:"lunch_start" envconfig:"LUNCH_START" validate:"gte=0,lte=23"`
	LunchEnd     int    `yaml:"lunch_end" envconfig:"LUNCH_END" validate:"gte=0,lte=24,gtfield=LunchStart"`
	EventSummary string `yaml:"event_summary" envconfig:"EVENT_SUMMARY"`
}

// LayoutConfig mirrors layout.Config. Page profiles can only be set from
// the file.
type LayoutConfig struct {
	ContentBand     layout.Band          `yaml:"content_band" envconfig:"CONTENT_BAND"`
	Profiles        []layout.PageProfile `yaml:"profiles" ignored:"true"`
	MergeDrift      int                  `yaml:"merge_drift" envconfig:"MERGE_DRIFT" validate:"gte=0"`
	CharWidth       int                  `yaml:"char_width" envconfig:"CHAR_WIDTH" validate:"gt=0"`
	ColumnTolerance int                  `yaml:"column_tolerance" envconfig:"COLUMN_TOLERANCE" validate:"gte=0"`
	LineTolerance   int                  `yaml:"line_tolerance" envconfig:"LINE_TOLERANCE" validate:"gte=0"`
	RowRepeatMargin int                  `yaml:"row_repeat_margin" envconfig:"ROW_REPEAT_MARGIN" validate:"gte=0"`
	RowRepeatMin    int                  `yaml:"row_repeat_min" envconfig:"ROW_REPEAT_MIN" validate:"gte=1"`
	MinColumnRuns   int                  `yaml:"min_column_runs" envconfig:"MIN_COLUMN_RUNS" validate:"gte=1"`

	// FrequentItemColumns is 0 to keep items repeated across columns.
	FrequentItemColumns int `yaml:"frequent_item_columns" envconfig:"FREQUENT_ITEM_COLUMNS" validate:"eq=0|gte=3"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	l := layout.DefaultConfig()
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxUploadBytes:  10 << 20,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     1,
			Burst:   5,
		},
		Schedule: ScheduleConfig{
			Timezone:     "Europe/Paris",
			LunchCutoff:  catalogue.DefaultLunchCutoff,
			LunchStart:   12,
			LunchEnd:     13,
			EventSummary: "Pause déjeuner",
		},
		Layout: LayoutConfig{
			ContentBand:     l.ContentBand,
			Profiles:        l.Profiles,
			MergeDrift:      l.MergeDrift,
			CharWidth:       l.CharWidth,
			ColumnTolerance: l.ColumnTolerance,
			LineTolerance:   l.LineTolerance,
			RowRepeatMargin: l.RowRepeatMargin,
			RowRepeatMin:    l.RowRepeatMin,
			MinColumnRuns:   l.MinColumnRuns,

			FrequentItemColumns: l.FrequentItemColumns,
		},
	}
}

// Load builds the configuration from the defaults, the YAML file at path
// (skipped when path is empty) and the environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints, the time zone and the layout settings.
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	if err := c.ToLayoutConfig().Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

// Location loads the schedule time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Schedule.Timezone, err)
	}
	return loc, nil
}

// ToLayoutConfig converts the layout section.
func (c *Config) ToLayoutConfig() layout.Config {
	l := c.Layout
	return layout.Config{
		ContentBand:     l.ContentBand,
		Profiles:        l.Profiles,
		MergeDrift:      l.MergeDrift,
		CharWidth:       l.CharWidth,
		ColumnTolerance: l.ColumnTolerance,
		LineTolerance:   l.LineTolerance,
		RowRepeatMargin: l.RowRepeatMargin,
		RowRepeatMin:    l.RowRepeatMin,
		MinColumnRuns:   l.MinColumnRuns,

		FrequentItemColumns: l.FrequentItemColumns,
	}
}
