package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"

	"github.com/imamik/slsfw/internal/util/naming"
)

// EnvPrefix prefixes every environment variable read into Settings.
const EnvPrefix = "SLSFW_"

// State backends.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Settings control how the CLI runs. They are separate from the deployment
// inputs and come from flags, SLSFW_* environment variables and defaults, in
// that order of precedence.
type Settings struct {
	Framework   string `env:"FRAMEWORK"`
	Stage       string `env:"STAGE"`
	WorkDir     string `env:"WORK_DIR"`
	InputFile   string `env:"INPUT_FILE"`
	MetricsFile string `env:"METRICS_FILE"`

	State     StateSettings     `envPrefix:"STATE_"`
	Component ComponentSettings `envPrefix:"COMPONENT_"`
	Log       LogSettings       `envPrefix:"LOG_"`
}

// StateSettings select where deployment state is kept.
type StateSettings struct {
	Backend string     `env:"BACKEND"`
	Dir     string     `env:"DIR"`
	S3      S3Settings `envPrefix:"S3_"`
}

// S3Settings configure the S3 state backend.
type S3Settings struct {
	Endpoint  string `env:"ENDPOINT"`
	Region    string `env:"REGION"`
	Bucket    string `env:"BUCKET"`
	Prefix    string `env:"PREFIX"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
}

// ComponentSettings configure the component runtime client. Retries is a
// pointer so an explicit 0 survives the merge with the defaults.
type ComponentSettings struct {
	Endpoint string        `env:"ENDPOINT"`
	Token    string        `env:"TOKEN"`
	Timeout  time.Duration `env:"TIMEOUT"`
	Retries  *int          `env:"RETRIES"`
}

// RetryCount returns the configured retries, or DefaultRetries when unset.
func (c ComponentSettings) RetryCount() int {
	if c.Retries == nil {
		return DefaultRetries
	}
	return *c.Retries
}

// LogSettings configure the logger.
type LogSettings struct {
	Level  string `env:"LEVEL"`
	Format string `env:"FORMAT"`
}

// DefaultRetries is the number of retries of a failed component request.
const DefaultRetries = 3

// DefaultSettings returns the settings used when neither flags nor the
// environment set a value.
func DefaultSettings() Settings {
	return Settings{
		Framework: DefaultFramework,
		Stage:     "dev",
		WorkDir:   ".",
		State: StateSettings{
			Backend: BackendLocal,
			Dir:     ".serverless",
			S3:      S3Settings{Region: "us-east-1", Prefix: "slsfw"},
		},
		Component: ComponentSettings{
			Timeout: 30 * time.Second,
			Retries: intPtr(DefaultRetries),
		},
		Log: LogSettings{Level: "info", Format: "auto"},
	}
}

// LoadSettings layers flags over the environment over DefaultSettings.
// environ replaces the process environment when non-nil.
func LoadSettings(flags Settings, environ map[string]string) (*Settings, error) {
	var fromEnv Settings
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&fromEnv, opts); err != nil {
		return nil, fmt.Errorf("error getting env settings: %w", err)
	}

	s := flags
	for _, layer := range []Settings{fromEnv, DefaultSettings()} {
		if err := mergo.Merge(&s, layer, mergo.WithoutDereference); err != nil {
			return nil, fmt.Errorf("error merging settings: %w", err)
		}
	}

	return &s, s.Validate()
}

// Settings validation errors.
var (
	ErrUnknownBackend   = errors.New("unknown state backend")
	ErrIncompleteS3     = errors.New("s3 state backend requires a bucket")
	ErrInvalidLogFormat = errors.New("log format must be one of auto, console, json")
)

// Validate checks the merged settings.
func (s *Settings) Validate() error {
	var errs []error

	switch s.State.Backend {
	case BackendLocal:
	case BackendS3:
		if s.State.S3.Bucket == "" {
			errs = append(errs, ErrIncompleteS3)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBackend, s.State.Backend))
	}

	switch s.Log.Format {
	case "auto", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w, got %q", ErrInvalidLogFormat, s.Log.Format))
	}

	if s.Component.Timeout < 0 {
		errs = append(errs, errors.New("component timeout must not be negative"))
	}
	if s.Component.RetryCount() < 0 {
		errs = append(errs, errors.New("component retries must not be negative"))
	}

	return errors.Join(errs...)
}

// StateName is the name the deployment state is stored under.
func (s *Settings) StateName() string {
	return naming.StateName(s.Framework, s.Stage)
}

func intPtr(i int) *int { return &i }
