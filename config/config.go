package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	protocoldomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/domain"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
)

const (
	TransportTCP  = "tcp"
	TransportHTTP = "http"
)

// Defaults applied after loading.
const (
	DefaultScoringEndpoint   = "https://api.tjing.se/graphql"
	DefaultPollInterval      = 5 * time.Second
	DefaultCycleInterval     = 20 * time.Second
	DefaultTimeout           = 10 * time.Second
	DefaultRateLimit         = 4.0
	DefaultQueueSize         = 2048
	DefaultHTTPAddr          = ":8080"
	DefaultAssetsDir         = "assets"
	DefaultProductionTimeout = 5 * time.Second
)

// Config struct to hold the configuration settings
type Config struct {
	Production    ProductionConfig    `yaml:"production"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Broadcast     BroadcastConfig     `yaml:"broadcast"`
	HTTP          HTTPConfig          `yaml:"http"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ProductionConfig holds the connection to the production system.
type ProductionConfig struct {
	Host      string                 `yaml:"host"`
	Transport string                 `yaml:"transport"` // tcp|http
	QueueSize int                    `yaml:"queue_size"`
	Targets   protocoldomain.Targets `yaml:"targets"`
	AssetsDir string                 `yaml:"assets_dir"`
	// Timeout bounds each HTTP transport request.
	Timeout   time.Duration          `yaml:"timeout"`
}

// ScoringConfig holds the remote scoring API settings.
type ScoringConfig struct {
	Endpoint      string        `yaml:"endpoint"`
	EventID       string        `yaml:"event_id"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	CycleInterval time.Duration `yaml:"cycle_interval"`
	Timeout       time.Duration `yaml:"timeout"`
	RateLimit     float64       `yaml:"rate_limit"`
}

// BroadcastConfig selects what goes on air at startup. Round is 1-based.
type BroadcastConfig struct {
	FocusedPlayer   string `yaml:"focused_player"`
	Round           int    `yaml:"round"`
	FeaturedHole    int    `yaml:"featured_hole"`
	LeaderboardMode string `yaml:"leaderboard_mode"` // live|post_event
}

// HTTPConfig holds the control surface listener.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &shared.ConfigurationError{Component: "config", Err: fmt.Errorf("failed to unmarshal config: %w", err)}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.Production.Host == "" {
		return nil, &shared.ConfigurationError{Component: "config", Err: errors.New("BROADCAST_HOST environment variable not set")}
	}
	if cfg.Scoring.EventID == "" {
		return nil, &shared.ConfigurationError{Component: "config", Err: errors.New("EVENT_ID environment variable not set")}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides cfg with any environment variable that is set.
func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s value: %w", key, err)
			}
			*dst = n
		}
		return nil
	}
	dur := func(key string, dst *time.Duration) error {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s value: %w", key, err)
			}
			*dst = d
		}
		return nil
	}

	str("BROADCAST_HOST", &cfg.Production.Host)
	str("BROADCAST_TRANSPORT", &cfg.Production.Transport)
	str("ASSETS_DIR", &cfg.Production.AssetsDir)
	str("SCORING_ENDPOINT", &cfg.Scoring.Endpoint)
	str("EVENT_ID", &cfg.Scoring.EventID)
	str("FOCUSED_PLAYER", &cfg.Broadcast.FocusedPlayer)
	str("LEADERBOARD_MODE", &cfg.Broadcast.LeaderboardMode)
	str("HTTP_ADDR", &cfg.HTTP.Addr)
	str("METRICS_ADDRESS", &cfg.Observability.MetricsAddress)
	str("ENV", &cfg.Observability.Environment)
	str("LOG_LEVEL", &cfg.Observability.LogLevel)

	errs := []error{
		num("QUEUE_SIZE", &cfg.Production.QueueSize),
		num("ROUND", &cfg.Broadcast.Round),
		num("FEATURED_HOLE", &cfg.Broadcast.FeaturedHole),
		dur("POLL_INTERVAL", &cfg.Scoring.PollInterval),
		dur("CYCLE_INTERVAL", &cfg.Scoring.CycleInterval),
		dur("SCORING_TIMEOUT", &cfg.Scoring.Timeout),
	}
	if v := os.Getenv("SCORING_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid SCORING_RATE_LIMIT value: %w", err))
		} else {
			cfg.Scoring.RateLimit = f
		}
	}
	if err := errors.Join(errs...); err != nil {
		return &shared.ConfigurationError{Component: "config", Err: err}
	}
	return nil
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.Production.Transport == "" {
		c.Production.Transport = TransportTCP
	}
	if c.Production.QueueSize <= 0 {
		c.Production.QueueSize = DefaultQueueSize
	}
	if c.Production.AssetsDir == "" {
		c.Production.AssetsDir = DefaultAssetsDir
	}
	if c.Production.Timeout <= 0 {
		c.Production.Timeout = DefaultProductionTimeout
	}
	t := &c.Production.Targets
	d := protocoldomain.DefaultTargets
	setDefault(&t.Player, d.Player)
	setDefault(&t.Leaderboard, d.Leaderboard)
	setDefault(&t.HoleInfo, d.HoleInfo)
	setDefault(&t.MiniCycled, d.MiniCycled)
	setDefault(&t.MiniFeatured, d.MiniFeatured)
	setDefault(&t.Comparison, d.Comparison)

	if c.Scoring.Endpoint == "" {
		c.Scoring.Endpoint = DefaultScoringEndpoint
	}
	if c.Scoring.PollInterval <= 0 {
		c.Scoring.PollInterval = DefaultPollInterval
	}
	if c.Scoring.CycleInterval <= 0 {
		c.Scoring.CycleInterval = DefaultCycleInterval
	}
	if c.Scoring.Timeout <= 0 {
		c.Scoring.Timeout = DefaultTimeout
	}
	if c.Scoring.RateLimit <= 0 {
		c.Scoring.RateLimit = DefaultRateLimit
	}

	if c.Broadcast.Round <= 0 {
		c.Broadcast.Round = 1
	}
	if c.Broadcast.FeaturedHole <= 0 {
		c.Broadcast.FeaturedHole = 1
	}
	if c.Broadcast.LeaderboardMode == "" {
		c.Broadcast.LeaderboardMode = "live"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = DefaultHTTPAddr
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
}

func setDefault(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Production.Host == "" {
		errs = append(errs, errors.New("production.host is required"))
	}
	switch c.Production.Transport {
	case TransportTCP, TransportHTTP:
	default:
		errs = append(errs, fmt.Errorf("production.transport must be %q or %q, got %q", TransportTCP, TransportHTTP, c.Production.Transport))
	}
	if c.Scoring.EventID == "" {
		errs = append(errs, errors.New("scoring.event_id is required"))
	}
	if c.Broadcast.FocusedPlayer == "" {
		errs = append(errs, errors.New("broadcast.focused_player is required"))
	}
	if c.Broadcast.FeaturedHole > 18 {
		errs = append(errs, fmt.Errorf("broadcast.featured_hole must be within 1..18, got %d", c.Broadcast.FeaturedHole))
	}
	switch c.Broadcast.LeaderboardMode {
	case "live", "post_event":
	default:
		errs = append(errs, fmt.Errorf("broadcast.leaderboard_mode must be live or post_event, got %q", c.Broadcast.LeaderboardMode))
	}
	if err := errors.Join(errs...); err != nil {
		return &shared.ConfigurationError{Component: "config", Err: err}
	}
	return nil
}
