package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides (GOITA_MAX_ONES_PER_SEAT, ...).
// Nakama runtime env keys use the lower-case form (goita_max_ones_per_seat).
const EnvPrefix = "goita"

type GameConfig struct {
	// Deals giving a seat more pawns than this are redealt. 0 disables.
	MaxOnesPerSeat int `mapstructure:"max_ones_per_seat"`
	DealRetryLimit int `mapstructure:"deal_retry_limit"`
	DealerSeat     int `mapstructure:"dealer_seat"`

	BotsEnabled    bool   `mapstructure:"bots_enabled"`
	BotLevel       string `mapstructure:"bot_level"`
	BotMinDelaySec int    `mapstructure:"bot_min_delay_sec"`
	BotMaxDelaySec int    `mapstructure:"bot_max_delay_sec"`
	// BotAutoFillDelaySeconds is how long a lone human waits before bots take the empty seats.
	BotAutoFillDelaySeconds int `mapstructure:"bot_auto_fill_delay_sec"`

	PointsCurrency string `mapstructure:"points_currency"`

	NatsURL           string `mapstructure:"nats_url"`
	NatsSubjectPrefix string `mapstructure:"nats_subject_prefix"`

	MongoURL        string `mapstructure:"mongo_url"`
	MongoDB         string `mapstructure:"mongo_db"`
	MongoCollection string `mapstructure:"mongo_collection"`

	LogLevel string `mapstructure:"log_level"`
}

var defaults = map[string]any{
	"max_ones_per_seat":       4,
	"deal_retry_limit":        5000,
	"dealer_seat":             0,
	"bots_enabled":            true,
	"bot_level":               "rule",
	"bot_min_delay_sec":       1,
	"bot_max_delay_sec":       3,
	"bot_auto_fill_delay_sec": 5,
	"points_currency":         "points",
	"nats_url":                "",
	"nats_subject_prefix":     "goita.round",
	"mongo_url":               "",
	"mongo_db":                "goita",
	"mongo_collection":        "rounds",
	"log_level":               "info",
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
	mu       sync.RWMutex
)

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Defaults returns the built-in configuration.
func Defaults() GameConfig {
	c, _ := decode(newViper())
	return *c
}

// Load reads a config file (any format viper understands) layered over the
// defaults, with GOITA_* environment variables taking precedence. An empty
// path uses defaults and environment only.
func Load(path string) (*GameConfig, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read game config: %w", err)
		}
	}
	return decode(v)
}

// FromRuntimeEnv builds a config from a Nakama runtime env map. Only
// goita_* keys are considered.
func FromRuntimeEnv(env map[string]string) (*GameConfig, error) {
	v := newViper()
	overrides := make(map[string]any)
	for k, val := range env {
		if key, ok := strings.CutPrefix(strings.ToLower(k), EnvPrefix+"_"); ok {
			overrides[key] = val
		}
	}
	if err := v.MergeConfigMap(overrides); err != nil {
		return nil, fmt.Errorf("failed to merge runtime env: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*GameConfig, error) {
	var c GameConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings the game cannot run with.
func (c *GameConfig) Validate() error {
	var errs []error
	if c.MaxOnesPerSeat < 0 {
		errs = append(errs, fmt.Errorf("max_ones_per_seat must be >= 0, got %d", c.MaxOnesPerSeat))
	}
	if c.MaxOnesPerSeat > 0 && c.MaxOnesPerSeat < 3 {
		// Ten pawns over four seats always leaves one seat with three.
		errs = append(errs, fmt.Errorf("max_ones_per_seat %d can never be dealt", c.MaxOnesPerSeat))
	}
	if c.DealRetryLimit <= 0 {
		errs = append(errs, fmt.Errorf("deal_retry_limit must be positive, got %d", c.DealRetryLimit))
	}
	if c.DealerSeat < 0 || c.DealerSeat > 3 {
		errs = append(errs, fmt.Errorf("dealer_seat must be 0..3, got %d", c.DealerSeat))
	}
	if c.BotMinDelaySec < 0 || c.BotMaxDelaySec < c.BotMinDelaySec {
		errs = append(errs, fmt.Errorf("bot delay range [%d,%d] is invalid", c.BotMinDelaySec, c.BotMaxDelaySec))
	}
	if c.PointsCurrency == "" {
		errs = append(errs, errors.New("points_currency must be set"))
	}
	return errors.Join(errs...)
}

// LoadGameConfig loads the process-wide configuration once.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		c, err := Load(path)
		if err != nil {
			loadErr = err
			return
		}
		SetGameConfig(c)
	})
	return loadErr
}

// SetGameConfig replaces the process-wide configuration.
func SetGameConfig(c *GameConfig) {
	mu.Lock()
	defer mu.Unlock()
	cfg = c
}

// GetGameConfig returns the process-wide configuration, or the defaults when
// none was loaded.
func GetGameConfig() *GameConfig {
	mu.RLock()
	defer mu.RUnlock()
	if cfg == nil {
		d := Defaults()
		return &d
	}
	return cfg
}
