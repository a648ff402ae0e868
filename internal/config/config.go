package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/openf1-tools/f1arc/internal/domain"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".f1arc"
	envPrefix  = "F1ARC"
)

// Config is the immutable run configuration, resolved once at startup from
// defaults, then ~/.f1arc/config.toml, then F1ARC_* environment variables.
type Config struct {
	BaseURL           string
	Scope             domain.Scope
	IncludeMeetings   bool
	DownloadLaps      bool
	Timeout           time.Duration
	Retries           int
	Backoff           float64
	RequestsPerSecond float64
	OutDir            string
	Overwrite         bool
	StartYear         int
	EndYear           int // zero = current year at run time
}

func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, errors.Wrap(err, "resolve home directory")
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Join(homeDir, configDir))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", "https://api.openf1.org/v1")
	v.SetDefault("session_scope", string(domain.ScopeRaceSprint))
	v.SetDefault("include_meetings", true)
	v.SetDefault("download_laps", false)
	v.SetDefault("timeout", "60s")
	v.SetDefault("retries", 4)
	v.SetDefault("backoff", 2.0)
	v.SetDefault("requests_per_second", 0.0)
	v.SetDefault("out_dir", filepath.Join("data", "openf1_full"))
	v.SetDefault("overwrite", true)
	v.SetDefault("start_year", 2018)
	v.SetDefault("end_year", 0)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config file")
		}
	}

	scope, err := domain.ParseScope(v.GetString("session_scope"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:           v.GetString("base_url"),
		Scope:             scope,
		IncludeMeetings:   v.GetBool("include_meetings"),
		DownloadLaps:      v.GetBool("download_laps"),
		Timeout:           v.GetDuration("timeout"),
		Retries:           v.GetInt("retries"),
		Backoff:           v.GetFloat64("backoff"),
		RequestsPerSecond: v.GetFloat64("requests_per_second"),
		OutDir:            v.GetString("out_dir"),
		Overwrite:         v.GetBool("overwrite"),
		StartYear:         v.GetInt("start_year"),
		EndYear:           v.GetInt("end_year"),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.BaseURL == "":
		return errors.New("base_url is empty")
	case c.Timeout <= 0:
		return errors.Newf("timeout must be positive, got %s", c.Timeout)
	case c.Retries < 1:
		return errors.Newf("retries must be at least 1, got %d", c.Retries)
	case c.Backoff <= 0:
		return errors.Newf("backoff base must be positive, got %g", c.Backoff)
	case c.RequestsPerSecond < 0:
		return errors.Newf("requests_per_second must not be negative, got %g", c.RequestsPerSecond)
	case c.OutDir == "":
		return errors.New("out_dir is empty")
	case c.StartYear < 1950:
		return errors.Newf("start_year %d predates championship data", c.StartYear)
	case c.EndYear != 0 && c.EndYear < c.StartYear:
		return errors.Newf("end_year %d is before start_year %d", c.EndYear, c.StartYear)
	}
	return nil
}
