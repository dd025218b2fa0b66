package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string
	LogLevel       string
	Listen         string
	APIBase        string
	RequestTimeout time.Duration
}

// Load reads configuration from STOREFRONT_* environment variables over
// the defaults. Flags bound by the command layer take precedence over both.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "dev")
	v.SetDefault("log-level", "info")
	v.SetDefault("listen", ":3000")
	v.SetDefault("api-base", "http://localhost:8000/api")
	v.SetDefault("timeout", 15*time.Second)

	return &Config{
		Env:            v.GetString("env"),
		LogLevel:       v.GetString("log-level"),
		Listen:         v.GetString("listen"),
		APIBase:        v.GetString("api-base"),
		RequestTimeout: v.GetDuration("timeout"),
	}, nil
}
