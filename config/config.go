// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/cardinalhq/myalerts/internal/alertapi"
	"github.com/cardinalhq/myalerts/internal/alertcache"
	"github.com/cardinalhq/myalerts/internal/alertcount"
	"github.com/cardinalhq/myalerts/internal/navigation"
)

// Config aggregates configuration for the application.
// Each section is owned by its respective package.
type Config struct {
	Alerts AlertsConfig      `mapstructure:"alerts"`
	Cache  alertcache.Config `mapstructure:"cache"`
	HTTP   alertapi.Config   `mapstructure:"http"`
}

type AlertsConfig struct {
	// CacheDurationSeconds is how long a resolved count stays in the
	// external cache. Zero or less disables the external tier.
	CacheDurationSeconds int    `mapstructure:"cache_duration_seconds"`
	ListingPage          string `mapstructure:"listing_page"`
}

func (a AlertsConfig) TTL() alertcount.TTLConfig {
	return alertcount.TTLConfig{DurationSeconds: a.CacheDurationSeconds}
}

func DefaultConfig() *Config {
	return &Config{
		Alerts: AlertsConfig{
			CacheDurationSeconds: alertcount.DefaultCacheDurationSeconds,
			ListingPage:          navigation.DefaultListingPage,
		},
		Cache: alertcache.DefaultConfig(),
		HTTP:  alertapi.DefaultConfig(),
	}
}

// Load reads configuration from files and environment variables.
// Environment variables use the prefix "MYALERTS" and the dot character
// in keys is replaced by an underscore. For example,
// "alerts.cache_duration_seconds" becomes
// "MYALERTS_ALERTS_CACHE_DURATION_SECONDS".
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("MYALERTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)
	_ = v.ReadInConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))
	if cfg.Alerts.ListingPage == "" {
		cfg.Alerts.ListingPage = navigation.DefaultListingPage
	}
	return cfg, nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(append([]string{}, parts...), tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
