// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/go-arcade/authcenter/pkg/cache"
	"github.com/go-arcade/authcenter/pkg/database"
	httpx "github.com/go-arcade/authcenter/pkg/http"
	"github.com/go-arcade/authcenter/pkg/log"
)

// Authz holds resolver policy knobs.
type Authz struct {
	InheritAncestorRoles bool `mapstructure:"inheritAncestorRoles"`
	ApplyDefaultRoles    bool `mapstructure:"applyDefaultRoles"`
	LockoutThreshold     int  `mapstructure:"lockoutThreshold"`
	LockoutMinutes       int  `mapstructure:"lockoutMinutes"`
}

type AppConfig struct {
	Log      log.Conf
	Http     httpx.Http
	Database database.Database
	Redis    cache.Redis
	Authz    Authz
}

// NewConfig loads the TOML config file and begins watching it for changes.
// onChange may be nil.
func NewConfig(path string, onChange func(*AppConfig)) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetDefault("authz.inheritAncestorRoles", true)
	v.SetDefault("authz.applyDefaultRoles", true)
	v.SetDefault("authz.lockoutThreshold", 5)
	v.SetDefault("authz.lockoutMinutes", 5)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		var next AppConfig
		if err := v.Unmarshal(&next); err != nil {
			log.Errorw("failed to reload config", "path", path, "error", err)
			return
		}
		log.Infow("config reloaded", "path", path)
		if onChange != nil {
			onChange(&next)
		}
	})
	v.WatchConfig()

	return &cfg, nil
}
