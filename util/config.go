// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Environment variables
const (
	SENTINELHUB_INSTANCE_ID   = "SENTINELHUB_INSTANCE_ID"
	SENTINELHUB_CLIENT_ID     = "SENTINELHUB_CLIENT_ID"
	SENTINELHUB_CLIENT_SECRET = "SENTINELHUB_CLIENT_SECRET"
	LOG_LEVEL                 = "LOG_LEVEL"
	PORT                      = "PORT"
	SH_PROCESS_API_URL        = "SH_PROCESS_API_URL"
	SH_TOKEN_URL              = "SH_TOKEN_URL"
)

const (
	defaultProcessAPIURL = "https://services.sentinel-hub.com/api/v1/process"
	defaultTokenURL      = "https://services.sentinel-hub.com/oauth/token"
)

// Config holds the process-lifetime configuration, read once at startup and
// never mutated afterwards.
type Config struct {
	InstanceID   string
	ClientID     string
	ClientSecret string
	LogLevel     string
	Port         int
	ProcessURL   string
	TokenURL     string
}

// LoadConfig reads configuration from an optional .env file in the working
// directory and the environment. It does not validate credentials; call
// Validate before any network activity is attempted.
func LoadConfig() *Config {
	return loadConfig(".env")
}

func loadConfig(envFile string) *Config {
	v := viper.New()

	v.SetDefault(LOG_LEVEL, "info")
	v.SetDefault(PORT, 8080)
	v.SetDefault(SH_PROCESS_API_URL, defaultProcessAPIURL)
	v.SetDefault(SH_TOKEN_URL, defaultTokenURL)

	// env file (optional)
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	_ = v.ReadInConfig() // OK if missing

	v.AutomaticEnv()

	return &Config{
		InstanceID:   v.GetString(SENTINELHUB_INSTANCE_ID),
		ClientID:     v.GetString(SENTINELHUB_CLIENT_ID),
		ClientSecret: v.GetString(SENTINELHUB_CLIENT_SECRET),
		LogLevel:     v.GetString(LOG_LEVEL),
		Port:         v.GetInt(PORT),
		ProcessURL:   v.GetString(SH_PROCESS_API_URL),
		TokenURL:     v.GetString(SH_TOKEN_URL),
	}
}

// MissingCredentialsError reports which Sentinel Hub credential variables
// were not set. It is fatal: the server must not start without a full set.
type MissingCredentialsError struct {
	Missing []string
}

func (e MissingCredentialsError) Error() string {
	return "Missing Sentinel Hub API credentials: " + strings.Join(e.Missing, ", ")
}

// Validate checks that all three Sentinel Hub credential strings are present.
func (c *Config) Validate() error {
	var missing []string
	if c.InstanceID == "" {
		missing = append(missing, SENTINELHUB_INSTANCE_ID)
	}
	if c.ClientID == "" {
		missing = append(missing, SENTINELHUB_CLIENT_ID)
	}
	if c.ClientSecret == "" {
		missing = append(missing, SENTINELHUB_CLIENT_SECRET)
	}
	if len(missing) > 0 {
		err := MissingCredentialsError{Missing: missing}
		LogAlert(&BasicLogContext{}, err.Error())
		return err
	}
	return nil
}

// PortStr returns the listen address for the configured port
func (c *Config) PortStr() string {
	return fmt.Sprintf(":%d", c.Port)
}
