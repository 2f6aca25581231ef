// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const configFileName = ".avlscript.yaml"

type RunConfig struct {
	CheckInvariants   bool `yaml:"check_invariants"`
	Progress          bool `yaml:"progress"`
	SkipUnseenDeletes bool `yaml:"skip_unseen_deletes"`
}

type PrintConfig struct {
	CacheTTL string `yaml:"cache_ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Run   RunConfig   `yaml:"run"`
	Print PrintConfig `yaml:"print"`
	Log   LogConfig   `yaml:"log"`
}

func defaultConfig() Config {
	return Config{
		Run: RunConfig{
			SkipUnseenDeletes: true,
		},
		Print: PrintConfig{
			CacheTTL: renderCacheExpiration.String(),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// CacheTTLDuration parses print.cache_ttl, falling back to the default
// expiration when it is empty or invalid.
func (c *Config) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.Print.CacheTTL)
	if err != nil || d <= 0 {
		return renderCacheExpiration
	}
	return d
}

// LoadConfig reads ~/.avlscript.yaml. Any problem reading the file yields the
// defaults.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		cfg := defaultConfig()
		return &cfg, nil
	}
	return loadConfigFrom(configPath)
}

// loadConfigFrom starts from the defaults so a partial file only overrides
// the keys it names.
func loadConfigFrom(configPath string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return &config, nil
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		fallback := defaultConfig()
		return &fallback, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	return &config, nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

func writeDefaultConfigFile(configPath string) error {
	cfg := defaultConfig()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// displaySettings prints the effective configuration, creating the default
// file first when there is none.
func displaySettings(w io.Writer, configPath string) error {
	configExists := true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configExists = false
		fmt.Fprintf(w, "Configuration file not found. Creating default configuration...\n\n")

		if err := writeDefaultConfigFile(configPath); err != nil {
			return err
		}
		fmt.Fprintf(w, "Created default configuration at: %s\n\n", configPath)
	}

	config, err := loadConfigFrom(configPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "avlscript configuration\n")
	fmt.Fprintf(w, "=======================\n\n")

	if configExists {
		fmt.Fprintf(w, "Config file: %s\n\n", configPath)
	} else {
		fmt.Fprintf(w, "Config file: %s (newly created)\n\n", configPath)
	}

	fmt.Fprintf(w, "%srun%s\n", Green, Reset)
	fmt.Fprintf(w, "  check_invariants: %v\n", config.Run.CheckInvariants)
	fmt.Fprintf(w, "    verify order, balance and heights after every insert/delete\n")
	fmt.Fprintf(w, "  progress: %v\n", config.Run.Progress)
	fmt.Fprintf(w, "    show a progress counter on stderr\n")
	fmt.Fprintf(w, "  skip_unseen_deletes: %v\n", config.Run.SkipUnseenDeletes)
	fmt.Fprintf(w, "    answer deletes of never-inserted keys without walking the tree\n\n")

	fmt.Fprintf(w, "%sprint%s\n", Green, Reset)
	fmt.Fprintf(w, "  cache_ttl: %s\n", config.CacheTTLDuration())
	fmt.Fprintf(w, "    how long an unchanged tree's rendering is reused\n\n")

	fmt.Fprintf(w, "%slog%s\n", Green, Reset)
	fmt.Fprintf(w, "  level: %s\n", config.Log.Level)
	fmt.Fprintf(w, "    trace, debug, info, warn, error or disabled\n")

	return nil
}
