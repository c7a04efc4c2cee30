// Copyright 2025 Blink Labs Software
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
	"os"
	"path/filepath"
	"strings"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
)

const (
	configDirName  = "solkit"
	configFileName = "config.toml"
)

// Config holds the settings read from the TOML config file. Flags override
// these values.
type Config struct {
	Keypair  string // default signing keyfile
	Keystore string // keystore database directory
	LogLevel string // debug, info, warn, error
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, configDirName)
}

func defaultConfigPath() string {
	return filepath.Join(defaultConfigDir(), configFileName)
}

func DefaultConfig() *Config {
	dir := defaultConfigDir()
	return &Config{
		Keypair:  filepath.Join(dir, "id.json"),
		Keystore: filepath.Join(dir, "keystore"),
		LogLevel: "info",
	}
}

// LoadConfig reads the config file at path. An empty path selects the
// default location, which is allowed to be missing.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	c := DefaultConfig()
	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, errors.Wrap(err, "open config")
	}
	defer file.Close()
	if err := toml.NewDecoder(file).Decode(c); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	c.sanitize()
	return c, nil
}

func (c *Config) sanitize() {
	c.Keypair = expandHome(c.Keypair)
	c.Keystore = expandHome(c.Keystore)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
