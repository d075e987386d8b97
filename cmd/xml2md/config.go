// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/xmlconverter"
)

// config is the merged result of the config file, environment, and flags.
type config struct {
	Format             string   `mapstructure:"format"`
	Charset            string   `mapstructure:"charset"`
	EscapeMode         string   `mapstructure:"escape_mode"`
	Escapes            string   `mapstructure:"escapes"`
	PreMode            string   `mapstructure:"pre_mode"`
	UnknownElementMode string   `mapstructure:"unknown_element_mode"`
	Exclude            []string `mapstructure:"exclude"`
	NormalizeUnicode   bool     `mapstructure:"normalize_unicode"`
	NewLine            string   `mapstructure:"newline"`
	Output             string   `mapstructure:"output"`
	Watch              bool     `mapstructure:"watch"`
	LogLevel           string   `mapstructure:"log_level"`
}

const envPrefix = "XML2MD"

// loadConfig reads configuration into v and decodes it.
// If configFile is empty, xml2md.yaml is looked up in the working directory
// and a missing file is not an error.
func loadConfig(v *viper.Viper, configFile string) (*config, error) {
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("xml2md")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("format", "html")
	v.SetDefault("escape_mode", xmlconverter.HTMLAndCustom.String())
	v.SetDefault("pre_mode", xmlconverter.Fenced.String())
	v.SetDefault("unknown_element_mode", xmlconverter.PassThrough.String())
	v.SetDefault("newline", "lf")
	v.SetDefault("log_level", "warn")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	cfg := new(config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// markdownOptions converts the configuration to converter options.
func (cfg *config) markdownOptions() (*xmlconverter.MarkdownOptions, error) {
	opts := &xmlconverter.MarkdownOptions{
		NormalizeUnicode: cfg.NormalizeUnicode,
	}
	var err error
	if opts.EscapeMode, err = xmlconverter.ParseEscapeMode(cfg.EscapeMode); err != nil {
		return nil, err
	}
	if opts.PreMode, err = xmlconverter.ParsePreMode(cfg.PreMode); err != nil {
		return nil, err
	}
	if opts.UnknownElementMode, err = xmlconverter.ParseUnknownElementMode(cfg.UnknownElementMode); err != nil {
		return nil, err
	}
	if opts.Exclude, err = xmlconverter.ParseTargets(cfg.Exclude); err != nil {
		return nil, err
	}
	if opts.NewLine, err = parseNewLine(cfg.NewLine); err != nil {
		return nil, err
	}
	if cfg.Escapes != "" {
		if opts.CustomEscapes, err = loadEscapes(cfg.Escapes); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

func parseNewLine(s string) (string, error) {
	switch strings.ToLower(s) {
	case "", "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	case "cr":
		return "\r", nil
	default:
		return "", fmt.Errorf("%w: newline %q (want lf, crlf, or cr)", xmlconverter.ErrInvalidOption, s)
	}
}

// loadEscapes reads a YAML mapping of single characters to replacements.
func loadEscapes(path string) (xmlconverter.EscapeTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load escapes: %w", err)
	}
	table, err := parseEscapes(data)
	if err != nil {
		return nil, fmt.Errorf("load escapes %s: %w", path, err)
	}
	return table, nil
}

func parseEscapes(data []byte) (xmlconverter.EscapeTable, error) {
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	table := make(xmlconverter.EscapeTable, len(m))
	for k, v := range m {
		if utf8.RuneCountInString(k) != 1 {
			return nil, fmt.Errorf("%w: escape key %q is not a single character", xmlconverter.ErrInvalidOption, k)
		}
		r, _ := utf8.DecodeRuneInString(k)
		table[r] = v
	}
	return table, nil
}
