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
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// parseLevel accepts a level name or any prefix of at least two letters.
func parseLevel(text string) (zerolog.Level, bool) {
	switch strings.ToUpper(text) {
	case "DE", "DEB", "DEBU", "DEBUG":
		return zerolog.DebugLevel, true
	case "IN", "INF", "INFO":
		return zerolog.InfoLevel, true
	case "WA", "WAR", "WARN", "WARNING":
		return zerolog.WarnLevel, true
	case "ER", "ERR", "ERRO", "ERROR":
		return zerolog.ErrorLevel, true
	case "DISABLED", "OFF":
		return zerolog.Disabled, true
	}
	return zerolog.NoLevel, false
}

// newLogger returns a human-readable logger writing to w.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, ok := parseLevel(level)
	if !ok {
		return zerolog.Nop(), fmt.Errorf("unknown log level %q", level)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().Timestamp().Logger(), nil
}
