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

// xml2md converts HTML or XML documents to Markdown.
//
// Usage:
//
//	xml2md [flags] [FILE]
//
// With no FILE, or when FILE is -, xml2md reads standard input.
// Every flag can also be set in an xml2md.yaml file in the working directory
// or with an XML2MD_-prefixed environment variable
// (for example, XML2MD_PRE_MODE=indented).
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/html/charset"
	"zombiezen.com/go/xmlconverter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	var configFile string
	cmd := &cobra.Command{
		Use:   "xml2md [flags] [FILE]",
		Short: "Convert HTML or XML documents to Markdown",
		Long: `xml2md converts an HTML or XML document to Markdown.

Examples:
  xml2md page.html
  curl -s https://example.com/ | xml2md --exclude images,hyperlinks
  xml2md --format xml --pre-mode indented doc.xml
  xml2md --watch -o README.md README.html`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, configFile)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			input := "-"
			if len(args) > 0 {
				input = args[0]
			}
			return run(cmd.Context(), cmd, logger, cfg, input)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (default ./xml2md.yaml)")
	flags.StringP("format", "f", "html", "input format: html or xml")
	flags.String("charset", "", "HTML input character set (default: detect)")
	flags.String("escape-mode", xmlconverter.HTMLAndCustom.String(), "characters to escape: html-and-custom or custom-only")
	flags.String("escapes", "", "YAML file mapping characters to their escaped form")
	flags.String("pre-mode", xmlconverter.Fenced.String(), "code block style: fenced or indented")
	flags.String("unknown-element-mode", xmlconverter.PassThrough.String(), "unknown elements: pass-through, strip-tags, or remove-elements")
	flags.StringSlice("exclude", nil, "converter families to disable (for example images,hyperlinks)")
	flags.Bool("normalize-unicode", false, "convert text to Unicode Normalization Form C")
	flags.String("newline", "lf", "line terminator: lf, crlf, or cr")
	flags.StringP("output", "o", "", "write output to `file` instead of standard output")
	flags.String("log-level", "warn", "log level: debug, info, warn, error, or off")
	flags.BoolP("watch", "w", false, "convert again whenever the input file changes")
	for _, name := range []string{
		"format",
		"charset",
		"escape-mode",
		"escapes",
		"pre-mode",
		"unknown-element-mode",
		"exclude",
		"normalize-unicode",
		"newline",
		"output",
		"log-level",
		"watch",
	} {
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, logger zerolog.Logger, cfg *config, input string) error {
	if cfg.Watch && input == "-" {
		return fmt.Errorf("--watch needs an input file")
	}
	opts, err := cfg.markdownOptions()
	if err != nil {
		return err
	}
	c, err := xmlconverter.NewMarkdown(opts)
	if err != nil {
		return err
	}
	convert := func() error {
		return convertInput(cmd, logger, c, cfg, input)
	}
	if err := convert(); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}
	logger.Info().Str("input", input).Msg("watching for changes")
	return watch(ctx, logger, input, convert)
}

// convertInput converts the named input (or standard input for "-")
// to the configured output.
func convertInput(cmd *cobra.Command, logger zerolog.Logger, c *xmlconverter.Converter, cfg *config, input string) (err error) {
	var r io.Reader = cmd.InOrStdin()
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	nodes, err := parseInput(r, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	logger.Debug().
		Str("input", input).
		Str("format", cfg.Format).
		Int("nodes", len(nodes)).
		Msg("parsed input")

	var w io.Writer = cmd.OutOrStdout()
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := f.Close(); err == nil && closeErr != nil {
				err = closeErr
			}
		}()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err := c.Convert(bw, nodes...); err != nil {
		return fmt.Errorf("convert %s: %w", input, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("convert %s: %w", input, err)
	}
	logger.Info().Str("input", input).Str("output", cfg.Output).Msg("converted")
	return nil
}

func parseInput(r io.Reader, cfg *config) ([]*xmlconverter.Node, error) {
	switch strings.ToLower(cfg.Format) {
	case "html":
		contentType := "text/html"
		if cfg.Charset != "" {
			contentType += "; charset=" + cfg.Charset
		}
		utf8Reader, err := charset.NewReader(r, contentType)
		if err != nil {
			return nil, fmt.Errorf("decode input: %w", err)
		}
		return xmlconverter.ParseHTML(utf8Reader)
	case "xml":
		return xmlconverter.ParseXML(r)
	default:
		return nil, fmt.Errorf("%w: format %q (want html or xml)", xmlconverter.ErrInvalidOption, cfg.Format)
	}
}
