// Copyright 2025 Poiesic Systems
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
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/metadex"
	"github.com/poiesic/metadex/ai"
	"github.com/poiesic/metadex/core"
	"github.com/poiesic/metadex/corpus"
	"github.com/poiesic/metadex/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	registry := prometheus.NewRegistry()
	defaults := ai.DefaultConfig()

	return &cli.App{
		Name:  "metadex",
		Usage: "Metadata extraction and metadata-filtered search for technical documentation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "llm-host",
				Usage:   "OpenAI-compatible extraction service URL",
				Value:   defaults.Host,
				EnvVars: []string{"METADEX_LLM_HOST"},
			},
			&cli.StringFlag{
				Name:    "llm-model",
				Usage:   "Model used for probabilistic extraction",
				Value:   defaults.Model,
				EnvVars: []string{"METADEX_LLM_MODEL"},
			},
			&cli.StringFlag{
				Name:    "llm-token",
				Usage:   "API token for the extraction service",
				Value:   defaults.Token,
				EnvVars: []string{"METADEX_LLM_TOKEN"},
			},
			&cli.IntFlag{
				Name:  "extraction-passes",
				Usage: "Model passes per document",
				Value: defaults.ExtractionPasses,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-document extraction timeout",
				Value: defaults.Timeout,
			},
			&cli.BoolFlag{
				Name:  "deterministic",
				Usage: "Skip the extraction service and use rule-based extraction only",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Print a metrics summary to stderr on exit",
			},
		},
		Before: func(c *cli.Context) error {
			if err := setupLogger(c); err != nil {
				return err
			}
			return metrics.Register(registry)
		},
		After: func(c *cli.Context) error {
			if !c.Bool("metrics") {
				return nil
			}
			return metrics.WriteSummary(c.App.ErrWriter, registry)
		},
		Commands: []*cli.Command{
			{
				Name:   "extract",
				Usage:  "Extract and print metadata for every document",
				Action: extractCommand,
				Flags: []cli.Flag{
					corpusFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print indexed documents as JSON",
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Compare filtered and unfiltered search for a query",
				ArgsUsage: "QUERY...",
				Action:    queryCommand,
				Flags: []cli.Flag{
					corpusFlag(),
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Show why each document was rejected by the filtered search",
					},
				},
			},
			{
				Name:   "demo",
				Usage:  "Run the demo queries over the built-in sample set",
				Action: demoCommand,
			},
		},
	}
}

func corpusFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "corpus",
		Aliases: []string{"c"},
		Usage:   "YAML or JSON file of documents (default: built-in sample set)",
	}
}

func extractCommand(c *cli.Context) error {
	docs, err := loadDocuments(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	engine, err := newEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	report, err := engine.IngestReport(ctx, docs)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, report.Documents)
	}
	writeExtraction(c.App.Writer, engine.Strategy().Name(), report)
	return nil
}

func queryCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("query text is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	docs, err := loadDocuments(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	engine, err := newEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if _, err := engine.Ingest(ctx, docs); err != nil {
		return err
	}

	var monitor *explainMonitor
	if c.Bool("explain") {
		monitor = &explainMonitor{}
	}
	result, err := engine.QueryWithMonitor(ctx, query, monitorOrNil(monitor))
	if err != nil {
		return err
	}

	writeQueryResult(c.App.Writer, result)
	if monitor != nil {
		indexed, err := engine.Count(ctx)
		if err != nil {
			return err
		}
		monitor.write(c.App.Writer, indexed)
	}
	return nil
}

func demoCommand(c *cli.Context) error {
	ctx := context.Background()
	engine, err := newEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	report, err := engine.IngestReport(ctx, corpus.Sample())
	if err != nil {
		return err
	}
	writeExtraction(c.App.Writer, engine.Strategy().Name(), report)

	for _, query := range corpus.DemoQueries {
		result, err := engine.Query(ctx, query)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer)
		writeQueryResult(c.App.Writer, result)
	}
	return nil
}

func loadDocuments(c *cli.Context) ([]core.Document, error) {
	path := c.String("corpus")
	if path == "" {
		return corpus.Sample(), nil
	}
	docs, err := corpus.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}
	slog.Debug("corpus loaded", "path", path, "documents", len(docs))
	return docs, nil
}

func newEngine(ctx context.Context, c *cli.Context) (*metadex.Engine, error) {
	opts := []metadex.EngineOption{
		metadex.WithLogger(slog.Default()),
		metadex.WithProgress(c.App.ErrWriter, 1),
	}
	if c.Bool("deterministic") {
		opts = append(opts, metadex.WithDeterministicOnly())
	} else {
		opts = append(opts, metadex.WithAIConfig(aiConfig(c)))
	}
	return metadex.NewEngine(ctx, opts...)
}

func aiConfig(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.String("llm-host")),
		ai.WithModel(c.String("llm-model")),
		ai.WithToken(c.String("llm-token")),
		ai.WithExtractionPasses(c.Int("extraction-passes")),
		ai.WithTimeout(durationOr(c.Duration("timeout"), ai.DefaultConfig().Timeout)),
	)
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
