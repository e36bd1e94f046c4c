// Copyright 2025 Quantum AI contributors
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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	quantumai "github.com/nikhilsinclair/Quantum-AI"
	"github.com/nikhilsinclair/Quantum-AI/ai"
	"github.com/nikhilsinclair/Quantum-AI/ingest"
	"github.com/nikhilsinclair/Quantum-AI/storage/gcs"
)

func main() {
	app := &cli.App{
		Name:  "quantumai",
		Usage: "Document ingestion pipeline for semantic search indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest every document under a topic into the vector index",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "topic",
						Aliases:  []string{"t"},
						Usage:    "Topic folder to ingest",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "source-bucket",
						Usage:    "Bucket holding the source documents",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "staging-bucket",
						Usage: "Bucket for staged page artifacts (defaults to source-bucket)",
					},
					&cli.BoolFlag{
						Name:  "gcs",
						Usage: "Read source documents from Google Cloud Storage",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "api-token",
						Usage: "API token for the embedding service",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of documents to process concurrently",
						Value: 4,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	stagingBucket := c.String("staging-bucket")
	if stagingBucket == "" {
		stagingBucket = c.String("source-bucket")
	}

	aiOpts := []ai.ConfigOption{
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	}
	if token := c.String("api-token"); token != "" {
		aiOpts = append(aiOpts, ai.WithAPIToken(token))
	}
	aiConfig := ai.NewConfig(aiOpts...)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	sysOpts := []quantumai.SystemOption{quantumai.WithAIConfig(aiConfig)}
	if c.Bool("gcs") {
		store, err := gcs.NewStore(ctx)
		if err != nil {
			return fmt.Errorf("failed to create GCS store: %w", err)
		}
		sysOpts = append(sysOpts, quantumai.WithSourceStore(store))
	}

	system, err := quantumai.NewSystem(c.String("db"), sysOpts...)
	if err != nil {
		return fmt.Errorf("failed to open system: %w", err)
	}
	defer system.Close()

	pipeline, err := system.NewPipeline(c.String("source-bucket"), stagingBucket,
		ingest.WithPoolSize(c.Int("workers")),
		ingest.WithMonitor(newProgressMonitor(os.Stderr)),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Source bucket: %s\n", c.String("source-bucket"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if _, err := pipeline.Run(ctx, c.String("topic")); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	return nil
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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
