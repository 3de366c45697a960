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
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	chatdocs "github.com/poiesic/chatdocs"
	"github.com/poiesic/chatdocs/api"
	"github.com/poiesic/chatdocs/auth"
	"github.com/poiesic/chatdocs/core"
	"github.com/poiesic/chatdocs/ingestion"
)

func main() {
	app := &cli.App{
		Name:  "chatdocs",
		Usage: "Document knowledge base for chat conversations",
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
				Name:   "serve",
				Usage:  "Run the HTTP ingestion and retrieval service",
				Action: serveCommand,
			},
			{
				Name:      "ingest",
				Usage:     "Ingest a document file into a conversation",
				ArgsUsage: "FILE",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "conversation",
						Aliases:  []string{"c"},
						Usage:    "Conversation identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "Principal of the uploading user",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "replace",
						Usage: "Replace previously indexed chunks for this file",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search a conversation's indexed documents",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "conversation",
						Aliases:  []string{"c"},
						Usage:    "Conversation identifier",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results",
						Value: 10,
					},
				},
			},
			{
				Name:   "docs",
				Usage:  "List the documents uploaded to a conversation",
				Action: docsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "conversation",
						Aliases:  []string{"c"},
						Usage:    "Conversation identifier",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
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

func openKnowledgeBase() (*chatdocs.KnowledgeBase, *Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	kb, err := chatdocs.NewKnowledgeBase(cfg.DatabasePath,
		chatdocs.WithAIConfig(cfg.AIConfig()),
		chatdocs.WithSearchConfig(cfg.SearchConfig()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	return kb, cfg, nil
}

func serveCommand(c *cli.Context) error {
	kb, cfg, err := openKnowledgeBase()
	if err != nil {
		return err
	}
	defer kb.Close()

	pipeline, err := kb.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Close()

	searcher, err := kb.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	handler := api.NewHandler(pipeline, searcher, kb.UploadRepository(), slog.Default())
	server := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: api.SetupRouter(handler, slog.Default()),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.ServerAddr)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}

func ingestCommand(c *cli.Context) error {
	filePath := c.Args().First()
	if filePath == "" {
		return fmt.Errorf("file path is required")
	}

	contents, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	kb, _, err := openKnowledgeBase()
	if err != nil {
		return err
	}
	defer kb.Close()

	opts := []ingestion.Option{}
	if c.Bool("replace") {
		opts = append(opts, ingestion.WithDuplicatePolicy(ingestion.DuplicateReplace))
	}

	pipeline, err := kb.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Close()

	ctx := auth.WithPrincipal(context.Background(), c.String("user"))
	req := &core.UploadRequest{
		FileName:       filepath.Base(filePath),
		Size:           int64(len(contents)),
		Contents:       contents,
		ConversationId: c.String("conversation"),
	}

	fileName, err := pipeline.Ingest(ctx, req)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %s into conversation %s\n", fileName, req.ConversationId)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query is required")
	}

	kb, _, err := openKnowledgeBase()
	if err != nil {
		return err
	}
	defer kb.Close()

	searcher, err := kb.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	matches, err := searcher.FindSimilar(context.Background(), c.String("conversation"), query, c.Int("max-hits"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	for i, match := range matches {
		fmt.Printf("%d. [%.3f] %s\n   %s\n", i+1, match.Score, match.Record.SourceFile, match.Record.Contents)
	}
	return nil
}

func docsCommand(c *cli.Context) error {
	kb, _, err := openKnowledgeBase()
	if err != nil {
		return err
	}
	defer kb.Close()

	records, err := kb.UploadRepository().ListUploads(context.Background(), c.String("conversation"))
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No documents uploaded.")
		return nil
	}

	for _, record := range records {
		fmt.Printf("%s  %s  %s\n", record.CreatedAt.Format(time.RFC3339), record.Id, record.FileName)
	}
	return nil
}
