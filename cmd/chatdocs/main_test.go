package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"DEBUG", false},
		{"verbose", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			app := &cli.App{
				Name: "chatdocs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "log-level", Value: "info"},
				},
				Before: setupLogger,
				Action: func(c *cli.Context) error { return nil },
			}

			err := app.Run([]string{"chatdocs", "--log-level", tt.level})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIngestCommandFlags(t *testing.T) {
	var captured *cli.Context
	app := &cli.App{
		Name: "chatdocs",
		Commands: []*cli.Command{
			{
				Name: "ingest",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "conversation", Aliases: []string{"c"}, Required: true},
					&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true},
					&cli.BoolFlag{Name: "replace"},
				},
				Action: func(c *cli.Context) error {
					captured = c
					return nil
				},
			},
		},
	}

	t.Run("conversation is required", func(t *testing.T) {
		err := app.Run([]string{"chatdocs", "ingest", "--user", "u@example.com", "report.pdf"})
		assert.Error(t, err)
	})

	t.Run("all flags parse", func(t *testing.T) {
		err := app.Run([]string{"chatdocs", "ingest", "-c", "conv-1", "-u", "u@example.com", "--replace", "report.pdf"})
		require.NoError(t, err)
		require.NotNil(t, captured)
		assert.Equal(t, "conv-1", captured.String("conversation"))
		assert.True(t, captured.Bool("replace"))
		assert.Equal(t, "report.pdf", captured.Args().First())
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "./chatdocs-db", cfg.DatabasePath)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("AZURE_SEARCH_NAME", "my-search")
	t.Setenv("AZURE_SEARCH_INDEX_NAME", "chatdocs-index")
	t.Setenv("AZURE_SEARCH_API_KEY", "key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddr)

	searchCfg := cfg.SearchConfig()
	require.NoError(t, searchCfg.Validate())
	assert.Equal(t, "https://my-search.search.windows.net", searchCfg.Endpoint)
}
