package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"clubevents/config"
	"clubevents/internal/adapters/roster"
	"clubevents/internal/domain"
	"clubevents/internal/repository/memory"
	"clubevents/internal/repository/postgres"

	"github.com/spf13/cobra"
)

var rosterLimit int

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Load the member roster and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := config.NewLogger(cfg, os.Stderr)
		directory, err := loadDirectory(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		printRosterSummary(cmd.OutOrStdout(), directory, rosterLimit)
		return nil
	},
}

func init() {
	rosterCmd.Flags().IntVar(&rosterLimit, "limit", 10, "number of identifiers to print")
	rootCmd.AddCommand(rosterCmd)
}

// newRosterSource picks the configured roster backend. The returned closer
// releases any connection the source holds.
func newRosterSource(cfg *config.Config, logger *slog.Logger) (domain.RosterSource, func() error, error) {
	switch cfg.RosterSource {
	case config.RosterSourcePostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return postgres.NewRosterRepository(db), db.Close, nil
	default:
		return roster.NewXLSXSource(cfg.RosterPath, cfg.RosterSheet, logger), func() error { return nil }, nil
	}
}

// loadDirectory reads the roster once and indexes it. Any load failure is fatal.
func loadDirectory(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*memory.MemberDirectory, error) {
	source, closeSource, err := newRosterSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	members, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster (%s): %w", cfg.RosterSource, err)
	}
	directory := memory.NewMemberDirectory(members)
	logger.InfoContext(ctx, "roster loaded", "source", cfg.RosterSource, "members", directory.Len())
	return directory, nil
}

func printRosterSummary(w io.Writer, directory *memory.MemberDirectory, limit int) {
	fmt.Fprintf(w, "Miembros cargados: %d\n", directory.Len())
	fmt.Fprintf(w, "Primeras matrículas: %v\n", directory.Identifiers(limit))
}
