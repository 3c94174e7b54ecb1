package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gcclub/membercard/internal/config"
	"github.com/gcclub/membercard/internal/export"
	"github.com/gcclub/membercard/internal/member"
	"github.com/gcclub/membercard/internal/shared/database"
	"github.com/gcclub/membercard/internal/shared/logger"
)

func main() {
	env := flag.String("env", "local", "Environment (local|dev|production)")
	out := flag.String("out", export.DefaultFile, "Output file")
	batch := flag.Int("batch", export.DefaultBatchSize, "Rows fetched per query")
	flag.Parse()

	logger.Setup(*env)

	if err := run(*env, *out, *batch); err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}
	slog.Info("export succeeded", "file", *out)
}

func run(env, path string, batch int) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// Exporting must never drop tables.
	cfg.Database.IsAutoMigrate = false

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("database close failed", "error", err)
		}
	}()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	exporter := export.NewExporter(db.DB, member.NewMemberRepository(), batch)
	if _, err := exporter.Export(context.Background(), f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
