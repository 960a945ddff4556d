package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/royalcat/orthtree/snapshot"
	"github.com/urfave/cli/v3"
)

func convert(ctx *cli.Context) error {
	loc, err := loadLocator(ctx)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("error creating snapshot file: %w", err)
	}
	defer file.Close()

	meta := snapshot.Metadata{
		Version:     uint32(ctx.Uint("data-version")),
		DateCreated: time.Now(),
	}
	if err := loc.Save(file, meta); err != nil {
		return fmt.Errorf("error saving snapshot: %w", err)
	}
	if err := file.Close(); err != nil {
		return err
	}

	slog.Info("Snapshot saved", "file", out, "points", loc.Len())
	return nil
}
