package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/kylepratt/flipledger/backend-go/internal/pipeline"
)

// runLedgerImport imports every CSV under --data-dir through the import
// pipeline. File kinds are detected from names and headers, so a directory
// of mixed exports (pallets, items, expenses, mileage) works.
func runLedgerImport(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	if c.Bool("reset") {
		if err := resetLedger(c.Context, db); err != nil {
			return fmt.Errorf("error resetting ledger tables: %w", err)
		}
	}

	dataDir := c.String("data-dir")
	files, err := collectCSVFiles(dataDir)
	if err != nil {
		return fmt.Errorf("error walking data directory: %w", err)
	}
	if len(files) == 0 {
		log.Printf("No ledger CSV files found in %s", dataDir)
		return nil
	}

	return importFiles(c, db, files)
}

// importFiles runs the given CSV files through the ledger pipeline.
func importFiles(c *cli.Context, db *sql.DB, files []string) error {
	ledgerPipe := pipeline.NewLedgerPipeline(db, c.Float64("mileage-rate"))

	pCfg := pipeline.DefaultConfig(ledgerPipe.Name())
	if workers := c.Int("pipeline-workers"); workers > 0 {
		pCfg.WorkerCount = workers
	}

	orch := pipeline.NewOrchestrator(pCfg)
	if err := orch.Run(c.Context, ledgerPipe, files); err != nil {
		return fmt.Errorf("ledger import failed: %w", err)
	}

	log.Printf("Imported %d ledger file(s)", len(files))
	return nil
}

// resetLedger empties every ledger table so the import starts from a clean
// slate instead of upserting over old rows.
func resetLedger(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `TRUNCATE TABLE mileage_trip_pallets, mileage_trips, expense_pallets, expenses, items, pallets RESTART IDENTITY CASCADE`)
	if err != nil {
		return err
	}
	log.Printf("Ledger tables truncated")
	return nil
}

func collectCSVFiles(root string) ([]string, error) {
	files := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".csv" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
