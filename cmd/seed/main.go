package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"runtime"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/kylepratt/flipledger/backend-go/internal/types"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func migrationsDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "migrations-dir",
		Usage:   "Directory containing SQL migration files",
		Value:   "./scripts/migrations",
		EnvVars: []string{"MIGRATIONS_DIR"},
	}
}

func dataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing ledger export CSV files",
		Value:   "./data/ledger",
		EnvVars: []string{"APP_DATA_DIR"},
	}
}

func resetFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "reset",
		Usage: "Truncate ledger tables before importing",
	}
}

func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "pipeline-workers",
			Usage:   "Number of concurrent workers for the import pipeline",
			Value:   runtime.NumCPU(),
			EnvVars: []string{"PIPELINE_WORKERS"},
		},
		&cli.Float64Flag{
			Name:    "mileage-rate",
			Usage:   "Per-mile deduction rate applied when a trip carries no rate",
			Value:   0.67,
			EnvVars: []string{"APP_DEFAULT_MILEAGE_RATE"},
		},
	}
}

func storageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "storage-endpoint",
			Usage:   "Object storage endpoint (host:port)",
			EnvVars: []string{"STORAGE_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "storage-access-key",
			Usage:   "Object storage access key",
			EnvVars: []string{"STORAGE_ACCESS_KEY"},
		},
		&cli.StringFlag{
			Name:    "storage-secret-key",
			Usage:   "Object storage secret key",
			EnvVars: []string{"STORAGE_SECRET_KEY"},
		},
		&cli.StringFlag{
			Name:    "storage-bucket",
			Usage:   "Object storage bucket for ledger backups",
			Value:   "flipledger-exports",
			EnvVars: []string{"STORAGE_BUCKET"},
		},
		&cli.BoolFlag{
			Name:    "storage-use-ssl",
			Usage:   "Use TLS when talking to object storage",
			Value:   true,
			EnvVars: []string{"STORAGE_USE_SSL"},
		},
		&cli.StringFlag{
			Name:    "storage-prefix",
			Usage:   "Key prefix for ledger backups in the bucket",
			Value:   "backups/ledger",
			EnvVars: []string{"STORAGE_BACKUP_PREFIX"},
		},
	}
}

func restoreFlags() []cli.Flag {
	flags := []cli.Flag{
		newDBURLFlag(),
		migrationsDirFlag(),
		&cli.StringFlag{
			Name:    "download-dir",
			Usage:   "Local directory where backup files are downloaded",
			Value:   "./data/ledger",
			EnvVars: []string{"APP_DATA_DIR"},
		},
		&cli.BoolFlag{
			Name:  "from-storage",
			Usage: "Restore from the object storage bucket instead of Google Drive",
		},
		&cli.StringFlag{
			Name:    "drive-folder-id",
			Usage:   "Google Drive folder ID containing tracker backups",
			EnvVars: []string{"DRIVE_FOLDER_ID"},
		},
		&cli.StringFlag{
			Name:    "drive-folder-path",
			Usage:   "Google Drive folder path, resolved when no folder ID is given",
			Value:   "flipledger/exports",
			EnvVars: []string{"DRIVE_FOLDER_PATH"},
		},
		&cli.StringFlag{
			Name:    "credentials-path",
			Usage:   "Path to the Google service account JSON",
			Value:   "./credentials.json",
			EnvVars: []string{"DRIVE_CREDENTIALS_PATH"},
		},
	}
	flags = append(flags, storageFlags()...)
	flags = append(flags, pipelineFlags()...)
	return flags
}

func initDB(c *cli.Context) error {
	// Initialize database connection
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, types.DBKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	// Close the database connection when done
	if db, ok := c.Context.Value(types.DBKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) (*sql.DB, error) {
	db, ok := c.Context.Value(types.DBKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not found in context")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Manage the ledger database: schema, imports and backups",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Apply SQL migrations to create or update the ledger schema",
				Flags:  []cli.Flag{newDBURLFlag(), migrationsDirFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runMigrate,
			},
			{
				Name:   "ledger",
				Usage:  "Import ledger export CSVs from a local directory",
				Flags:  append([]cli.Flag{newDBURLFlag(), dataDirFlag(), resetFlag()}, pipelineFlags()...),
				Before: initDB,
				After:  closeDB,
				Action: runLedgerImport,
			},
			{
				Name:   "restore",
				Usage:  "Download tracker backups from Drive or object storage and import them",
				Flags:  restoreFlags(),
				Before: initDB,
				After:  closeDB,
				Action: runRestore,
			},
			{
				Name:   "backup",
				Usage:  "Upload local ledger export CSVs to object storage",
				Flags:  append([]cli.Flag{dataDirFlag()}, storageFlags()...),
				Action: runBackup,
			},
			{
				Name:   "all",
				Usage:  "Apply migrations then import ledger exports from the data directory",
				Flags:  append([]cli.Flag{newDBURLFlag(), migrationsDirFlag(), dataDirFlag(), resetFlag()}, pipelineFlags()...),
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					// First create the schema
					if err := runMigrate(c); err != nil {
						return fmt.Errorf("error applying migrations: %w", err)
					}
					// Then import the exports
					if err := runLedgerImport(c); err != nil {
						return fmt.Errorf("error importing ledger exports: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
