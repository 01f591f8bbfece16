package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kylepratt/flipledger/backend-go/internal/ingest"
)

// LedgerPipeline imports ledger export CSVs through the ingest processor.
type LedgerPipeline struct {
	processor *ingest.LedgerProcessor
}

func NewLedgerPipeline(db *sql.DB, defaultMileageRate float64) *LedgerPipeline {
	return &LedgerPipeline{
		processor: ingest.NewLedgerProcessor(db, defaultMileageRate),
	}
}

func (p *LedgerPipeline) Name() string {
	return "ledger"
}

func (p *LedgerPipeline) Validate(inputFile string) error {
	info, err := os.Stat(inputFile)
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", inputFile, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", inputFile)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s is empty", inputFile)
	}
	if !strings.EqualFold(filepath.Ext(inputFile), ".csv") {
		return fmt.Errorf("%s is not a csv file", inputFile)
	}
	return nil
}

func (p *LedgerPipeline) Process(ctx context.Context, inputFile string) error {
	return p.processor.ProcessFile(ctx, inputFile)
}
