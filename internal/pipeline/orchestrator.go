package pipeline

import (
	"context"
	"fmt"

	"github.com/kylepratt/flipledger/backend-go/internal/ingest"
)

// kindOrder fixes the import sequence: pallets first so item, expense and
// mileage rows can resolve their pallet references; unclassified files run
// last and rely on the processor's header detection.
var kindOrder = []ingest.FileKind{
	ingest.KindPallets,
	ingest.KindItems,
	ingest.KindExpenses,
	ingest.KindMileage,
	ingest.KindUnknown,
}

// Orchestrator coordinates running a Pipeline over a set of local files
// grouped by ledger kind. Files of the same kind are processed concurrently;
// the kind groups run in dependency order.
type Orchestrator struct {
	cfg   Config
	makeW func(p Pipeline, cfg Config) *Worker
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(cfg Config) *Orchestrator {
	return &Orchestrator{
		cfg:   cfg,
		makeW: NewWorker,
	}
}

// Run groups the provided files by ledger kind and runs a Worker batch for
// each kind in dependency order.
func (o *Orchestrator) Run(ctx context.Context, p Pipeline, files []string) error {
	if len(files) == 0 {
		return nil
	}

	// Group files by kind
	byKind := make(map[ingest.FileKind][]string)
	for _, f := range files {
		kind := ingest.KindFromFilename(f)
		byKind[kind] = append(byKind[kind], f)
	}

	worker := o.makeW(p, o.cfg)

	for _, kind := range kindOrder {
		batch := byKind[kind]
		if len(batch) == 0 {
			continue
		}

		if _, err := worker.ProcessBatch(ctx, batch); err != nil {
			return fmt.Errorf("failed to process %s batch: %w", kind, err)
		}
	}

	return nil
}
