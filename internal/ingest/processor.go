// internal/ingest/processor.go
package ingest

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
	"github.com/kylepratt/flipledger/backend-go/internal/repository"
)

// FileKind identifies which ledger collection a CSV export holds.
type FileKind string

const (
	KindPallets  FileKind = "pallets"
	KindItems    FileKind = "items"
	KindExpenses FileKind = "expenses"
	KindMileage  FileKind = "mileage"
	KindUnknown  FileKind = "unknown"
)

// linkSeparator joins pallet references inside a single CSV field. The app
// export uses semicolons so the field survives comma-delimited CSV unquoted.
const linkSeparator = ";"

// LedgerProcessor imports ledger export CSVs. Upserts key on the original
// ids carried in the files, so re-importing the same backup is a no-op.
type LedgerProcessor struct {
	repo               *repository.IngestRepository
	defaultMileageRate float64
}

func NewLedgerProcessor(db *sql.DB, defaultMileageRate float64) *LedgerProcessor {
	return &LedgerProcessor{
		repo:               repository.NewIngestRepository(db),
		defaultMileageRate: defaultMileageRate,
	}
}

// KindFromFilename guesses the ledger kind from the export filename
// (pallets.csv, items_2024-03.csv, ...). Used to order files during bulk
// imports; the header row is authoritative when the two disagree.
func KindFromFilename(filePath string) FileKind {
	name := strings.ToLower(filepath.Base(filePath))
	switch {
	case strings.HasPrefix(name, "pallet"):
		return KindPallets
	case strings.HasPrefix(name, "item"):
		return KindItems
	case strings.HasPrefix(name, "expense"):
		return KindExpenses
	case strings.HasPrefix(name, "mileage"), strings.HasPrefix(name, "trip"):
		return KindMileage
	}
	return KindUnknown
}

// ProcessFile imports a single CSV export, detecting its kind from the
// header row.
func (p *LedgerProcessor) ProcessFile(ctx context.Context, filePath string) error {
	log.Printf("Processing file: %s", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Create a map of column indices
	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	kind := kindFromHeader(colMap)
	if kind == KindUnknown {
		kind = KindFromFilename(filePath)
	}

	switch kind {
	case KindPallets:
		return p.processPallets(ctx, reader, colMap, filePath)
	case KindItems:
		return p.processItems(ctx, reader, colMap, filePath)
	case KindExpenses:
		return p.processExpenses(ctx, reader, colMap, filePath)
	case KindMileage:
		return p.processMileage(ctx, reader, colMap, filePath)
	default:
		return fmt.Errorf("unrecognized ledger export: %s", filePath)
	}
}

func kindFromHeader(colMap map[string]int) FileKind {
	has := func(cols ...string) bool {
		for _, col := range cols {
			if _, ok := colMap[col]; !ok {
				return false
			}
		}
		return true
	}

	switch {
	case has("source_type", "purchase_cost"):
		return KindPallets
	case has("status", "pallet_id"):
		return KindItems
	case has("category", "amount"):
		return KindExpenses
	case has("miles"):
		return KindMileage
	}
	return KindUnknown
}

func (p *LedgerProcessor) processPallets(ctx context.Context, reader *csv.Reader, colMap map[string]int, filePath string) error {
	processedCount := 0
	skippedCount := 0

	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return fmt.Errorf("error reading record: %w", err)
		}

		originalID := getValue(record, colMap, "id")
		if originalID == "" {
			log.Printf("Skipping pallet record without id in file %s", filePath)
			skippedCount++
			continue
		}

		name := getValue(record, colMap, "name")
		if name == "" {
			name = "Pallet " + originalID
		}

		sourceType, ok := domain.ParseSourceType(getValue(record, colMap, "source_type"))
		if !ok {
			log.Printf("Unknown source type %q for pallet %s, using %q", getValue(record, colMap, "source_type"), originalID, sourceType)
		}

		pallet := &domain.Pallet{
			OriginalID:   originalID,
			Name:         name,
			Supplier:     getOptional(record, colMap, "supplier"),
			SourceType:   sourceType,
			SourceName:   getOptional(record, colMap, "source_name"),
			PurchaseCost: getMoney(record, colMap, "purchase_cost"),
			SalesTax:     getFloat(record, colMap, "sales_tax"),
			PurchaseDate: getTime(record, colMap, "purchase_date"),
		}

		if _, err := p.repo.UpsertPallet(ctx, pallet); err != nil {
			return fmt.Errorf("failed to import pallet %s: %w", originalID, err)
		}

		processedCount++
	}

	log.Printf("Successfully processed %d pallet records from %s (skipped %d)", processedCount, filePath, skippedCount)

	return nil
}

func (p *LedgerProcessor) processItems(ctx context.Context, reader *csv.Reader, colMap map[string]int, filePath string) error {
	processedCount := 0
	skippedCount := 0

	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return fmt.Errorf("error reading record: %w", err)
		}

		originalID := getValue(record, colMap, "id")
		if originalID == "" {
			log.Printf("Skipping item record without id in file %s", filePath)
			skippedCount++
			continue
		}

		name := getValue(record, colMap, "name")
		if name == "" {
			name = "Item " + originalID
		}

		status, ok := domain.ParseItemStatus(getValue(record, colMap, "status"))
		if !ok {
			log.Printf("Unknown status %q for item %s, using %q", getValue(record, colMap, "status"), originalID, status)
		}

		// Resolve the pallet reference. Items sourced individually have no
		// pallet; dangling references are imported without the link.
		var palletID *int64
		if ref := getValue(record, colMap, "pallet_id"); ref != "" {
			id, err := p.repo.ResolvePalletID(ctx, ref)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					log.Printf("Item %s references unknown pallet %s, importing without link", originalID, ref)
				} else {
					return err
				}
			} else {
				palletID = &id
			}
		}

		item := &domain.Item{
			OriginalID:    originalID,
			PalletID:      palletID,
			Name:          name,
			Status:        status,
			RetailPrice:   getFloat(record, colMap, "retail_price"),
			ListingPrice:  getFloat(record, colMap, "listing_price"),
			SalePrice:     getFloat(record, colMap, "sale_price"),
			PurchaseCost:  getFloat(record, colMap, "purchase_cost"),
			AllocatedCost: getFloat(record, colMap, "allocated_cost"),
			Platform:      getOptional(record, colMap, "platform"),
			PlatformFee:   getFloat(record, colMap, "platform_fee"),
			ShippingCost:  getFloat(record, colMap, "shipping_cost"),
			ListingDate:   getTime(record, colMap, "listing_date"),
			SaleDate:      getTime(record, colMap, "sale_date"),
		}

		if _, err := p.repo.UpsertItem(ctx, item); err != nil {
			return fmt.Errorf("failed to import item %s: %w", originalID, err)
		}

		processedCount++
	}

	log.Printf("Successfully processed %d item records from %s (skipped %d)", processedCount, filePath, skippedCount)

	return nil
}

func (p *LedgerProcessor) processExpenses(ctx context.Context, reader *csv.Reader, colMap map[string]int, filePath string) error {
	processedCount := 0
	skippedCount := 0

	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return fmt.Errorf("error reading record: %w", err)
		}

		originalID := getValue(record, colMap, "id")
		if originalID == "" {
			log.Printf("Skipping expense record without id in file %s", filePath)
			skippedCount++
			continue
		}

		category, ok := domain.ParseExpenseCategory(getValue(record, colMap, "category"))
		if !ok {
			log.Printf("Unknown expense category %q for expense %s, using %q", getValue(record, colMap, "category"), originalID, category)
		}

		expense := &domain.Expense{
			OriginalID:  originalID,
			Description: getValue(record, colMap, "description"),
			Amount:      getMoney(record, colMap, "amount"),
			Category:    category,
			ExpenseDate: getTime(record, colMap, "expense_date"),
		}

		expenseID, err := p.repo.UpsertExpense(ctx, expense)
		if err != nil {
			return fmt.Errorf("failed to import expense %s: %w", originalID, err)
		}

		palletIDs := p.resolvePalletLinks(ctx, getValue(record, colMap, "pallet_ids"), "expense "+originalID)
		if err := p.repo.ReplaceExpensePallets(ctx, expenseID, palletIDs); err != nil {
			return err
		}

		processedCount++
	}

	log.Printf("Successfully processed %d expense records from %s (skipped %d)", processedCount, filePath, skippedCount)

	return nil
}

func (p *LedgerProcessor) processMileage(ctx context.Context, reader *csv.Reader, colMap map[string]int, filePath string) error {
	processedCount := 0
	skippedCount := 0

	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return fmt.Errorf("error reading record: %w", err)
		}

		originalID := getValue(record, colMap, "id")
		if originalID == "" {
			log.Printf("Skipping mileage record without id in file %s", filePath)
			skippedCount++
			continue
		}

		rate := p.defaultMileageRate
		if parsed := getFloat(record, colMap, "mileage_rate"); parsed != nil {
			rate = *parsed
		}

		trip := &domain.MileageTrip{
			OriginalID: originalID,
			TripDate:   getTime(record, colMap, "trip_date"),
			Miles:      getMoney(record, colMap, "miles"),
			Rate:       rate,
			Purpose:    getValue(record, colMap, "purpose"),
		}

		tripID, err := p.repo.UpsertMileageTrip(ctx, trip)
		if err != nil {
			return fmt.Errorf("failed to import mileage trip %s: %w", originalID, err)
		}

		palletIDs := p.resolvePalletLinks(ctx, getValue(record, colMap, "pallet_ids"), "trip "+originalID)
		if err := p.repo.ReplaceTripPallets(ctx, tripID, palletIDs); err != nil {
			return err
		}

		processedCount++
	}

	log.Printf("Successfully processed %d mileage records from %s (skipped %d)", processedCount, filePath, skippedCount)

	return nil
}

// resolvePalletLinks maps a separator-joined list of original pallet ids to
// internal ids, dropping references to pallets that were never imported.
func (p *LedgerProcessor) resolvePalletLinks(ctx context.Context, raw, owner string) []int64 {
	if raw == "" {
		return nil
	}

	var ids []int64
	for _, ref := range strings.Split(raw, linkSeparator) {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}

		id, err := p.repo.ResolvePalletID(ctx, ref)
		if err != nil {
			log.Printf("Dropping unknown pallet reference %s on %s", ref, owner)
			continue
		}
		ids = append(ids, id)
	}

	return ids
}
