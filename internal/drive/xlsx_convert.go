package drive

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// convertXLSXToCSV converts every sheet of an XLSX workbook to its own CSV
// file in destDir and returns the created paths. Tracker backups hold one
// sheet per collection (Pallets, Items, Expenses, Mileage); the sheet name
// becomes the filename so kind detection can order the import.
func convertXLSXToCSV(xlsxPath, destDir string) ([]string, error) {
	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", xlsxPath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file %s has no sheets", xlsxPath)
	}

	var csvPaths []string
	for _, sheet := range sheets {
		csvPath := filepath.Join(destDir, sheetFileName(sheet))
		if err := convertSheetToCSV(f, sheet, xlsxPath, csvPath); err != nil {
			return nil, err
		}
		csvPaths = append(csvPaths, csvPath)
	}

	return csvPaths, nil
}

func convertSheetToCSV(f *excelize.File, sheet, xlsxPath, csvPath string) error {
	rows, err := f.Rows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	out, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create csv file %s: %w", csvPath, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()

	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("failed to read row from %s: %w", xlsxPath, err)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row to %s: %w", csvPath, err)
		}
	}

	if err := rows.Error(); err != nil {
		return fmt.Errorf("error iterating rows in %s: %w", xlsxPath, err)
	}

	return nil
}

func sheetFileName(sheet string) string {
	name := strings.ToLower(strings.TrimSpace(sheet))
	name = strings.ReplaceAll(name, " ", "_")
	return name + ".csv"
}
