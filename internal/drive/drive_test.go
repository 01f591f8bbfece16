package drive

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSheetFileName(t *testing.T) {
	assert.Equal(t, "pallets.csv", sheetFileName("Pallets"))
	assert.Equal(t, "mileage_trips.csv", sheetFileName(" Mileage Trips "))
	assert.Equal(t, "items.csv", sheetFileName("items"))
}

func TestFileVersionPrefersChecksum(t *testing.T) {
	f := &File{Checksum: "abc123", ModifiedTime: "2024-03-01T10:00:00Z"}
	assert.Equal(t, "abc123", fileVersion(f))

	f = &File{ModifiedTime: "2024-03-01T10:00:00Z"}
	assert.Equal(t, "2024-03-01T10:00:00Z", fileVersion(f))
}

func TestLoadCredentialsFromFile(t *testing.T) {
	t.Setenv("GOOGLE_DRIVE_CREDENTIALS_JSON", "")

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600))

	creds, err := LoadCredentials(path)

	require.NoError(t, err)
	assert.Equal(t, `{"type":"service_account"}`, creds)
}

func TestLoadCredentialsMissingFile(t *testing.T) {
	t.Setenv("GOOGLE_DRIVE_CREDENTIALS_JSON", "")

	_, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read drive credentials")
}

func TestLoadCredentialsEnvOverridesFile(t *testing.T) {
	t.Setenv("GOOGLE_DRIVE_CREDENTIALS_JSON", `{"inline":true}`)

	creds, err := LoadCredentials("ignored.json")

	require.NoError(t, err)
	assert.Equal(t, `{"inline":true}`, creds)
}

func TestConvertXLSXToCSVSplitsSheets(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "backup.xlsx")

	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetName("Sheet1", "Pallets"))
	require.NoError(t, wb.SetCellValue("Pallets", "A1", "id"))
	require.NoError(t, wb.SetCellValue("Pallets", "B1", "name"))
	require.NoError(t, wb.SetCellValue("Pallets", "A2", "p1"))
	require.NoError(t, wb.SetCellValue("Pallets", "B2", "Monster Load"))
	_, err := wb.NewSheet("Mileage Trips")
	require.NoError(t, err)
	require.NoError(t, wb.SetCellValue("Mileage Trips", "A1", "date"))
	require.NoError(t, wb.SetCellValue("Mileage Trips", "A2", "2024-03-01"))
	require.NoError(t, wb.SaveAs(xlsxPath))
	require.NoError(t, wb.Close())

	destDir := filepath.Join(dir, "csv")
	require.NoError(t, os.MkdirAll(destDir, 0o755))

	paths, err := convertXLSXToCSV(xlsxPath, destDir)

	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(destDir, "pallets.csv"),
		filepath.Join(destDir, "mileage_trips.csv"),
	}, paths)

	pallets, err := os.Open(paths[0])
	require.NoError(t, err)
	defer pallets.Close()

	rows, err := csv.NewReader(pallets).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"id", "name"}, {"p1", "Monster Load"}}, rows)
}

func TestConvertXLSXToCSVMissingFile(t *testing.T) {
	_, err := convertXLSXToCSV(filepath.Join(t.TempDir(), "nope.xlsx"), t.TempDir())
	require.Error(t, err)
}

func TestDownloadFilesRequiresDir(t *testing.T) {
	d := NewDownloader(nil)

	_, err := d.DownloadFiles(context.Background(), nil, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "download dir is required")
}

func TestDownloadFilesSkipsUnsupportedTypes(t *testing.T) {
	d := NewDownloader(nil)
	files := []*File{
		{ID: "1", Name: "notes.txt"},
		{ID: "2", Name: "report.pdf"},
	}

	paths, err := d.DownloadFiles(context.Background(), files, t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestDownloadFileHandlerRequiresFileID(t *testing.T) {
	router := mux.NewRouter()
	NewHandler(nil, nil).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/drive/files/download", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "fileId parameter is required")
}

func TestSyncRouteRejectsGet(t *testing.T) {
	router := mux.NewRouter()
	NewHandler(nil, nil).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/drive/sync", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
