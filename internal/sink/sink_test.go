package sink

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rjmelnik/deedtrace/internal/model"
)

func sampleRecords() []model.PropertyRecord {
	return []model.PropertyRecord{
		{
			CurrentOwners: "Jane Doe",
			PurchasePrice: "$300,000",
			PurchaseDate:  "Jan. 5, 2010",
			PurchaseMonth: "January",
			PurchaseYear:  2010,
			BuyerName:     "Jane Doe",
			SellerName:    "Bob Roe",
			Street:        "123 Main St",
			City:          "Lafayette",
			State:         "California",
			Zip:           "94549",
			Address:       "123 Main St, Lafayette, California, 94549",
			URL:           "https://x.test/p/1",
		},
		{
			CurrentOwners: "Acme Holdings LLC",
			URL:           "https://x.test/p/2",
		},
	}
}

func TestForFormat(t *testing.T) {
	if _, err := ForFormat("csv", "out.csv"); err != nil {
		t.Errorf("csv: %v", err)
	}
	if _, err := ForFormat("XLSX", "out.xlsx"); err != nil {
		t.Errorf("xlsx (case-insensitive): %v", err)
	}
	if _, err := ForFormat("", "out.csv"); err != nil {
		t.Errorf("empty format must default to csv: %v", err)
	}
	if _, err := ForFormat("parquet", "out"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestCSVSink_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	got, err := (&CSVSink{Path: path}).Write(sampleRecords())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if got != path {
		t.Errorf("returned path %q, want %q", got, path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 records, got %d rows", len(rows))
	}
	if rows[0][0] != "Current Owners" || rows[0][1] != "Original Purchase Price" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "$300,000" || rows[1][4] != "2010" {
		t.Errorf("unexpected first record: %v", rows[1])
	}
	// Unattributed record keeps its URL and leaves purchase fields blank
	if rows[2][1] != "" || rows[2][4] != "" || rows[2][12] != "https://x.test/p/2" {
		t.Errorf("unexpected second record: %v", rows[2])
	}
}

func TestXLSXSink_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if _, err := (&XLSXSink{Path: path}).Write(sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	if owner, _ := f.GetCellValue(sheetName, "A2"); owner != "Jane Doe" {
		t.Errorf("A2 = %q, want Jane Doe", owner)
	}
	if price, _ := f.GetCellValue(sheetName, "B2"); price != "$300,000" {
		t.Errorf("B2 = %q, want $300,000", price)
	}
	if year, _ := f.GetCellValue(sheetName, "E2"); year != "2010" {
		t.Errorf("E2 = %q, want 2010", year)
	}
	if url, _ := f.GetCellValue(sheetName, "M3"); url != "https://x.test/p/2" {
		t.Errorf("M3 = %q, want the second record's URL", url)
	}
}
