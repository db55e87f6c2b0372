package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/ContainerPlan/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Name,W,D,H\nDesk,3,2,2\nSofa,4,2,2\n", ','},
		{"semicolon", "Name;W;D;H\nDesk;3;2;2\nSofa;4;2;2\n", ';'},
		{"tab", "Name\tW\tD\tH\nDesk\t3\t2\t2\nSofa\t4\t2\t2\n", '\t'},
		{"pipe", "Name|W|D|H\nDesk|3|2|2\nSofa|4|2|2\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Name", "Width", "Depth", "Height", "Price", "Color", "ID"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 0, Width: 1, Depth: 2, Height: 3, Price: 4, Color: 5, ID: 6}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"SKU", "COST", "h", "d", "w", "Furniture"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 5, Width: 4, Depth: 3, Height: 2, Price: 1, Color: -1, ID: 0}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Desk", "3", "2", "2", "320"})
	if isHeader {
		t.Error("expected no header")
	}
	if mapping != positionalMapping {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Name,W,D,H,Price,Color,ID\nCompact desk,3,2,2,320,#c9a27c,desk\nStraight sofa,4,2,2,680,#9c6b5a,sofa\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	want := model.ItemDef{ID: "desk", Name: "Compact desk", W: 3, D: 2, H: 2, Price: 320, Color: "#c9a27c"}
	if result.Items[0] != want {
		t.Errorf("expected %+v, got %+v", want, result.Items[0])
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Bar stool,1,1,2,45\nFloor lamp,1,1,3,60,#eee\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].ID != "bar-stool" {
		t.Errorf("expected derived id bar-stool, got %s", result.Items[0].ID)
	}
	if result.Items[1].Color != "#eee" {
		t.Errorf("expected color #eee, got %s", result.Items[1].Color)
	}
}

func TestImportCSVFromReader_UnrecognizedHeaderSkipped(t *testing.T) {
	data := "Article,Breite,Tiefe,Hoehe\nRegal,2,1,3\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 || result.Items[0].Name != "Regal" {
		t.Fatalf("expected single Regal item, got %+v", result.Items)
	}
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	data := "Name,Width,Height\nDesk,3,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing depth column")
	}
	if !strings.Contains(result.Errors[0], "Depth") {
		t.Errorf("expected error to mention Depth, got %s", result.Errors[0])
	}
}

func TestImportCSVFromReader_InvalidRows(t *testing.T) {
	data := strings.Join([]string{
		"Name,W,D,H,Price",
		"Good,1,1,1,10",
		"BadWidth,abc,1,1,10",
		"Negative,-1,1,1,10",
		"BadPrice,1,1,1,cheap",
		"NoDepth,1,,1,10",
		"",
		"Free,2,1,1,",
	}, "\n")
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 valid items, got %d (%v)", len(result.Items), result.Errors)
	}
	if len(result.Errors) != 4 {
		t.Errorf("expected 4 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if result.Items[1].Price != 0 {
		t.Errorf("expected missing price to default to 0, got %f", result.Items[1].Price)
	}

	foundPriceWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "No price given") {
			foundPriceWarning = true
		}
	}
	if !foundPriceWarning {
		t.Errorf("expected missing price warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_DuplicateIDs(t *testing.T) {
	data := "Name,W,D,H,ID\nDesk A,3,2,2,desk\nDesk B,3,2,2,desk\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[1].ID != "desk-2" {
		t.Errorf("expected renamed id desk-2, got %s", result.Items[1].ID)
	}
}

func TestImportCSVFromReader_EmptyName(t *testing.T) {
	data := ",1,1,1,5\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if result.Items[0].Name != "Item 1" || result.Items[0].ID != "item-1" {
		t.Errorf("expected generated name and id, got %+v", result.Items[0])
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Compact desk":     "compact-desk",
		"  Sofa!! ":        "sofa",
		"L-shaped  couch":  "l-shaped-couch",
		"***":              "",
		"Étagère murale 2": "étagère-murale-2",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

// ─── File Import Tests ─────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	content := "Name;W;D;H;Price\nShelf;2;1;3;210\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportFile(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 || result.Items[0].Price != 210 {
		t.Fatalf("unexpected items %+v", result.Items)
	}

	foundDelimWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			foundDelimWarning = true
		}
	}
	if !foundDelimWarning {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"ID", "Name", "Width", "Depth", "Height", "Price"},
		{"bench", "Bench", 3, 1, 1, 150},
		{"table", "Dining table", 2.5, 2, 1, 400},
	})

	result := ImportFile(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[1].W != 2.5 {
		t.Errorf("expected width 2.5, got %f", result.Items[1].W)
	}
	if result.Items[0].ID != "bench" {
		t.Errorf("expected id bench, got %s", result.Items[0].ID)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Bench", 3, 1, 1, 150},
	})

	result := ImportExcel(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 || result.Items[0].ID != "bench" {
		t.Fatalf("unexpected items %+v", result.Items)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/catalog.xlsx")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

// ─── Merge Tests ───────────────────────────────────────────

func TestMergeInto(t *testing.T) {
	cat := model.DefaultCatalog()
	before := len(cat.Items)

	result := ImportResult{Items: []model.ItemDef{
		{ID: "desk", Name: "Standing desk", W: 3, D: 2, H: 3, Price: 450},
		{ID: "stool", Name: "Stool", W: 1, D: 1, H: 1, Price: 30},
	}}

	replaced := result.MergeInto(&cat)
	if replaced != 1 {
		t.Errorf("expected 1 replaced definition, got %d", replaced)
	}
	if len(cat.Items) != before+1 {
		t.Errorf("expected %d items, got %d", before+1, len(cat.Items))
	}
	desk, _ := cat.FindItem("desk")
	if desk.Price != 450 {
		t.Errorf("expected replaced desk price 450, got %f", desk.Price)
	}
	if err := cat.Validate(); err != nil {
		t.Errorf("merged catalog should stay valid: %v", err)
	}
}
