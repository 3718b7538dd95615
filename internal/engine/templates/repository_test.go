package templates

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"labelr/internal/engine/compose"
	"labelr/internal/engine/layout"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}

	query := `
	CREATE TABLE templates (
		id TEXT PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		code TEXT NOT NULL,
		description TEXT,
		symbol_kind TEXT DEFAULT 'code128',
		compose_options TEXT,
		layout_params TEXT,
		status TEXT DEFAULT 'active',
		created_by TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err = db.Exec(query)
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	return db
}

func sampleTemplate() *Template {
	now := time.Now().Unix()
	gap := 5
	return &Template{
		ID:          "tpl1",
		Name:        "warehouse-38x100",
		Code:        "SKU-00123",
		Description: "pallet labels for zone B",
		SymbolKind:  "code128",
		Compose:     compose.Options{Position: compose.PositionBottom, FontSize: 14, Gap: &gap},
		Layout: layout.Params{
			LabelWidth: 38, LabelHeight: 100,
			PaperWidth: 210, PaperHeight: 297,
			Margins: layout.Insets{Top: 1, Bottom: 1, Left: 1, Right: 1},
			Spacing: 1,
		},
		Status:    "active",
		CreatedBy: "user1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)

	if err := repo.Create(sampleTemplate()); err != nil {
		t.Fatalf("Failed to create template: %v", err)
	}

	fetched, err := repo.GetByID("tpl1")
	if err != nil {
		t.Fatalf("Failed to get template: %v", err)
	}

	if fetched.Name != "warehouse-38x100" {
		t.Errorf("Expected name warehouse-38x100, got %s", fetched.Name)
	}
	if fetched.Layout.LabelWidth != 38 || fetched.Layout.PaperHeight != 297 {
		t.Errorf("Layout params not round-tripped: %+v", fetched.Layout)
	}
	if fetched.Compose.FontSize != 14 {
		t.Errorf("Compose options not round-tripped: %+v", fetched.Compose)
	}
	if fetched.Compose.Gap == nil || *fetched.Compose.Gap != 5 {
		t.Errorf("Gap not round-tripped: %v", fetched.Compose.Gap)
	}
}

func TestRepository_ArchiveHidesFromList(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	if err := repo.Create(sampleTemplate()); err != nil {
		t.Fatalf("Failed to create template: %v", err)
	}

	if err := repo.Delete("tpl1"); err != nil {
		t.Fatalf("Failed to archive template: %v", err)
	}

	list, err := repo.List(10, 0)
	if err != nil {
		t.Fatalf("Failed to list templates: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Archived template still listed: %d entries", len(list))
	}

	exists, err := repo.ExistsByName("warehouse-38x100")
	if err != nil {
		t.Fatalf("ExistsByName error: %v", err)
	}
	if exists {
		t.Error("Archived template still blocks its name")
	}
}

func TestService_CreateValidatesAndFillsDefaults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	svc := NewService(NewRepository(db))

	req := sampleTemplate()
	req.ID = ""
	req.SymbolKind = ""

	created, err := svc.CreateTemplate(req)
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}
	if created.ID == "" {
		t.Error("CreateTemplate did not assign an id")
	}
	if created.SymbolKind != "code128" {
		t.Errorf("SymbolKind default = %s, want code128", created.SymbolKind)
	}

	// Duplicate name rejected.
	if _, err := svc.CreateTemplate(sampleTemplate()); err == nil {
		t.Error("CreateTemplate accepted a duplicate name")
	}

	// Empty code rejected.
	bad := sampleTemplate()
	bad.Name = "other"
	bad.Code = " "
	if _, err := svc.CreateTemplate(bad); err == nil {
		t.Error("CreateTemplate accepted an empty code")
	}
}
