package history

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRecorder_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO render_history").
		WithArgs(
			sqlmock.AnyArg(), "user1", "SKU-00123", "code128", "pdf",
			5, 2, 38.0, 100.0, 210.0, 297.0, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := NewRecorder(db)
	entry := &Entry{
		UserID:      "user1",
		Code:        "SKU-00123",
		SymbolKind:  "code128",
		Output:      "pdf",
		Columns:     5,
		Rows:        2,
		LabelWidth:  38,
		LabelHeight: 100,
		PaperWidth:  210,
		PaperHeight: 297,
	}

	if err := rec.Record(entry); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if entry.ID == "" || entry.CreatedAt == 0 {
		t.Error("Record did not fill id and timestamp")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecorder_Prune(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM render_history").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 7))

	rec := NewRecorder(db)
	n, err := rec.Prune(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if n != 7 {
		t.Errorf("Prune() = %d rows, want 7", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecorder_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM render_history").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT output, COUNT\\(\\*\\) FROM render_history").
		WillReturnRows(sqlmock.NewRows([]string{"output", "count"}).
			AddRow("pdf", 8).AddRow("preview", 4))
	mock.ExpectQuery("SELECT symbol_kind, COUNT\\(\\*\\) FROM render_history").
		WillReturnRows(sqlmock.NewRows([]string{"symbol_kind", "count"}).
			AddRow("code128", 9).AddRow("qr", 3))

	rec := NewRecorder(db)
	stats, err := rec.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}

	if stats.Total != 12 {
		t.Errorf("Total = %d, want 12", stats.Total)
	}
	if stats.ByOutput["pdf"] != 8 || stats.BySymbol["qr"] != 3 {
		t.Errorf("grouped stats wrong: %+v", stats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
