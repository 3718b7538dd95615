package history

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Entry records one page render: who asked, what was encoded, and what grid
// the layout produced.
type Entry struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id,omitempty"`
	Code        string  `json:"code"`
	SymbolKind  string  `json:"symbol_kind"`
	Output      string  `json:"output"` // preview, pdf
	Columns     int     `json:"columns"`
	Rows        int     `json:"rows"`
	LabelWidth  float64 `json:"label_width"`
	LabelHeight float64 `json:"label_height"`
	PaperWidth  float64 `json:"paper_width"`
	PaperHeight float64 `json:"paper_height"`
	CreatedAt   int64   `json:"created_at"`
}

type Stats struct {
	Total    int            `json:"total"`
	ByOutput map[string]int `json:"by_output"`
	BySymbol map[string]int `json:"by_symbol"`
}

type Recorder struct {
	db *sql.DB
}

func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// Record inserts one entry. Callers on the request path run it in a
// goroutine via RecordAsync; failures are logged, never surfaced to the
// client.
func (r *Recorder) Record(e *Entry) error {
	if e.ID == "" {
		e.ID = "render_" + uuid.New().String()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO render_history (
			id, user_id, code, symbol_kind, output,
			columns, rows, label_width, label_height, paper_width, paper_height, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		e.ID, e.UserID, e.Code, e.SymbolKind, e.Output,
		e.Columns, e.Rows, e.LabelWidth, e.LabelHeight, e.PaperWidth, e.PaperHeight, e.CreatedAt,
	)
	return err
}

func (r *Recorder) RecordAsync(e *Entry) {
	go func() {
		if err := r.Record(e); err != nil {
			log.Error().Err(err).Str("code", e.Code).Msg("failed to record render history")
		}
	}()
}

func (r *Recorder) List(limit, offset int) ([]*Entry, error) {
	query := `
		SELECT id, user_id, code, symbol_kind, output,
		       columns, rows, label_width, label_height, paper_width, paper_height, created_at
		FROM render_history
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Code, &e.SymbolKind, &e.Output,
			&e.Columns, &e.Rows, &e.LabelWidth, &e.LabelHeight, &e.PaperWidth, &e.PaperHeight, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *Recorder) Stats() (*Stats, error) {
	stats := &Stats{
		ByOutput: make(map[string]int),
		BySymbol: make(map[string]int),
	}

	if err := r.db.QueryRow("SELECT COUNT(*) FROM render_history").Scan(&stats.Total); err != nil {
		return nil, err
	}

	rows, err := r.db.Query("SELECT output, COUNT(*) FROM render_history GROUP BY output")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var output string
		var count int
		if err := rows.Scan(&output, &count); err != nil {
			return nil, err
		}
		stats.ByOutput[output] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	symRows, err := r.db.Query("SELECT symbol_kind, COUNT(*) FROM render_history GROUP BY symbol_kind")
	if err != nil {
		return nil, err
	}
	defer symRows.Close()
	for symRows.Next() {
		var kind string
		var count int
		if err := symRows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		stats.BySymbol[kind] = count
	}
	return stats, symRows.Err()
}

// Prune deletes entries older than the retention window and reports how many
// rows went away.
func (r *Recorder) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()
	res, err := r.db.Exec("DELETE FROM render_history WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
