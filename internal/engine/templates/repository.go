package templates

import (
	"database/sql"
	"encoding/json"
	"time"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(t *Template) error {
	query := `
		INSERT INTO templates (
			id, name, code, description, symbol_kind,
			compose_options, layout_params, status, created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	composeJSON, _ := json.Marshal(t.Compose)
	layoutJSON, _ := json.Marshal(t.Layout)

	_, err := r.db.Exec(query,
		t.ID,
		t.Name,
		t.Code,
		t.Description,
		t.SymbolKind,
		string(composeJSON),
		string(layoutJSON),
		t.Status,
		t.CreatedBy,
		t.CreatedAt,
		t.UpdatedAt,
	)

	return err
}

func (r *Repository) GetByID(id string) (*Template, error) {
	query := `
		SELECT id, name, code, description, symbol_kind,
		       compose_options, layout_params, status, created_by, created_at, updated_at
		FROM templates WHERE id = ?
	`
	row := r.db.QueryRow(query, id)
	return scanTemplate(row)
}

func (r *Repository) ExistsByName(name string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM templates WHERE name = ? AND status != 'archived')"
	err := r.db.QueryRow(query, name).Scan(&exists)
	return exists, err
}

func (r *Repository) Update(t *Template) error {
	query := `
		UPDATE templates SET
			name = ?, code = ?, description = ?, symbol_kind = ?,
			compose_options = ?, layout_params = ?, status = ?, updated_at = ?
		WHERE id = ?
	`

	composeJSON, _ := json.Marshal(t.Compose)
	layoutJSON, _ := json.Marshal(t.Layout)

	_, err := r.db.Exec(query,
		t.Name,
		t.Code,
		t.Description,
		t.SymbolKind,
		string(composeJSON),
		string(layoutJSON),
		t.Status,
		time.Now().Unix(),
		t.ID,
	)
	return err
}

func (r *Repository) Delete(id string) error {
	query := "UPDATE templates SET status = 'archived', updated_at = ? WHERE id = ?"
	_, err := r.db.Exec(query, time.Now().Unix(), id)
	return err
}

func (r *Repository) List(limit, offset int) ([]*Template, error) {
	query := `
		SELECT id, name, code, description, symbol_kind,
		       compose_options, layout_params, status, created_by, created_at, updated_at
		FROM templates
		WHERE status != 'archived'
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func scanTemplate(s interface {
	Scan(dest ...interface{}) error
}) (*Template, error) {
	var t Template
	var composeRaw, layoutRaw []byte

	err := s.Scan(
		&t.ID,
		&t.Name,
		&t.Code,
		&t.Description,
		&t.SymbolKind,
		&composeRaw,
		&layoutRaw,
		&t.Status,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if len(composeRaw) > 0 {
		json.Unmarshal(composeRaw, &t.Compose)
	}
	if len(layoutRaw) > 0 {
		json.Unmarshal(layoutRaw, &t.Layout)
	}

	return &t, nil
}
