package repo

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"learnd/internal/domain"
	"learnd/internal/infra"
	"learnd/internal/sqlinline"
)

// TemplateRepositoryPG implements domain.TemplateRepository backed by PostgreSQL.
type TemplateRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewTemplateRepository creates a new TemplateRepositoryPG.
func NewTemplateRepository(sql infra.SQLExecutor) *TemplateRepositoryPG {
	return &TemplateRepositoryPG{sql: sql}
}

func (r *TemplateRepositoryPG) Create(ctx context.Context, tpl *domain.Template) (*domain.Template, error) {
	fields, err := json.Marshal(tpl.Fields)
	if err != nil {
		return nil, err
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertTemplate, tpl.UserID, tpl.Name, tpl.Industry, fields)
	return scanTemplate(row)
}

func (r *TemplateRepositoryPG) List(ctx context.Context, userID string) ([]domain.Template, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListTemplates, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	return templates, rows.Err()
}

func (r *TemplateRepositoryPG) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteTemplate, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTemplate(row pgx.Row) (*domain.Template, error) {
	var t domain.Template
	var fieldsRaw []byte
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Industry, &fieldsRaw, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(fieldsRaw) > 0 {
		if err := json.Unmarshal(fieldsRaw, &t.Fields); err != nil {
			return nil, err
		}
	}
	return &t, nil
}
