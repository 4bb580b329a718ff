package repo

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"learnd/internal/domain"
	"learnd/internal/infra"
	"learnd/internal/sqlinline"
)

// CustomFieldRepositoryPG implements domain.CustomFieldRepository backed by PostgreSQL.
type CustomFieldRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewCustomFieldRepository creates a new CustomFieldRepositoryPG.
func NewCustomFieldRepository(sql infra.SQLExecutor) *CustomFieldRepositoryPG {
	return &CustomFieldRepositoryPG{sql: sql}
}

func (r *CustomFieldRepositoryPG) Create(ctx context.Context, def *domain.CustomFieldDef) (*domain.CustomFieldDef, error) {
	options, err := json.Marshal(def.Options)
	if err != nil {
		return nil, err
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertCustomField, def.UserID, def.Name, def.Kind, options)
	return scanCustomField(row)
}

func (r *CustomFieldRepositoryPG) List(ctx context.Context, userID string) ([]domain.CustomFieldDef, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListCustomFields, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []domain.CustomFieldDef
	for rows.Next() {
		def, err := scanCustomField(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	return defs, rows.Err()
}

func (r *CustomFieldRepositoryPG) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteCustomField, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCustomField(row pgx.Row) (*domain.CustomFieldDef, error) {
	var d domain.CustomFieldDef
	var optionsRaw []byte
	if err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Kind, &optionsRaw, &d.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(optionsRaw) > 0 {
		if err := json.Unmarshal(optionsRaw, &d.Options); err != nil {
			return nil, err
		}
	}
	return &d, nil
}
