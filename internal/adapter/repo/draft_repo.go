package repo

import (
	"context"

	"learnd/internal/domain"
	"learnd/internal/infra"
	"learnd/internal/sqlinline"
)

// DraftRepositoryPG implements domain.DraftRepository backed by PostgreSQL.
type DraftRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDraftRepository creates a new DraftRepositoryPG.
func NewDraftRepository(sql infra.SQLExecutor) *DraftRepositoryPG {
	return &DraftRepositoryPG{sql: sql}
}

// Upsert stores the draft and stamps draft.UpdatedAt with the persisted
// timestamp so callers can echo stored state.
func (r *DraftRepositoryPG) Upsert(ctx context.Context, draft *domain.LessonDraft) error {
	payload := draft.Payload
	if len(payload) == 0 {
		payload = []byte(`{}`)
	}
	row := r.sql.QueryRow(ctx, sqlinline.QUpsertDraft, draft.UserID, draft.Step, payload)
	return row.Scan(&draft.UpdatedAt)
}

func (r *DraftRepositoryPG) Get(ctx context.Context, userID string) (*domain.LessonDraft, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectDraft, userID)
	var d domain.LessonDraft
	if err := row.Scan(&d.UserID, &d.Step, &d.Payload, &d.UpdatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DraftRepositoryPG) Delete(ctx context.Context, userID string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QDeleteDraft, userID)
	return err
}
