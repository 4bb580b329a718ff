package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"

	"learnd/internal/domain"
	"learnd/internal/infra"
	"learnd/internal/sqlinline"
)

// LessonRepositoryPG implements domain.LessonRepository backed by PostgreSQL.
type LessonRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewLessonRepository creates a new LessonRepositoryPG.
func NewLessonRepository(sql infra.SQLExecutor) *LessonRepositoryPG {
	return &LessonRepositoryPG{sql: sql}
}

func (r *LessonRepositoryPG) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	if err := lesson.Validate(); err != nil {
		return nil, err
	}
	fields, err := marshalCustomFields(lesson.CustomFields)
	if err != nil {
		return nil, err
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertLesson,
		lesson.UserID,
		lesson.ProjectName,
		lesson.ClientName,
		lesson.Satisfaction,
		string(lesson.Budget),
		string(lesson.Timeline),
		lesson.ScopeChanged,
		lesson.Notes,
		fields,
	)
	return scanLesson(row)
}

func (r *LessonRepositoryPG) GetByID(ctx context.Context, userID, id string) (*domain.Lesson, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectLessonByID, userID, id)
	return scanLesson(row)
}

func (r *LessonRepositoryPG) List(ctx context.Context, userID string, filter domain.LessonFilter) ([]domain.Lesson, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListLessons,
		userID,
		nullableLike(filter.ClientName),
		nullableInt(filter.MinSatisfaction),
		nullableInt(filter.MaxSatisfaction),
		nullableString(string(filter.Budget)),
		nullableString(string(filter.Timeline)),
		filter.ScopeChanged,
		nullableTime(filter.CreatedFrom),
		nullableTime(filter.CreatedTo),
		nullableLike(filter.Search),
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, *lesson)
	}
	return lessons, rows.Err()
}

// Update overwrites the stored record with the provided one. Last write wins;
// no version check is performed.
func (r *LessonRepositoryPG) Update(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	if err := lesson.Validate(); err != nil {
		return nil, err
	}
	fields, err := marshalCustomFields(lesson.CustomFields)
	if err != nil {
		return nil, err
	}
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateLesson,
		lesson.UserID,
		lesson.ID,
		lesson.ProjectName,
		lesson.ClientName,
		lesson.Satisfaction,
		string(lesson.Budget),
		string(lesson.Timeline),
		lesson.ScopeChanged,
		lesson.Notes,
		fields,
	)
	return scanLesson(row)
}

func (r *LessonRepositoryPG) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteLesson, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanLesson(row pgx.Row) (*domain.Lesson, error) {
	var l domain.Lesson
	var fieldsRaw []byte
	if err := row.Scan(
		&l.ID, &l.UserID, &l.ProjectName, &l.ClientName, &l.Satisfaction,
		&l.Budget, &l.Timeline, &l.ScopeChanged, &l.Notes, &fieldsRaw,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(fieldsRaw) > 0 {
		if err := json.Unmarshal(fieldsRaw, &l.CustomFields); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

func marshalCustomFields(fields map[string]string) ([]byte, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	return json.Marshal(fields)
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableLike(s string) *string {
	if s == "" {
		return nil
	}
	pattern := "%" + s + "%"
	return &pattern
}

func nullableInt(i int) *int {
	if i == 0 {
		return nil
	}
	return &i
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
