package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	UpsertByGoogleSub(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	SetTier(ctx context.Context, userID string, tier SubscriptionTier) error
}

// LessonRepository defines persistence for lesson records.
type LessonRepository interface {
	Create(ctx context.Context, lesson *Lesson) (*Lesson, error)
	GetByID(ctx context.Context, userID, id string) (*Lesson, error)
	List(ctx context.Context, userID string, filter LessonFilter) ([]Lesson, error)
	Update(ctx context.Context, lesson *Lesson) (*Lesson, error)
	Delete(ctx context.Context, userID, id string) error
}

// DraftRepository stores the single in-progress wizard draft per user.
type DraftRepository interface {
	Upsert(ctx context.Context, draft *LessonDraft) error
	Get(ctx context.Context, userID string) (*LessonDraft, error)
	Delete(ctx context.Context, userID string) error
}

// UsageRepository accumulates and reads usage counters. RecordEvent is
// at-least-once; duplicate increments on retry are an accepted tradeoff.
type UsageRepository interface {
	RecordEvent(ctx context.Context, userID string, kind UsageEventKind, properties map[string]any) error
	CurrentUsage(ctx context.Context, userID string) (UsageCounters, error)
}

// TemplateRepository defines persistence for industry templates.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *Template) (*Template, error)
	List(ctx context.Context, userID string) ([]Template, error)
	Delete(ctx context.Context, userID, id string) error
}

// CustomFieldRepository defines persistence for the user's field catalog.
type CustomFieldRepository interface {
	Create(ctx context.Context, def *CustomFieldDef) (*CustomFieldDef, error)
	List(ctx context.Context, userID string) ([]CustomFieldDef, error)
	Delete(ctx context.Context, userID, id string) error
}
