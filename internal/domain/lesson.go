package domain

import (
	"fmt"
	"strings"
	"time"
)

// BudgetStatus enumerates project budget outcomes.
type BudgetStatus string

const (
	BudgetUnder BudgetStatus = "under"
	BudgetOn    BudgetStatus = "on"
	BudgetOver  BudgetStatus = "over"
)

// TimelineStatus enumerates project timeline outcomes.
type TimelineStatus string

const (
	TimelineEarly  TimelineStatus = "early"
	TimelineOnTime TimelineStatus = "on_time"
	TimelineLate   TimelineStatus = "late"
)

// Lesson is a captured project-outcome record.
type Lesson struct {
	ID           string
	UserID       string
	ProjectName  string
	ClientName   string
	Satisfaction int // 1..5
	Budget       BudgetStatus
	Timeline     TimelineStatus
	ScopeChanged bool
	Notes        string
	CustomFields map[string]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks field-level invariants before a lesson is persisted.
func (l Lesson) Validate() error {
	if strings.TrimSpace(l.ProjectName) == "" {
		return fmt.Errorf("%w: project name is required", ErrValidation)
	}
	if l.Satisfaction < 1 || l.Satisfaction > 5 {
		return fmt.Errorf("%w: satisfaction must be between 1 and 5", ErrValidation)
	}
	switch l.Budget {
	case BudgetUnder, BudgetOn, BudgetOver:
	default:
		return fmt.Errorf("%w: unknown budget status %q", ErrValidation, l.Budget)
	}
	switch l.Timeline {
	case TimelineEarly, TimelineOnTime, TimelineLate:
	default:
		return fmt.Errorf("%w: unknown timeline status %q", ErrValidation, l.Timeline)
	}
	return nil
}

// LessonFilter narrows lesson listings. Zero values mean "no constraint".
type LessonFilter struct {
	ClientName      string
	MinSatisfaction int
	MaxSatisfaction int
	Budget          BudgetStatus
	Timeline        TimelineStatus
	ScopeChanged    *bool
	CreatedFrom     time.Time
	CreatedTo       time.Time
	Search          string
	Limit           int
	Offset          int
}

// LessonDraft holds the in-progress wizard state for a user. Each user keeps
// at most one draft; saving again overwrites the previous one.
type LessonDraft struct {
	UserID    string
	Step      int
	Payload   []byte // opaque wizard state, stored as JSON
	UpdatedAt time.Time
}

// CustomFieldDef is one entry in a user's custom field catalog.
type CustomFieldDef struct {
	ID        string
	UserID    string
	Name      string
	Kind      string // text, number, select
	Options   []string
	CreatedAt time.Time
}

// Template bundles custom field definitions for an industry.
type Template struct {
	ID        string
	UserID    string
	Name      string
	Industry  string
	Fields    []CustomFieldDef
	CreatedAt time.Time
	UpdatedAt time.Time
}
