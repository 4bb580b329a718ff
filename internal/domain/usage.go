package domain

// UsageCounters is a point-in-time snapshot of a user's tracked consumption.
// Lessons and exports reset with the calendar month in the store; custom
// fields and templates count live rows. All counters are non-negative.
type UsageCounters struct {
	LessonsThisPeriod int
	ExportsThisPeriod int
	CustomFields      int
	Templates         int
}

// UsageEventKind labels a tracked user action.
type UsageEventKind string

const (
	UsageLessonCreated   UsageEventKind = "LESSON_CREATED"
	UsageExportRun       UsageEventKind = "EXPORT_RUN"
	UsageNormalizeCalled UsageEventKind = "NORMALIZE_CALLED"
	UsageDraftSaved      UsageEventKind = "DRAFT_SAVED"
)
