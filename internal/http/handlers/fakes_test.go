package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"learnd/internal/domain"
	"learnd/internal/middleware"
)

// authedRequest builds a request carrying the given user in its context, the
// way AuthJWT would after verifying a token.
func authedRequest(method, target, userID string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

// withURLParam injects a chi route parameter the way the router would.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

type fakeUsers struct {
	users map[string]*domain.User
}

func (f *fakeUsers) UpsertByGoogleSub(_ context.Context, user *domain.User) (*domain.User, error) {
	if f.users == nil {
		f.users = map[string]*domain.User{}
	}
	stored := *user
	if stored.ID == "" {
		stored.ID = "user-" + user.GoogleSub
	}
	if stored.Tier == "" {
		stored.Tier = domain.TierFree
	}
	f.users[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (f *fakeUsers) SetTier(_ context.Context, userID string, tier domain.SubscriptionTier) error {
	user, ok := f.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	user.Tier = tier
	return nil
}

func usersWith(id string, tier domain.SubscriptionTier) *fakeUsers {
	return &fakeUsers{users: map[string]*domain.User{
		id: {ID: id, Email: id + "@example.com", Name: "Test User", Tier: tier},
	}}
}

type recordedEvent struct {
	userID     string
	kind       domain.UsageEventKind
	properties map[string]any
}

type fakeUsage struct {
	counters    domain.UsageCounters
	countersErr error
	recordErr   error
	events      []recordedEvent
}

func (f *fakeUsage) RecordEvent(_ context.Context, userID string, kind domain.UsageEventKind, properties map[string]any) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.events = append(f.events, recordedEvent{userID: userID, kind: kind, properties: properties})
	return nil
}

func (f *fakeUsage) CurrentUsage(context.Context, string) (domain.UsageCounters, error) {
	if f.countersErr != nil {
		return domain.UsageCounters{}, f.countersErr
	}
	return f.counters, nil
}

type fakeLessons struct {
	lessons map[string]*domain.Lesson
	nextID  int
	listErr error
}

func (f *fakeLessons) Create(_ context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	if err := lesson.Validate(); err != nil {
		return nil, err
	}
	if f.lessons == nil {
		f.lessons = map[string]*domain.Lesson{}
	}
	f.nextID++
	stored := *lesson
	stored.ID = fmt.Sprintf("lesson-%d", f.nextID)
	f.lessons[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeLessons) GetByID(_ context.Context, userID, id string) (*domain.Lesson, error) {
	lesson, ok := f.lessons[id]
	if !ok || lesson.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return lesson, nil
}

func (f *fakeLessons) List(_ context.Context, userID string, _ domain.LessonFilter) ([]domain.Lesson, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Lesson
	for _, lesson := range f.lessons {
		if lesson.UserID == userID {
			out = append(out, *lesson)
		}
	}
	return out, nil
}

func (f *fakeLessons) Update(_ context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	if err := lesson.Validate(); err != nil {
		return nil, err
	}
	existing, ok := f.lessons[lesson.ID]
	if !ok || existing.UserID != lesson.UserID {
		return nil, domain.ErrNotFound
	}
	stored := *lesson
	f.lessons[lesson.ID] = &stored
	return &stored, nil
}

func (f *fakeLessons) Delete(_ context.Context, userID, id string) error {
	lesson, ok := f.lessons[id]
	if !ok || lesson.UserID != userID {
		return domain.ErrNotFound
	}
	delete(f.lessons, id)
	return nil
}

type fakeDrafts struct {
	drafts map[string]*domain.LessonDraft
}

func (f *fakeDrafts) Upsert(_ context.Context, draft *domain.LessonDraft) error {
	if f.drafts == nil {
		f.drafts = map[string]*domain.LessonDraft{}
	}
	draft.UpdatedAt = time.Now().UTC()
	stored := *draft
	f.drafts[draft.UserID] = &stored
	return nil
}

func (f *fakeDrafts) Get(_ context.Context, userID string) (*domain.LessonDraft, error) {
	draft, ok := f.drafts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return draft, nil
}

func (f *fakeDrafts) Delete(_ context.Context, userID string) error {
	if _, ok := f.drafts[userID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.drafts, userID)
	return nil
}
