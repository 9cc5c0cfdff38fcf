package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/core/internal/domain/entities"
	"github.com/studysync/core/internal/infrastructure/config"
	"github.com/studysync/core/internal/infrastructure/logger"
	"github.com/studysync/core/internal/ports"
)

// fakeCalendarProvider records created calendars and events, failing any
// class or event title listed in failCalendars / failEvents.
type fakeCalendarProvider struct {
	mu            sync.Mutex
	failCalendars map[string]bool
	failEvents    map[string]bool
	calendars     []string
	events        []ports.CalendarEventRequest
}

func (f *fakeCalendarProvider) CreateCalendar(ctx context.Context, accessToken, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCalendars[name] {
		return "", fmt.Errorf("calendar quota exceeded")
	}
	f.calendars = append(f.calendars, name)
	return "cal-" + name, nil
}

func (f *fakeCalendarProvider) CreateEvent(ctx context.Context, accessToken, calendarID string, event ports.CalendarEventRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failEvents[event.Title] {
		return "", fmt.Errorf("event rejected")
	}
	f.events = append(f.events, event)
	return "evt-" + event.Title, nil
}

type fakeExchanger struct {
	token string
	err   error
}

func (f *fakeExchanger) Exchange(ctx context.Context, refreshToken string) (string, error) {
	return f.token, f.err
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entities.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, entities.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, entities.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return nil, entities.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entities.User) error { return nil }

func (f *fakeUserRepo) SetFeedURL(ctx context.Context, id uuid.UUID, feedURL string) error {
	return nil
}

func (f *fakeUserRepo) SetGoogleRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error {
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

type fakeClassRepo struct {
	mu       sync.Mutex
	trees    map[uuid.UUID][]entities.Class
	replaces int
	err      error
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{trees: make(map[uuid.UUID][]entities.Class)}
}

func (f *fakeClassRepo) Replace(ctx context.Context, userID uuid.UUID, classes []entities.Class) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.trees[userID] = classes
	f.replaces++
	return nil
}

func (f *fakeClassRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]entities.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tree, ok := f.trees[userID]; ok {
		return tree, nil
	}
	return nil, entities.ErrClassTreeNotFound
}

func (f *fakeClassRepo) SetAssignmentCompleted(ctx context.Context, userID uuid.UUID, classID, assignmentID string, completed bool) error {
	return nil
}

func strPtr(s string) *string { return &s }

func testClasses() []entities.Class {
	due := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	return []entities.Class{
		{
			ID: "biology", Name: "Biology",
			Assignments: []entities.Assignment{
				{ID: "a1", Name: "Lab report", DueDate: due},
				{ID: "a2", Name: "Reading quiz", DueDate: due.Add(24 * time.Hour)},
			},
		},
		{
			ID: "math", Name: "Math",
			Assignments: []entities.Assignment{
				{ID: "a3", Name: "Problem set", DueDate: due},
			},
		},
		{
			ID: "history", Name: "History",
			Assignments: []entities.Assignment{
				{ID: "a4", Name: "Essay draft", DueDate: due},
			},
		},
	}
}

func newTestSyncService(provider ports.CalendarProvider, exchanger ports.TokenExchanger, userRepo ports.UserRepository, classRepo ports.ClassRepository, workers int) *SyncService {
	return NewSyncService(provider, exchanger, userRepo, classRepo, config.SyncConfig{Enabled: true, Workers: workers}, logger.NewNop(), nil)
}

func TestSyncClassesCreatesCalendarAndEventPerItem(t *testing.T) {
	provider := &fakeCalendarProvider{}
	svc := newTestSyncService(provider, &fakeExchanger{}, &fakeUserRepo{}, newFakeClassRepo(), 1)

	classes := testClasses()
	results := svc.SyncClasses(context.Background(), "token", classes)

	// one result per calendar plus one per event
	require.Len(t, results, 7)
	for _, r := range results {
		assert.Equal(t, entities.SyncStatusCreated, r.Status)
		assert.Empty(t, r.Error)
	}

	assert.Len(t, provider.calendars, 3)
	assert.Len(t, provider.events, 4)
}

func TestSyncClassesEventWindowEndsAtDueInstant(t *testing.T) {
	provider := &fakeCalendarProvider{}
	svc := newTestSyncService(provider, &fakeExchanger{}, &fakeUserRepo{}, newFakeClassRepo(), 1)

	due := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	classes := []entities.Class{{
		Name:        "Biology",
		Assignments: []entities.Assignment{{ID: "a1", Name: "Lab", DueDate: due}},
	}}

	svc.SyncClasses(context.Background(), "token", classes)

	require.Len(t, provider.events, 1)
	assert.Equal(t, due, provider.events[0].End)
	assert.Equal(t, due.Add(-time.Hour), provider.events[0].Start)
}

func TestSyncClassesFailedCalendarSkipsItsEventsOnly(t *testing.T) {
	provider := &fakeCalendarProvider{failCalendars: map[string]bool{"Math": true}}
	svc := newTestSyncService(provider, &fakeExchanger{}, &fakeUserRepo{}, newFakeClassRepo(), 1)

	results := svc.SyncClasses(context.Background(), "token", testClasses())

	// Biology: calendar + 2 events, Math: failed calendar only,
	// History: calendar + 1 event
	require.Len(t, results, 6)

	var mathResults []entities.SyncResult
	created, failed := 0, 0
	for _, r := range results {
		if r.ClassName == "Math" {
			mathResults = append(mathResults, r)
		}
		switch r.Status {
		case entities.SyncStatusCreated:
			created++
		case entities.SyncStatusFailed:
			failed++
		}
	}

	require.Len(t, mathResults, 1)
	assert.Equal(t, entities.SyncStatusFailed, mathResults[0].Status)
	assert.NotEmpty(t, mathResults[0].Error)
	assert.Equal(t, 5, created)
	assert.Equal(t, 1, failed)

	// other classes were unaffected
	assert.Len(t, provider.calendars, 2)
	assert.Len(t, provider.events, 3)
}

func TestSyncClassesFailedEventDoesNotAbortSiblings(t *testing.T) {
	provider := &fakeCalendarProvider{failEvents: map[string]bool{"Lab report": true}}
	svc := newTestSyncService(provider, &fakeExchanger{}, &fakeUserRepo{}, newFakeClassRepo(), 1)

	results := svc.SyncClasses(context.Background(), "token", testClasses())

	require.Len(t, results, 7)

	var failedNames []string
	for _, r := range results {
		if r.Status == entities.SyncStatusFailed {
			failedNames = append(failedNames, r.AssignmentName)
		}
	}
	assert.Equal(t, []string{"Lab report"}, failedNames)

	// the failing event's sibling in the same class still went through
	assert.Len(t, provider.events, 3)
}

func TestSyncClassesWithMultipleWorkersReturnsAllResults(t *testing.T) {
	provider := &fakeCalendarProvider{}
	svc := newTestSyncService(provider, &fakeExchanger{}, &fakeUserRepo{}, newFakeClassRepo(), 4)

	results := svc.SyncClasses(context.Background(), "token", testClasses())

	assert.Len(t, results, 7)
	assert.Len(t, provider.calendars, 3)
	assert.Len(t, provider.events, 4)
}

func TestSyncClassesEmptyTree(t *testing.T) {
	svc := newTestSyncService(&fakeCalendarProvider{}, &fakeExchanger{}, &fakeUserRepo{}, newFakeClassRepo(), 1)

	results := svc.SyncClasses(context.Background(), "token", nil)

	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestResyncRequiresLinkedGoogleAccount(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*entities.User{
		userID: {ID: userID},
	}}
	svc := newTestSyncService(&fakeCalendarProvider{}, &fakeExchanger{token: "at"}, users, newFakeClassRepo(), 1)

	_, err := svc.Resync(context.Background(), userID)
	assert.ErrorIs(t, err, entities.ErrNoGoogleAccount)
}

func TestResyncSkipsWhenExchangeFails(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*entities.User{
		userID: {ID: userID, GoogleRefreshToken: strPtr("rt")},
	}}
	classRepo := newFakeClassRepo()
	classRepo.trees[userID] = testClasses()

	svc := newTestSyncService(&fakeCalendarProvider{}, &fakeExchanger{err: fmt.Errorf("invalid_grant")}, users, classRepo, 1)

	resp, err := svc.Resync(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, resp.SyncSkipped)
	assert.Empty(t, resp.SyncResults)
}

func TestResyncRunsFromPersistedTree(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*entities.User{
		userID: {ID: userID, GoogleRefreshToken: strPtr("rt")},
	}}
	classRepo := newFakeClassRepo()
	classRepo.trees[userID] = testClasses()
	provider := &fakeCalendarProvider{}

	svc := newTestSyncService(provider, &fakeExchanger{token: "at"}, users, classRepo, 2)

	resp, err := svc.Resync(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, resp.SyncSkipped)
	assert.Len(t, resp.SyncResults, 7)
	assert.Len(t, provider.calendars, 3)
}
