package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore mirrors the conditional-insert semantics of the real repo: the
// open-session check and the insert happen under one lock.
type fakeStore struct {
	mu      sync.Mutex
	records []*Record
}

func (f *fakeStore) Start(_ context.Context, userID uuid.UUID, loginTime time.Time) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range f.records {
		if rec.UserID == userID && rec.LogoutTime == nil {
			return nil, ErrAlreadyClockedIn
		}
	}

	rec := &Record{ID: uuid.New(), UserID: userID, LoginTime: loginTime, CreatedAt: time.Now()}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeStore) End(_ context.Context, userID uuid.UUID, logoutTime time.Time, workDuration int64) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var latest *Record
	for _, rec := range f.records {
		if rec.UserID == userID && rec.LogoutTime == nil {
			if latest == nil || rec.LoginTime.After(latest.LoginTime) {
				latest = rec
			}
		}
	}
	if latest == nil {
		return nil, ErrNoActiveSession
	}

	if workDuration <= 0 {
		workDuration = int64(logoutTime.Sub(latest.LoginTime).Seconds())
		if workDuration < 0 {
			workDuration = 0
		}
	}
	latest.LogoutTime = &logoutTime
	latest.AvailableTime = &workDuration
	return latest, nil
}

func (f *fakeStore) Open(_ context.Context, userID uuid.UUID) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range f.records {
		if rec.UserID == userID && rec.LogoutTime == nil {
			return rec, nil
		}
	}
	return nil, ErrNoActiveSession
}

func (f *fakeStore) History(_ context.Context, userID uuid.UUID) ([]*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*Record
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) openCount(userID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, rec := range f.records {
		if rec.UserID == userID && rec.LogoutTime == nil {
			n++
		}
	}
	return n
}

func TestStartWhileActiveConflicts(t *testing.T) {
	store := &fakeStore{}
	svc := NewAttendanceService(store)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Start(ctx, &StartRequest{UserID: userID, LoginTime: time.Now()})
	require.NoError(t, err)

	_, err = svc.Start(ctx, &StartRequest{UserID: userID, LoginTime: time.Now()})
	assert.ErrorIs(t, err, ErrAlreadyClockedIn)
	assert.Equal(t, 1, store.openCount(userID))
}

func TestEndWhileIdleFails(t *testing.T) {
	store := &fakeStore{}
	svc := NewAttendanceService(store)

	_, err := svc.End(context.Background(), &EndRequest{UserID: uuid.New(), LogoutTime: time.Now()})
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.Empty(t, store.records)
}

func TestStartEndCycle(t *testing.T) {
	store := &fakeStore{}
	svc := NewAttendanceService(store)
	ctx := context.Background()
	userID := uuid.New()

	login := time.Now().Add(-90 * time.Minute)
	_, err := svc.Start(ctx, &StartRequest{UserID: userID, LoginTime: login})
	require.NoError(t, err)

	closed, err := svc.End(ctx, &EndRequest{UserID: userID, LogoutTime: time.Now(), WorkDuration: 5400})
	require.NoError(t, err)
	require.NotNil(t, closed.LogoutTime)
	require.NotNil(t, closed.AvailableTime)
	assert.Equal(t, int64(5400), *closed.AvailableTime)

	// Session is closed, a new one may start
	_, err = svc.Start(ctx, &StartRequest{UserID: userID, LoginTime: time.Now()})
	assert.NoError(t, err)
}

func TestEndClampsBadDuration(t *testing.T) {
	store := &fakeStore{}
	svc := NewAttendanceService(store)
	ctx := context.Background()
	userID := uuid.New()

	login := time.Now().Add(-10 * time.Second)
	_, err := svc.Start(ctx, &StartRequest{UserID: userID, LoginTime: login})
	require.NoError(t, err)

	closed, err := svc.End(ctx, &EndRequest{UserID: userID, LogoutTime: time.Now(), WorkDuration: -42})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, *closed.AvailableTime, int64(0))
}

func TestStartMissingFields(t *testing.T) {
	svc := NewAttendanceService(&fakeStore{})
	ctx := context.Background()

	_, err := svc.Start(ctx, &StartRequest{LoginTime: time.Now()})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Start(ctx, &StartRequest{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.End(ctx, &EndRequest{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestConcurrentStartsCreateOneRecord(t *testing.T) {
	store := &fakeStore{}
	svc := NewAttendanceService(store)
	ctx := context.Background()
	userID := uuid.New()

	const n = 16
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Start(ctx, &StartRequest{UserID: userID, LoginTime: time.Now()})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, conflicted := 0, 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrAlreadyClockedIn)
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, conflicted)
	assert.Equal(t, 1, store.openCount(userID))
}
