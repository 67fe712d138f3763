package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktime-control/internal/domain"
)

type fakeBackend struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (b *fakeBackend) Get(_ context.Context, key string) (string, error) {
	if b.getErr != nil {
		return "", b.getErr
	}
	value, ok := b.data[key]
	if !ok {
		return "", errCacheMiss
	}
	return value, nil
}

func (b *fakeBackend) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if b.setErr != nil {
		return b.setErr
	}
	b.data[key] = value
	b.ttls[key] = ttl
	return nil
}

func (b *fakeBackend) Del(_ context.Context, key string) error {
	delete(b.data, key)
	delete(b.ttls, key)
	return nil
}

type fakeStore struct {
	status *domain.ApprovalPeriodStatus
	err    error
	calls  int
}

func (s *fakeStore) FindStatus(_ context.Context, officeID, corporationID int64, periods []time.Time) (*domain.ApprovalPeriodStatus, error) {
	s.calls++
	return s.status, s.err
}

var (
	march     = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	testKey   = "wtc:slstatus:1:2:2024-03"
	marchLock = &domain.ApprovalPeriodStatus{OfficeID: 1, CorporationID: 2, Period: march, Closed: true}
)

func TestFindStatusCachesStoreResult(t *testing.T) {
	backend := newFakeBackend()
	store := &fakeStore{status: marchLock}
	cache := newWithBackend(store, backend, 5*time.Minute, nil)
	ctx := context.Background()

	status, err := cache.FindStatus(ctx, 1, 2, []time.Time{march})
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.Closed)
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, 5*time.Minute, backend.ttls[testKey])

	// The second lookup is served from the cache.
	status, err = cache.FindStatus(ctx, 1, 2, []time.Time{march})
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.Closed)
	assert.Equal(t, 1, store.calls)
}

func TestFindStatusCachesAbsence(t *testing.T) {
	backend := newFakeBackend()
	store := &fakeStore{}
	cache := newWithBackend(store, backend, 5*time.Minute, nil)
	ctx := context.Background()

	status, err := cache.FindStatus(ctx, 1, 2, []time.Time{march})
	require.NoError(t, err)
	assert.Nil(t, status)
	assert.Equal(t, 1, store.calls)

	// The "no status" answer is cached too.
	status, err = cache.FindStatus(ctx, 1, 2, []time.Time{march})
	require.NoError(t, err)
	assert.Nil(t, status)
	assert.Equal(t, 1, store.calls)
}

func TestFindStatusDegradesOnBackendFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.getErr = fmt.Errorf("connection refused")
	backend.setErr = fmt.Errorf("connection refused")
	store := &fakeStore{status: marchLock}
	cache := newWithBackend(store, backend, 5*time.Minute, nil)

	status, err := cache.FindStatus(context.Background(), 1, 2, []time.Time{march})
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.Closed)
	assert.Equal(t, 1, store.calls)
}

func TestFindStatusDiscardsMalformedEntry(t *testing.T) {
	backend := newFakeBackend()
	backend.data[testKey] = "{not json"
	store := &fakeStore{status: marchLock}
	cache := newWithBackend(store, backend, 5*time.Minute, nil)

	status, err := cache.FindStatus(context.Background(), 1, 2, []time.Time{march})
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, 1, store.calls)

	// The bad entry was overwritten with a good one.
	var entry statusEntry
	require.NoError(t, json.Unmarshal([]byte(backend.data[testKey]), &entry))
	assert.True(t, entry.Found)
}

func TestFindStatusSurfacesStoreErrors(t *testing.T) {
	backend := newFakeBackend()
	store := &fakeStore{err: fmt.Errorf("erp unreachable")}
	cache := newWithBackend(store, backend, 5*time.Minute, nil)

	_, err := cache.FindStatus(context.Background(), 1, 2, []time.Time{march})
	assert.Error(t, err)
	assert.Empty(t, backend.data)
}

func TestInvalidateDropsEntry(t *testing.T) {
	backend := newFakeBackend()
	store := &fakeStore{status: marchLock}
	cache := newWithBackend(store, backend, 5*time.Minute, nil)
	ctx := context.Background()

	_, err := cache.FindStatus(ctx, 1, 2, []time.Time{march})
	require.NoError(t, err)
	require.Contains(t, backend.data, testKey)

	require.NoError(t, cache.Invalidate(ctx, 1, 2, []time.Time{march}))
	assert.NotContains(t, backend.data, testKey)

	// The next lookup goes back to the store.
	_, err = cache.FindStatus(ctx, 1, 2, []time.Time{march})
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name          string
		officeID      int64
		corporationID int64
		periods       []time.Time
		expected      string
	}{
		{
			name:          "should build key for a single period",
			officeID:      1,
			corporationID: 2,
			periods:       []time.Time{time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
			expected:      "wtc:slstatus:1:2:2024-03",
		},
		{
			name:          "should append each period in order",
			officeID:      1,
			corporationID: 2,
			periods: []time.Time{
				time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			},
			expected: "wtc:slstatus:1:2:2024-03:2024-02",
		},
		{
			name:          "should normalize mid-month periods to their month",
			officeID:      5,
			corporationID: 9,
			periods:       []time.Time{time.Date(2024, time.March, 17, 13, 45, 0, 0, time.UTC)},
			expected:      "wtc:slstatus:5:9:2024-03",
		},
		{
			name:          "should build key without periods",
			officeID:      1,
			corporationID: 2,
			expected:      "wtc:slstatus:1:2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cacheKey(tt.officeID, tt.corporationID, tt.periods))
		})
	}
}
