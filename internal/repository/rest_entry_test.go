package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "anon-test-key"

// fakeTable is a minimal PostgREST table endpoint backed by a slice.
type fakeTable struct {
	t     *testing.T
	mu    sync.Mutex
	rows  []selectRow
	clock *testutil.FakeClock
}

func newFakeTable(t *testing.T) (*fakeTable, *httptest.Server) {
	ft := &fakeTable{t: t, clock: testutil.NewFakeClock()}
	srv := httptest.NewServer(ft)
	t.Cleanup(srv.Close)
	return ft, srv
}

func (f *fakeTable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	assert.Equal(f.t, "/rest/v1/department_work_log", r.URL.Path)
	assert.Equal(f.t, testKey, r.Header.Get("apikey"))
	assert.Equal(f.t, "Bearer "+testKey, r.Header.Get("Authorization"))

	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPost:
		assert.Equal(f.t, "application/json", r.Header.Get("Content-Type"))
		var raw map[string]any
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&raw))
		assert.NotContains(f.t, raw, "created_at", "created_at is assigned by the server")

		row := selectRow{
			Name:          raw["name"].(string),
			RequestedDept: raw["requested_dept"].(string),
			Task:          raw["task"].(string),
			DurationMin:   raw["duration_min"].(float64),
			CreatedAt:     f.clock.Now().Format("2006-01-02T15:04:05.000000+00:00"),
		}
		f.clock.Advance(time.Second)
		f.rows = append(f.rows, row)
		w.WriteHeader(http.StatusCreated)

	case http.MethodGet:
		assert.Equal(f.t, "*", r.URL.Query().Get("select"))
		assert.Equal(f.t, "created_at.desc", r.URL.Query().Get("order"))
		out := append([]selectRow(nil), f.rows...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestRESTEntryRepo_InsertThenFetchAllRoundTrip(t *testing.T) {
	ft, srv := newFakeTable(t)
	repo := NewRESTEntryRepo(srv.URL, testKey, 0)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testutil.NewValidEntry()))
	require.NoError(t, repo.Insert(ctx, testutil.NewValidEntry(testutil.WithName("Lee"), testutil.WithMinutes(2.08))))
	assert.Len(t, ft.rows, 2)

	entries, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Lee", entries[0].Name)
	assert.Equal(t, 2.08, entries[0].DurationMin)

	assert.Equal(t, "Kim", entries[1].Name)
	assert.Equal(t, "Sales", entries[1].RequestedDept)
	assert.Equal(t, "Report", entries[1].Task)
	assert.Equal(t, 45.0, entries[1].DurationMin)
	assert.True(t, testutil.DefaultNow.Equal(entries[1].CreatedAt))
}

func TestRESTEntryRepo_TrailingSlashEndpoint(t *testing.T) {
	_, srv := newFakeTable(t)
	repo := NewRESTEntryRepo(srv.URL+"/", testKey, 0)

	require.NoError(t, repo.Insert(context.Background(), testutil.NewValidEntry()))
}

func TestRESTEntryRepo_InsertBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))

		var row insertRow
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		assert.Equal(t, insertRow{Name: "Kim", RequestedDept: "Sales", Task: "Report", DurationMin: 45}, row)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	repo := NewRESTEntryRepo(srv.URL, testKey, 0)
	require.NoError(t, repo.Insert(context.Background(), testutil.NewValidEntry()))
}

func TestRESTEntryRepo_ErrorStatusCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(apiError{Message: "Invalid API key", Hint: "check your key"})
	}))
	defer srv.Close()

	repo := NewRESTEntryRepo(srv.URL, "wrong", 0)
	err := repo.Insert(context.Background(), testutil.NewValidEntry())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), "Invalid API key")
	assert.Contains(t, err.Error(), "401")

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, OpInsert, se.Op)
	assert.Equal(t, "REJECTED", ErrorCode(err))
}

func TestRESTEntryRepo_ErrorStatusPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	repo := NewRESTEntryRepo(srv.URL, testKey, 0)
	_, err := repo.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream exploded")
	assert.Equal(t, "SERVER", ErrorCode(err))
}

func TestRESTEntryRepo_FetchAllMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	repo := NewRESTEntryRepo(srv.URL, testKey, 0)
	_, err := repo.FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), "decoding rows")
}

func TestRESTEntryRepo_FetchAllBadTimestamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"Kim","requested_dept":"Sales","task":"Report","duration_min":45,"created_at":"yesterday"}]`))
	}))
	defer srv.Close()

	repo := NewRESTEntryRepo(srv.URL, testKey, 0)
	_, err := repo.FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), "created_at")
}

func TestRESTEntryRepo_FetchAllAcceptsZonelessTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"Kim","requested_dept":"Sales","task":"Report","duration_min":45,"created_at":"2025-06-15T10:00:00.123456"}]`))
	}))
	defer srv.Close()

	repo := NewRESTEntryRepo(srv.URL, testKey, 0)
	entries, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2025, entries[0].CreatedAt.Year())
	assert.Equal(t, 123456000, entries[0].CreatedAt.Nanosecond())
}

func TestRESTEntryRepo_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	repo := NewRESTEntryRepo(srv.URL, testKey, 50*time.Millisecond)
	err := repo.Insert(context.Background(), testutil.NewValidEntry())
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, "TIMEOUT", ErrorCode(err))
}

func TestRESTEntryRepo_Unavailable(t *testing.T) {
	repo := NewRESTEntryRepo("http://127.0.0.1:1", testKey, time.Second) // nothing listening
	err := repo.Insert(context.Background(), testutil.NewValidEntry())
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "UNAVAILABLE", ErrorCode(err))
}

func TestRESTEntryRepo_SingleAttemptOnFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	repo := NewRESTEntryRepo(srv.URL, testKey, 0)
	require.Error(t, repo.Insert(context.Background(), testutil.NewValidEntry()))
	assert.Equal(t, int32(1), calls.Load(), "store calls are never retried")
}
