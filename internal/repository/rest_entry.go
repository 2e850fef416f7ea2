package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// RESTEntryRepo implements EntryRepo against a PostgREST-style table
// endpoint ({base}/rest/v1/department_work_log). Every call is a single
// blocking request: there are no retries.
type RESTEntryRepo struct {
	base    string
	key     string
	timeout time.Duration
	http    *http.Client
}

// NewRESTEntryRepo creates a RESTEntryRepo. A zero timeout leaves requests
// bounded only by the caller's context.
func NewRESTEntryRepo(endpoint, key string, timeout time.Duration) *RESTEntryRepo {
	return &RESTEntryRepo{
		base:    strings.TrimRight(endpoint, "/"),
		key:     key,
		timeout: timeout,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
			},
		},
	}
}

// insertRow is the JSON body of an insert. created_at is left to the server.
type insertRow struct {
	Name          string  `json:"name"`
	RequestedDept string  `json:"requested_dept"`
	Task          string  `json:"task"`
	DurationMin   float64 `json:"duration_min"`
}

// selectRow is one element of the JSON array returned by a select.
type selectRow struct {
	Name          string  `json:"name"`
	RequestedDept string  `json:"requested_dept"`
	Task          string  `json:"task"`
	DurationMin   float64 `json:"duration_min"`
	CreatedAt     string  `json:"created_at"`
}

// apiError is the error body PostgREST returns on failure.
type apiError struct {
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
	Code    string `json:"code"`
}

func (r *RESTEntryRepo) Insert(ctx context.Context, e domain.ValidEntry) error {
	body, err := json.Marshal(insertRow{
		Name:          e.Name,
		RequestedDept: e.RequestedDept,
		Task:          e.Task,
		DurationMin:   e.DurationMin,
	})
	if err != nil {
		return storeErr(OpInsert, fmt.Errorf("marshaling row: %w", err))
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Prefer", "return=minimal")

	if _, err := r.do(ctx, OpInsert, http.MethodPost, r.tableURL(nil), headers, body); err != nil {
		return err
	}
	return nil
}

func (r *RESTEntryRepo) FetchAll(ctx context.Context) ([]*domain.WorkLogEntry, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")

	headers := http.Header{}
	headers.Set("Accept", "application/json")

	respBody, err := r.do(ctx, OpFetchAll, http.MethodGet, r.tableURL(q), headers, nil)
	if err != nil {
		return nil, err
	}

	var rows []selectRow
	if err := json.Unmarshal(respBody, &rows); err != nil {
		return nil, storeErr(OpFetchAll, fmt.Errorf("decoding rows: %w", err))
	}

	entries := make([]*domain.WorkLogEntry, 0, len(rows))
	for _, row := range rows {
		createdAt, err := parseTimestamp(row.CreatedAt)
		if err != nil {
			return nil, storeErr(OpFetchAll, fmt.Errorf("parsing created_at: %w", err))
		}
		entries = append(entries, &domain.WorkLogEntry{
			Name:          row.Name,
			RequestedDept: row.RequestedDept,
			Task:          row.Task,
			DurationMin:   row.DurationMin,
			CreatedAt:     createdAt,
		})
	}
	return entries, nil
}

func (r *RESTEntryRepo) tableURL(q url.Values) string {
	u := r.base + "/rest/v1/" + TableName
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// do sends one request and returns the response body of a 2xx reply.
// Any other outcome is a *StoreError.
func (r *RESTEntryRepo) do(ctx context.Context, op, method, target string, headers http.Header, body []byte) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, storeErr(op, fmt.Errorf("creating request: %w", err))
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("apikey", r.key)
	req.Header.Set("Authorization", "Bearer "+r.key)

	resp, err := r.http.Do(req)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, storeErr(op, fmt.Errorf("%w: %v", ErrTimeout, err))
		case isConnectionError(err):
			return nil, storeErr(op, fmt.Errorf("%w: %v", ErrUnavailable, err))
		default:
			return nil, storeErr(op, err)
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, storeErr(op, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StoreError{Op: op, Status: resp.StatusCode, Err: errors.New(errorMessage(respBody))}
	}
	return respBody, nil
}

// errorMessage extracts the backend's message from an error body, falling
// back to the raw body.
func errorMessage(body []byte) string {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		msg := apiErr.Message
		if apiErr.Details != "" {
			msg += " (" + apiErr.Details + ")"
		}
		return msg
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return "empty response"
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
