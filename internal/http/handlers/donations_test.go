package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"pubgoods/internal/sqlinline"
)

func TestDonationsCreate_RejectsMissingFields(t *testing.T) {
	sqlFake := &fakeSQL{}
	app := &App{SQL: sqlFake}

	req := httptest.NewRequest("POST", "/donations", strings.NewReader(`{"project_id":"proj-1","amount":0}`))
	rr := httptest.NewRecorder()

	app.DonationsCreate(rr, req)

	if rr.Code != 400 {
		t.Fatalf("unexpected status code: got %d, want 400", rr.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != "Missing required fields" {
		t.Fatalf("unexpected error message: %q", payload["error"])
	}
	if len(sqlFake.queryRowCalls) != 0 {
		t.Fatalf("expected no insert, got %d calls", len(sqlFake.queryRowCalls))
	}
}

func TestDonationsCreate_AllowsAnonymous(t *testing.T) {
	createdAt := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	sqlFake := &fakeSQL{queryRowFn: func(query string, args []any) pgx.Row {
		if query != sqlinline.QInsertDonation {
			t.Fatalf("unexpected query: %s", query)
		}
		if len(args) != 4 {
			t.Fatalf("unexpected args count: %d", len(args))
		}
		if args[1] != "" {
			t.Fatalf("expected empty user id for anonymous donation, got %#v", args[1])
		}
		return scanTuple([]any{"don-1", "proj-1", nil, int64(2500), "crypto", createdAt})
	}}
	app := &App{SQL: sqlFake}

	body := `{"project_id":"proj-1","amount":2500,"payment_method":"crypto"}`
	req := httptest.NewRequest("POST", "/donations", strings.NewReader(body))
	rr := httptest.NewRecorder()

	app.DonationsCreate(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var items []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 donation, got %d", len(items))
	}
	if val, ok := items[0]["user_id"]; ok && val != nil {
		t.Fatalf("expected user_id to be null, got %#v", val)
	}
	if items[0]["payment_method"] != "crypto" {
		t.Fatalf("unexpected payment_method: %#v", items[0]["payment_method"])
	}
}

func TestDonationsRecent_DefaultLimit(t *testing.T) {
	sqlFake := &fakeSQL{queryFn: func(query string, args []any) (pgx.Rows, error) {
		if query != sqlinline.QListRecentDonations {
			t.Fatalf("unexpected query: %s", query)
		}
		if len(args) != 1 || args[0] != 10 {
			t.Fatalf("expected default limit 10, got %#v", args)
		}
		return &sliceRows{rows: [][]any{
			{"don-2", "proj-1", "user-3", int64(500), "fiat", time.Now().UTC()},
		}}, nil
	}}
	app := &App{SQL: sqlFake}

	req := httptest.NewRequest("GET", "/donations/recent", nil)
	rr := httptest.NewRecorder()

	app.DonationsRecent(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 1 {
		t.Fatalf("expected 1 donation, got %d", len(payload.Items))
	}
	if payload.Items[0]["user_id"] != "user-3" {
		t.Fatalf("unexpected user_id: %#v", payload.Items[0]["user_id"])
	}
}

// failingRows reports an iteration error after replaying its tuples, the way
// pgx surfaces a connection dropped mid-stream.
type failingRows struct {
	sliceRows
	err error
}

func (f *failingRows) Err() error { return f.err }

func TestDonationsRecent_IterationErrorIsFatal(t *testing.T) {
	sqlFake := &fakeSQL{queryFn: func(string, []any) (pgx.Rows, error) {
		return &failingRows{
			sliceRows: sliceRows{rows: [][]any{
				{"don-1", "proj-1", nil, int64(2500), "crypto", time.Now().UTC()},
			}},
			err: errors.New("connection reset mid-stream"),
		}, nil
	}}
	app := &App{SQL: sqlFake}

	req := httptest.NewRequest("GET", "/donations/recent", nil)
	rr := httptest.NewRecorder()

	app.DonationsRecent(rr, req)

	if rr.Code != 500 {
		t.Fatalf("unexpected status code: got %d, want 500", rr.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != "Failed to load donations" {
		t.Fatalf("unexpected error message: %q", payload["error"])
	}
}

func TestDonationsRecent_ScanErrorIsFatal(t *testing.T) {
	sqlFake := &fakeSQL{queryFn: func(string, []any) (pgx.Rows, error) {
		// Wrong arity forces a scan failure on the second row.
		return &sliceRows{rows: [][]any{
			{"don-1", "proj-1", nil, int64(2500), "crypto", time.Now().UTC()},
			{"don-2", "proj-1"},
		}}, nil
	}}
	app := &App{SQL: sqlFake}

	req := httptest.NewRequest("GET", "/donations/recent", nil)
	rr := httptest.NewRecorder()

	app.DonationsRecent(rr, req)

	if rr.Code != 500 {
		t.Fatalf("unexpected status code: got %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "don-1") {
		t.Fatal("partial results must not leak on a failed listing")
	}
}
