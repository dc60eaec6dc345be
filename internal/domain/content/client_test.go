package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"limban-server-go/internal/platform/errors"
)

func TestClientQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %s", ct)
		}
		w.Write([]byte(`{"data": {"rooms": [{"name": "Machaan", "slug": "machaan"}]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	var out struct {
		Rooms []Room `json:"rooms"`
	}
	if err := client.Query(context.Background(), queryRooms, nil, &out); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(out.Rooms) != 1 || out.Rooms[0].Name != "Machaan" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestClientQueryGraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "field 'rooms' not found"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	err := client.Query(context.Background(), queryRooms, nil, nil)
	if err == nil {
		t.Fatal("expected error for graphql errors payload")
	}
	if !errors.IsKind(err, errors.KindContent) {
		t.Fatalf("expected content error, got %v", err)
	}
}

func TestClientQueryHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	if err := client.Query(context.Background(), queryRooms, nil, nil); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
