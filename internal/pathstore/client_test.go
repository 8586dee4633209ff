package pathstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_PutGetList(t *testing.T) {
	store := map[string]json.RawMessage{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		key := r.URL.Path[len("/kv/"):]
		switch {
		case r.Method == http.MethodPut:
			var req struct {
				Value json.RawMessage `json:"value"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			store[key] = req.Value
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodGet && key == "outlines/*":
			var nodes []NodeResponse
			for k, v := range store {
				nodes = append(nodes, NodeResponse{Key: k, Value: v})
			}
			json.NewEncoder(w).Encode(map[string]any{"nodes": nodes})
		case r.Method == http.MethodGet:
			v, ok := store[key]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(NodeResponse{Key: key, Value: v})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	defer c.Close()
	ctx := context.Background()

	if err := c.PutNode(ctx, "outlines/a", NodeRequest{Value: map[string]string{"title": "A"}}); err != nil {
		t.Fatalf("PutNode: %v", err)
	}
	node, err := c.GetNode(ctx, "outlines/a")
	if err != nil || node == nil {
		t.Fatalf("GetNode: %v %v", node, err)
	}
	if string(node.Value) != `{"title":"A"}` {
		t.Errorf("unexpected value %s", node.Value)
	}

	missing, err := c.GetNode(ctx, "outlines/missing")
	if err != nil || missing != nil {
		t.Errorf("expected (nil, nil) for missing node, got %v %v", missing, err)
	}

	nodes, err := c.ListChildren(ctx, "outlines", 10)
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Key != "outlines/a" {
		t.Errorf("unexpected nodes %+v", nodes)
	}
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		c := NewClient(srv.URL, "")
		err := c.PutNode(context.Background(), "k", NodeRequest{Value: 1})
		srv.Close()

		var se *StatusError
		if !errors.As(err, &se) || se.Status != tt.status {
			t.Errorf("status %d: expected StatusError, got %v", tt.status, err)
			continue
		}
		if IsRetryable(err) != tt.retryable {
			t.Errorf("status %d: IsRetryable = %v, want %v", tt.status, !tt.retryable, tt.retryable)
		}
	}
}

func TestIsRetryable_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, "")
	err := c.PutNode(context.Background(), "k", NodeRequest{Value: 1})
	if err == nil || !IsRetryable(err) {
		t.Errorf("expected retryable transport error, got %v", err)
	}
}
