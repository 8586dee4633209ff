package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/dgallion1/outliner/internal/pathstore"
)

const pathstorePrefix = "outlines"

// PathstoreStore writes records under outlines/<doc_id> in a pathstore
// server, retrying throttled and transient failures.
type PathstoreStore struct {
	client   *pathstore.Client
	attempts uint
	delay    time.Duration
}

func NewPathstoreStore(client *pathstore.Client) *PathstoreStore {
	return &PathstoreStore{client: client, attempts: 4, delay: 500 * time.Millisecond}
}

func (s *PathstoreStore) retry(ctx context.Context, op string, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(pathstore.IsRetryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("pathstore retry", "op", op, "attempt", n+1, "error", err)
		}),
	)
}

func (s *PathstoreStore) Put(ctx context.Context, rec Record) error {
	key := pathstorePrefix + "/" + rec.DocID
	return s.retry(ctx, "put", func() error {
		return s.client.PutNode(ctx, key, pathstore.NodeRequest{
			Value:      rec,
			MemoryType: "semantic",
			Source:     "outliner:" + rec.Filename,
		})
	})
}

func (s *PathstoreStore) Get(ctx context.Context, docID string) (*Record, error) {
	var node *pathstore.NodeResponse
	err := s.retry(ctx, "get", func() error {
		var err error
		node, err = s.client.GetNode(ctx, pathstorePrefix+"/"+docID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, ErrNotFound
	}
	var rec Record
	if err := json.Unmarshal(node.Value, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", docID, err)
	}
	return &rec, nil
}

func (s *PathstoreStore) List(ctx context.Context) ([]Record, error) {
	var nodes []pathstore.NodeResponse
	err := s.retry(ctx, "list", func() error {
		var err error
		nodes, err = s.client.ListChildren(ctx, pathstorePrefix, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(nodes))
	for _, n := range nodes {
		var rec Record
		if err := json.Unmarshal(n.Value, &rec); err != nil {
			slog.Warn("skipping undecodable outline", "key", n.Key, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
