package db

import (
	"context"
	"os"
	"testing"

	"github.com/PaulBabatuyi/chatsync/internal/data"
)

// These tests are integration tests and require a running MongoDB instance.
// Set MONGODB_URI in the environment before running them.

func TestNewAndCreateIndexes(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set; skipping integration test")
	}

	ctx := context.Background()
	c, err := New(ctx, uri, "chatsync_test")
	if err != nil {
		t.Fatalf("failed to connect to DB: %v", err)
	}
	defer func() {
		_ = c.db.Drop(context.Background())
		_ = c.Close(context.Background())
	}()

	if err := c.CreateIndexes(ctx); err != nil {
		t.Fatalf("CreateIndexes failed: %v", err)
	}

	// creating them again is a no-op
	if err := c.CreateIndexes(ctx); err != nil {
		t.Fatalf("second CreateIndexes failed: %v", err)
	}

	if c.Collection(data.ChatsCollection).Name() != data.ChatsCollection {
		t.Fatalf("unexpected collection name")
	}
}

func TestNewFailsOnUnreachableServer(t *testing.T) {
	if os.Getenv("MONGODB_URI") == "" {
		t.Skip("MONGODB_URI not set; skipping integration test")
	}
	_, err := New(context.Background(), "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200", "")
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
