package cache

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openCacheDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE route_cache (
		cache_key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	);`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func TestSqliteRouteCacheRoundTrip(t *testing.T) {
	c := NewSqliteRouteCache(openCacheDB(t))
	ctx := context.Background()
	want := testRouteResult()

	if err := c.Put(ctx, "chi|ind", want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.Get(ctx, "chi|ind")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(got.Legs) != 1 || got.Legs[0].Duration != want.Legs[0].Duration {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSqliteRouteCacheUpsert(t *testing.T) {
	c := NewSqliteRouteCache(openCacheDB(t))
	ctx := context.Background()

	first := testRouteResult()
	if err := c.Put(ctx, "k", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := testRouteResult()
	second.TotalDistanceMeters = 99
	if err := c.Put(ctx, "k", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got.TotalDistanceMeters != 99 {
		t.Errorf("total distance = %f, want the overwritten value 99", got.TotalDistanceMeters)
	}
}

func TestSqliteRouteCacheMiss(t *testing.T) {
	c := NewSqliteRouteCache(openCacheDB(t))

	got, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("miss should not be an error, got %v", err)
	}
	if ok || got != nil {
		t.Fatalf("expected a miss, got ok=%v result=%+v", ok, got)
	}
}

func TestSqliteRouteCacheNilDB(t *testing.T) {
	var c SqliteRouteCache

	if _, _, err := c.Get(context.Background(), "k"); err == nil {
		t.Error("expected an error with a nil db")
	}
	if err := c.Put(context.Background(), "k", testRouteResult()); err == nil {
		t.Error("expected an error with a nil db")
	}
}
