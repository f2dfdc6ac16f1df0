package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/smartview/pkg/errors"
)

// testStore checks the behavior every Store implementation must have.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	a := &Record{Name: "primates", Newick: "((human,chimp),gorilla);", Description: "great apes"}
	if err := s.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !ValidID(a.ID) {
		t.Errorf("Create assigned an invalid ID %q", a.ID)
	}
	if a.CreatedAt.IsZero() || a.UpdatedAt.IsZero() {
		t.Error("Create did not set timestamps")
	}

	b := &Record{Name: "birds", Newick: "(owl,(duck,goose));"}
	if err := s.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := &Record{Name: "primates", Newick: "(a,b);"}
	if err := s.Create(ctx, dup); !errors.Is(err, errors.ErrCodeConflict) {
		t.Errorf("Create with a taken name: %v, want CONFLICT", err)
	}

	got, err := s.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != a.Name || got.Newick != a.Newick || got.Description != a.Description {
		t.Errorf("Get = %+v, want %+v", got, a)
	}

	byName, err := s.GetByName(ctx, "birds")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if byName.ID != b.ID {
		t.Errorf("GetByName ID = %s, want %s", byName.ID, b.ID)
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 || recs[0].Name != "birds" || recs[1].Name != "primates" {
		t.Errorf("List = %+v, want birds then primates", recs)
	}

	a.Newick = "((human,chimp),(gorilla,orangutan));"
	if err := s.Update(ctx, a); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = s.Get(ctx, a.ID)
	if got.Newick != a.Newick {
		t.Errorf("Update did not replace the newick: %q", got.Newick)
	}

	b.Name = "primates"
	if err := s.Update(ctx, b); !errors.Is(err, errors.ErrCodeConflict) {
		t.Errorf("Update to a taken name: %v, want CONFLICT", err)
	}

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, a.ID); !errors.Is(err, errors.ErrCodeTreeNotFound) {
		t.Errorf("Get after Delete: %v, want TREE_NOT_FOUND", err)
	}
	if err := s.Delete(ctx, a.ID); !errors.Is(err, errors.ErrCodeTreeNotFound) {
		t.Errorf("second Delete: %v, want TREE_NOT_FOUND", err)
	}
	if _, err := s.GetByName(ctx, "nope"); !errors.Is(err, errors.ErrCodeTreeNotFound) {
		t.Errorf("GetByName(nope): %v, want TREE_NOT_FOUND", err)
	}
	if err := s.Update(ctx, &Record{ID: NewID(), Name: "x", Newick: "x;"}); !errors.Is(err, errors.ErrCodeTreeNotFound) {
		t.Errorf("Update of an unknown ID: %v, want TREE_NOT_FOUND", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close(context.Background())
	testStore(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("SMARTVIEW_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SMARTVIEW_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := "smartview_test_" + NewID()[:8]
	s, err := NewMongoStore(ctx, uri, db)
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer func() {
		_ = s.client.Database(db).Drop(ctx)
		s.Close(ctx)
	}()
	testStore(t, s)
}

func TestCreateValidation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	tests := []struct {
		name string
		rec  Record
	}{
		{"empty name", Record{Newick: "(a,b);"}},
		{"slash in name", Record{Name: "a/b", Newick: "(a,b);"}},
		{"empty newick", Record{Name: "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.rec
			if err := s.Create(ctx, &rec); !errors.IsInvalid(err) {
				t.Errorf("Create: %v, want an INVALID_* error", err)
			}
		})
	}
}

func TestUpdateKeepsCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return t0 }

	rec := &Record{Name: "t", Newick: "(a,b);"}
	if err := s.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return t0.Add(time.Hour) }
	update := &Record{ID: rec.ID, Name: "t", Newick: "(a,c);"}
	if err := s.Update(ctx, update); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(ctx, rec.ID)
	if !got.CreatedAt.Equal(t0) || !got.UpdatedAt.Equal(t0.Add(time.Hour)) {
		t.Errorf("timestamps = %v / %v", got.CreatedAt, got.UpdatedAt)
	}
}
