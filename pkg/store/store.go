// Package store persists named trees.
//
// Trees are stored as Newick text together with a unique, user-chosen name
// and a generated ID. [MemoryStore] keeps them in process (tests, the CLI);
// [MongoStore] keeps them in a MongoDB collection.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/smartview/pkg/errors"
)

// Record is a stored tree.
type Record struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Newick      string    `json:"newick" bson:"newick"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is a collection of tree records with unique names.
type Store interface {
	// Create assigns an ID and timestamps to rec and stores it. A record
	// with the same name yields a CONFLICT error.
	Create(ctx context.Context, rec *Record) error

	// Get returns the record with the given ID or a TREE_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// GetByName returns the record with the given name or a TREE_NOT_FOUND
	// error.
	GetByName(ctx context.Context, name string) (*Record, error)

	// List returns all records sorted by name.
	List(ctx context.Context) ([]Record, error)

	// Update replaces the name, description and Newick of the record with
	// rec.ID and refreshes its UpdatedAt.
	Update(ctx context.Context, rec *Record) error

	// Delete removes the record with the given ID.
	Delete(ctx context.Context, id string) error

	// Close releases the store's resources.
	Close(ctx context.Context) error
}

// NewID returns a fresh record ID.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the form of a record ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func prepare(rec *Record, now time.Time) error {
	if err := errors.ValidateTreeName(rec.Name); err != nil {
		return err
	}
	if rec.Newick == "" {
		return errors.New(errors.ErrCodeInvalidInput, "tree %q has no newick", rec.Name)
	}
	if rec.ID == "" {
		rec.ID = NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	return nil
}

func notFound(what string) error {
	return errors.New(errors.ErrCodeTreeNotFound, "tree %s not found", what)
}

func conflict(name string) error {
	return errors.New(errors.ErrCodeConflict, "a tree named %q already exists", name)
}
