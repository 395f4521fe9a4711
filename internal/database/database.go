// Package database defines the interface for persisting fighter records.
// By using an interface, we decouple the pipeline and the query API from a
// specific database implementation, allowing for easier testing.
package database

import (
	"context"
	"errors"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/fighter"
)

// ErrNotFound is returned when a requested fighter does not exist.
var ErrNotFound = errors.New("fighter not found")

// StoredFighter is a fighter record as read back from storage, including the
// surrogate row ID used by the query API.
type StoredFighter struct {
	ID int64 `json:"id"`
	fighter.Record
}

// Filter narrows fighter listings.
type Filter struct {
	// WeightClass restricts results to one division when non-empty.
	WeightClass string
	// Limit caps the number of rows returned; 0 means no cap.
	Limit int
}

// Provider is the storage collaborator consumed by the pipeline and the
// query API. SaveFighters must treat the profile URL as the natural upsert
// key and apply the whole batch in one transaction.
type Provider interface {
	// SaveFighters upserts a batch of records keyed on URL, all-or-nothing.
	// It reports how many rows were newly inserted versus updated.
	SaveFighters(ctx context.Context, records []fighter.Record) (inserted, updated int, err error)

	// ListFighters returns stored fighters matching the filter.
	ListFighters(ctx context.Context, filter Filter) ([]StoredFighter, error)

	// GetFighter returns one fighter by row ID, or ErrNotFound.
	GetFighter(ctx context.Context, id int64) (StoredFighter, error)

	// SearchFighters returns fighters whose name contains the given substring,
	// case-insensitively.
	SearchFighters(ctx context.Context, name string) ([]StoredFighter, error)

	// CountFighters returns the total number of stored fighters.
	CountFighters(ctx context.Context) (int64, error)

	// Close terminates the database connection and releases any resources.
	Close()
}

// NoOpProvider is a mock provider that performs no operations. It is useful
// for dry runs and for exercising the pipeline without a real database.
type NoOpProvider struct{}

// SaveFighters reports every record as inserted without storing anything.
func (NoOpProvider) SaveFighters(_ context.Context, records []fighter.Record) (int, int, error) {
	return len(records), 0, nil
}

// ListFighters returns an empty listing.
func (NoOpProvider) ListFighters(_ context.Context, _ Filter) ([]StoredFighter, error) {
	return nil, nil
}

// GetFighter always reports not found.
func (NoOpProvider) GetFighter(_ context.Context, _ int64) (StoredFighter, error) {
	return StoredFighter{}, ErrNotFound
}

// SearchFighters returns an empty listing.
func (NoOpProvider) SearchFighters(_ context.Context, _ string) ([]StoredFighter, error) {
	return nil, nil
}

// CountFighters reports zero stored fighters.
func (NoOpProvider) CountFighters(_ context.Context) (int64, error) { return 0, nil }

// Close does nothing.
func (NoOpProvider) Close() {}
