package store

import "chipchart/internal/model"

// Store persists fetched daily bars so repeated or offline requests don't
// have to hit the network source. Computed profiles are never persisted;
// they are cheap to recompute.
type Store interface {
	SaveBars(symbol string, bars []model.Bar) error
	LoadBars(symbol string, limit int) ([]model.Bar, error)
	Close() error
}

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) SaveBars(_ string, _ []model.Bar) error        { return nil }
func (n *NoopStore) LoadBars(_ string, _ int) ([]model.Bar, error) { return nil, nil }
func (n *NoopStore) Close() error                                  { return nil }
