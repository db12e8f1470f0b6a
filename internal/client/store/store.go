// Package store keeps the client-side collections of DMS entities in sync
// with the remote authoritative store.
//
// Each store holds one entity kind, a status tag, and the last error message.
// Operations follow one shape: status flips to loading and the previous error
// clears as soon as the operation starts; on success the collection is
// reconciled and status returns to idle; on failure status becomes error and
// the collection keeps its last good state. Writes are pessimistic: nothing
// changes locally until the server has confirmed.
//
// Operations on the same store may overlap; reconciliation happens in
// completion order. The one exception is list fetches, which carry a
// monotonically increasing sequence so that a slow list response can never
// clobber the result of a newer one.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/dmskit/dmscli/internal/client/gateway"
	"github.com/dmskit/dmscli/internal/client/models"
	"github.com/dmskit/dmscli/internal/logging"
)

// Status is the store's operation state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
)

// Snapshot is an atomic read of a store: an observer never sees a
// half-applied reconciliation.
type Snapshot[T models.Entity] struct {
	Records []T
	Status  Status
	Err     string
}

// Store is the generic synchronization core shared by all four entity kinds.
type Store[T models.Entity] struct {
	mu      sync.Mutex
	records []T
	status  Status
	errMsg  string

	// List-fetch sequence guard: fetchSeq numbers each list request at
	// start, appliedSeq remembers the newest list response applied.
	fetchSeq   uint64
	appliedSeq uint64

	name string
	log  logging.Logger
}

func newStore[T models.Entity](name string, log logging.Logger) *Store[T] {
	return &Store[T]{status: StatusIdle, name: name, log: log.With("store", name)}
}

// Snapshot returns a copy of the collection together with status and error.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]T, len(s.records))
	copy(records, s.records)
	return Snapshot[T]{Records: records, Status: s.status, Err: s.errMsg}
}

// begin marks an operation as started: loading, prior error cleared.
func (s *Store[T]) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusLoading
	s.errMsg = ""
}

// beginList is begin plus sequence assignment for a list fetch.
func (s *Store[T]) beginList() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusLoading
	s.errMsg = ""
	s.fetchSeq++
	return s.fetchSeq
}

// fail records the error and leaves the collection untouched, so
// stale-but-valid data stays visible.
func (s *Store[T]) fail(ctx context.Context, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusError
	s.errMsg = messageOf(err)
	s.log.Warn(ctx, "operation failed", "error", err)
}

// applyList replaces the collection wholesale with the response, in response
// order. A response older than the newest applied list response is discarded;
// the status still settles to idle because the operation itself succeeded.
func (s *Store[T]) applyList(ctx context.Context, seq uint64, items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
	if seq <= s.appliedSeq {
		s.log.Warn(ctx, "discarding stale list response", "seq", seq, "applied", s.appliedSeq)
		return
	}
	s.appliedSeq = seq
	s.records = dedupeByID(items)
}

// applyCreate appends the server's canonical record. Should the id already be
// present the record is replaced in place instead, keeping ids unique.
func (s *Store[T]) applyCreate(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
	for i, rec := range s.records {
		if rec.GetID() == item.GetID() {
			s.records[i] = item
			return
		}
	}
	s.records = append(s.records, item)
}

// applyUpdate replaces the matching record in place, preserving its position.
// With no match the response is dropped: a defined no-op.
func (s *Store[T]) applyUpdate(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
	for i, rec := range s.records {
		if rec.GetID() == item.GetID() {
			s.records[i] = item
			return
		}
	}
}

// applyDelete removes every record with the given id. Deleting an absent id
// leaves the collection unchanged and does not error the store.
func (s *Store[T]) applyDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.GetID() != id {
			kept = append(kept, rec)
		}
	}
	s.records = kept
}

// fetchWith drives a list fetch through loading→idle/error.
func (s *Store[T]) fetchWith(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	seq := s.beginList()
	items, err := fetch(ctx)
	if err != nil {
		s.fail(ctx, err)
		return err
	}
	s.applyList(ctx, seq, items)
	return nil
}

// createWith drives a create and returns the canonical record.
func (s *Store[T]) createWith(ctx context.Context, call func(context.Context) (T, error)) (T, error) {
	s.begin()
	item, err := call(ctx)
	if err != nil {
		s.fail(ctx, err)
		return item, err
	}
	s.applyCreate(item)
	return item, nil
}

// updateWith drives an update (and file uploads, which reconcile the same way).
func (s *Store[T]) updateWith(ctx context.Context, call func(context.Context) (T, error)) (T, error) {
	s.begin()
	item, err := call(ctx)
	if err != nil {
		s.fail(ctx, err)
		return item, err
	}
	s.applyUpdate(item)
	return item, nil
}

// deleteWith drives a delete; the server confirms by id only.
func (s *Store[T]) deleteWith(ctx context.Context, id string, call func(context.Context) error) error {
	s.begin()
	if err := call(ctx); err != nil {
		s.fail(ctx, err)
		return err
	}
	s.applyDelete(id)
	return nil
}

// dedupeByID keeps the first occurrence of each id, in response order. The
// server should never send duplicates; if it does, ids stay unique in the
// collection.
func dedupeByID[T models.Entity](items []T) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.GetID()]; ok {
			continue
		}
		seen[item.GetID()] = struct{}{}
		out = append(out, item)
	}
	return out
}

// messageOf prefers the server-supplied message of a normalized API error.
func messageOf(err error) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
