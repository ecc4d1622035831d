package memstore

import (
	"context"
	"maps"
	"sync"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/domain/voucherbook"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type claimKey struct {
	customerID uuid.UUID
	voucherID  uuid.UUID
}

type translationKey struct {
	voucherID uuid.UUID
	lang      string
}

type entryKey struct {
	bookID    uuid.UUID
	voucherID uuid.UUID
}

type state struct {
	vouchers     map[uuid.UUID]voucher.Snapshot
	claims       map[uuid.UUID]voucher.Claim
	claimIndex   map[claimKey]uuid.UUID
	scans        []voucher.Scan
	codes        map[string]voucher.Code
	books        map[uuid.UUID]voucherbook.Snapshot
	entries      map[uuid.UUID][]voucherbook.Entry
	entryIndex   map[entryKey]struct{}
	translations map[translationKey]voucher.Translation
}

func newState() *state {
	return &state{
		vouchers:     map[uuid.UUID]voucher.Snapshot{},
		claims:       map[uuid.UUID]voucher.Claim{},
		claimIndex:   map[claimKey]uuid.UUID{},
		codes:        map[string]voucher.Code{},
		books:        map[uuid.UUID]voucherbook.Snapshot{},
		entries:      map[uuid.UUID][]voucherbook.Entry{},
		entryIndex:   map[entryKey]struct{}{},
		translations: map[translationKey]voucher.Translation{},
	}
}

func (s *state) clone() *state {
	entries := make(map[uuid.UUID][]voucherbook.Entry, len(s.entries))
	for k, v := range s.entries {
		entries[k] = append([]voucherbook.Entry(nil), v...)
	}
	return &state{
		vouchers:     maps.Clone(s.vouchers),
		claims:       maps.Clone(s.claims),
		claimIndex:   maps.Clone(s.claimIndex),
		scans:        append([]voucher.Scan(nil), s.scans...),
		codes:        maps.Clone(s.codes),
		books:        maps.Clone(s.books),
		entries:      entries,
		entryIndex:   maps.Clone(s.entryIndex),
		translations: maps.Clone(s.translations),
	}
}

// Store is an in-memory UnitOfWork. Within runs on a private copy of the
// state and swaps it in on success, so a failed fn leaves nothing behind.
// Transactions are serialized by a single lock.
type Store struct {
	mu sync.Mutex
	st *state

	businessMu sync.RWMutex
	businesses map[uuid.UUID]shared.Business

	failMu   sync.Mutex
	failures map[string]error
}

func New() *Store {
	return &Store{
		st:         newState(),
		businesses: map[uuid.UUID]shared.Business{},
		failures:   map[string]error{},
	}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(ctx, &txn{store: s, st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *Store) Repos() shared.Tx {
	return &txn{store: s}
}

// FailOn makes the named operation return err until cleared with a nil err.
// Operation names are "<repo>.<method>", e.g. "scans.create".
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) injected(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.failures[op]
}

// Scans returns every recorded scan event.
func (s *Store) Scans() []voucher.Scan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]voucher.Scan(nil), s.st.scans...)
}

// Claims returns every claim for a voucher.
func (s *Store) Claims(voucherID uuid.UUID) []voucher.Claim {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []voucher.Claim
	for _, c := range s.st.claims {
		if c.VoucherID == voucherID {
			out = append(out, c)
		}
	}
	return out
}

// Seed stores vouchers as given, bypassing the lifecycle.
func (s *Store) Seed(vs ...*voucher.Voucher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vs {
		s.st.vouchers[v.ID()] = v.Snapshot()
	}
}

func (s *Store) SeedBook(b *voucherbook.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.books[b.ID()] = b.Snapshot()
}

func (s *Store) AddBusiness(b shared.Business) {
	s.businessMu.Lock()
	defer s.businessMu.Unlock()
	s.businesses[b.ID] = b
}

// txn serves both transactional and direct access. A nil st means direct:
// each call takes the store lock and works on the live state.
type txn struct {
	store *Store
	st    *state
}

func (t *txn) with(op string, fn func(st *state) error) error {
	if err := t.store.injected(op); err != nil {
		return err
	}
	if t.st != nil {
		return fn(t.st)
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return fn(t.store.st)
}

func (t *txn) Vouchers() shared.VoucherRepository         { return &voucherRepo{t} }
func (t *txn) Claims() shared.ClaimRepository             { return &claimRepo{t} }
func (t *txn) Scans() shared.ScanRepository               { return &scanRepo{t} }
func (t *txn) Codes() shared.CodeRepository               { return &codeRepo{t} }
func (t *txn) Books() shared.BookRepository               { return &bookRepo{t} }
func (t *txn) Translations() shared.TranslationRepository { return &translationRepo{t} }
