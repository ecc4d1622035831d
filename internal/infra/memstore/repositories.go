package memstore

import (
	"context"
	"slices"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/domain/voucherbook"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type voucherRepo struct{ t *txn }

func (r *voucherRepo) FindByID(_ context.Context, id uuid.UUID) (*voucher.Voucher, error) {
	var out *voucher.Voucher
	err := r.t.with("vouchers.find", func(st *state) error {
		snap, ok := st.vouchers[id]
		if !ok {
			return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
		}
		out = voucher.ReconstructVoucher(snap)
		return nil
	})
	return out, err
}

func (r *voucherRepo) Create(_ context.Context, v *voucher.Voucher) error {
	return r.t.with("vouchers.create", func(st *state) error {
		if _, ok := st.vouchers[v.ID()]; ok {
			return infra.WrapRepoErr("voucher already exists", nil, infra.KindDuplicateKey)
		}
		for _, other := range st.vouchers {
			if other.QRCode == v.QRCode() {
				return infra.WrapRepoErr("voucher qr code already exists", nil, infra.KindDuplicateKey)
			}
		}
		st.vouchers[v.ID()] = v.Snapshot()
		return nil
	})
}

func (r *voucherRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to voucher.Status, at time.Time) (bool, error) {
	var updated bool
	err := r.t.with("vouchers.update_status", func(st *state) error {
		snap, ok := st.vouchers[id]
		if !ok || snap.DeletedAt != nil || snap.State != from {
			return nil
		}
		snap.State = to
		snap.UpdatedAt = at
		st.vouchers[id] = snap
		updated = true
		return nil
	})
	return updated, err
}

func (r *voucherRepo) IncrementRedemptionsIfBelowLimit(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	var updated bool
	err := r.t.with("vouchers.increment_redemptions", func(st *state) error {
		snap, ok := st.vouchers[id]
		if !ok || snap.DeletedAt != nil {
			return nil
		}
		if snap.MaxRedemptions != nil && snap.RedemptionsCount >= *snap.MaxRedemptions {
			return nil
		}
		snap.RedemptionsCount++
		snap.UpdatedAt = at
		st.vouchers[id] = snap
		updated = true
		return nil
	})
	return updated, err
}

func (r *voucherRepo) IncrementClaimCount(_ context.Context, id uuid.UUID, at time.Time) error {
	return r.t.with("vouchers.increment_claims", func(st *state) error {
		snap, ok := st.vouchers[id]
		if !ok {
			return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
		}
		snap.ClaimCount++
		snap.UpdatedAt = at
		st.vouchers[id] = snap
		return nil
	})
}

func (r *voucherRepo) IncrementScanCount(_ context.Context, id uuid.UUID) error {
	return r.t.with("vouchers.increment_scans", func(st *state) error {
		snap, ok := st.vouchers[id]
		if !ok {
			return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
		}
		snap.ScanCount++
		st.vouchers[id] = snap
		return nil
	})
}

func (r *voucherRepo) FindExpirable(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	var due []voucher.Snapshot
	err := r.t.with("vouchers.find_expirable", func(st *state) error {
		for _, snap := range st.vouchers {
			if snap.DeletedAt != nil || snap.ValidUntil == nil || !snap.ValidUntil.Before(now) {
				continue
			}
			switch snap.State {
			case voucher.StatusPublished, voucher.StatusClaimed, voucher.StatusRedeemed:
				due = append(due, snap)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(due, func(a, b voucher.Snapshot) int { return a.ValidUntil.Compare(*b.ValidUntil) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	ids := make([]uuid.UUID, len(due))
	for i, s := range due {
		ids[i] = s.ID
	}
	return ids, nil
}

type claimRepo struct{ t *txn }

func (r *claimRepo) InsertIfAbsent(_ context.Context, c voucher.Claim) (bool, error) {
	var inserted bool
	err := r.t.with("claims.insert", func(st *state) error {
		key := claimKey{customerID: c.CustomerID, voucherID: c.VoucherID}
		if _, exists := st.claimIndex[key]; exists {
			return nil
		}
		st.claims[c.ID] = c
		st.claimIndex[key] = c.ID
		inserted = true
		return nil
	})
	return inserted, err
}

func (r *claimRepo) FindByCustomerAndVoucher(_ context.Context, customerID, voucherID uuid.UUID) (*voucher.Claim, error) {
	var out *voucher.Claim
	err := r.t.with("claims.find", func(st *state) error {
		id, ok := st.claimIndex[claimKey{customerID: customerID, voucherID: voucherID}]
		if !ok {
			return infra.WrapRepoErr("claim not found", nil, infra.KindNotFound)
		}
		c := st.claims[id]
		out = &c
		return nil
	})
	return out, err
}

func (r *claimRepo) MarkRedeemed(_ context.Context, claimID uuid.UUID, redemptionCode *string, at time.Time) (bool, error) {
	var updated bool
	err := r.t.with("claims.mark_redeemed", func(st *state) error {
		c, ok := st.claims[claimID]
		if !ok || c.Status != voucher.ClaimStatusClaimed {
			return nil
		}
		c.Status = voucher.ClaimStatusRedeemed
		c.RedeemedAt = &at
		c.RedemptionCode = redemptionCode
		st.claims[claimID] = c
		updated = true
		return nil
	})
	return updated, err
}

type scanRepo struct{ t *txn }

func (r *scanRepo) Create(_ context.Context, s voucher.Scan) error {
	return r.t.with("scans.create", func(st *state) error {
		st.scans = append(st.scans, s)
		return nil
	})
}

type codeRepo struct{ t *txn }

func (r *codeRepo) Create(_ context.Context, c voucher.Code) error {
	return r.t.with("codes.create", func(st *state) error {
		if _, ok := st.codes[c.Code]; ok {
			return infra.WrapRepoErr("voucher code already exists", nil, infra.KindDuplicateKey)
		}
		st.codes[c.Code] = c
		return nil
	})
}

func (r *codeRepo) FindByCode(_ context.Context, code string) (*voucher.Code, error) {
	var out *voucher.Code
	err := r.t.with("codes.find", func(st *state) error {
		c, ok := st.codes[code]
		if !ok || !c.IsActive {
			return infra.WrapRepoErr("voucher code not found", nil, infra.KindNotFound)
		}
		out = &c
		return nil
	})
	return out, err
}

type bookRepo struct{ t *txn }

func (r *bookRepo) FindByID(_ context.Context, id uuid.UUID) (*voucherbook.Book, error) {
	var out *voucherbook.Book
	err := r.t.with("books.find", func(st *state) error {
		snap, ok := st.books[id]
		if !ok || snap.DeletedAt != nil {
			return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
		}
		out = voucherbook.ReconstructBook(snap)
		return nil
	})
	return out, err
}

// FindByIDForUpdate needs no row lock here: every transaction already holds
// the store mutex.
func (r *bookRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*voucherbook.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *bookRepo) Create(_ context.Context, b *voucherbook.Book) error {
	return r.t.with("books.create", func(st *state) error {
		if _, ok := st.books[b.ID()]; ok {
			return infra.WrapRepoErr("book already exists", nil, infra.KindDuplicateKey)
		}
		st.books[b.ID()] = b.Snapshot()
		return nil
	})
}

func (r *bookRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to voucherbook.Status, at time.Time) (bool, error) {
	var updated bool
	err := r.t.with("books.update_status", func(st *state) error {
		snap, ok := st.books[id]
		if !ok || snap.Status != from {
			return nil
		}
		snap.Status = to
		snap.UpdatedAt = at
		st.books[id] = snap
		updated = true
		return nil
	})
	return updated, err
}

func (r *bookRepo) AddEntry(_ context.Context, e voucherbook.Entry) (bool, error) {
	var inserted bool
	err := r.t.with("books.add_entry", func(st *state) error {
		key := entryKey{bookID: e.BookID, voucherID: e.VoucherID}
		if _, ok := st.entryIndex[key]; ok {
			return nil
		}
		st.entries[e.BookID] = append(st.entries[e.BookID], e)
		st.entryIndex[key] = struct{}{}
		inserted = true
		return nil
	})
	return inserted, err
}

func (r *bookRepo) IncrementVoucherCount(_ context.Context, id uuid.UUID, at time.Time) error {
	return r.t.with("books.increment_vouchers", func(st *state) error {
		snap, ok := st.books[id]
		if !ok {
			return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
		}
		snap.VoucherCount++
		snap.UpdatedAt = at
		st.books[id] = snap
		return nil
	})
}

func (r *bookRepo) ListEntries(_ context.Context, bookID uuid.UUID) ([]voucherbook.Entry, error) {
	var out []voucherbook.Entry
	err := r.t.with("books.list_entries", func(st *state) error {
		out = append([]voucherbook.Entry(nil), st.entries[bookID]...)
		return nil
	})
	slices.SortStableFunc(out, func(a, b voucherbook.Entry) int {
		if a.PageNumber != b.PageNumber {
			return a.PageNumber - b.PageNumber
		}
		return a.Position - b.Position
	})
	return out, err
}

type translationRepo struct{ t *txn }

func (r *translationRepo) Find(_ context.Context, voucherID uuid.UUID, lang string) (*voucher.Translation, error) {
	var out *voucher.Translation
	err := r.t.with("translations.find", func(st *state) error {
		tr, ok := st.translations[translationKey{voucherID: voucherID, lang: lang}]
		if !ok {
			return infra.WrapRepoErr("translation not found", nil, infra.KindNotFound)
		}
		out = &tr
		return nil
	})
	return out, err
}

func (r *translationRepo) Upsert(_ context.Context, tr voucher.Translation) error {
	return r.t.with("translations.upsert", func(st *state) error {
		st.translations[translationKey{voucherID: tr.VoucherID, lang: tr.Lang}] = tr
		return nil
	})
}

// Directory exposes the seeded businesses as a shared.BusinessDirectory.
type Directory struct{ store *Store }

func (s *Store) Directory() *Directory {
	return &Directory{store: s}
}

func (d *Directory) FindBusiness(_ context.Context, id uuid.UUID) (*shared.Business, error) {
	if err := d.store.injected("businesses.find"); err != nil {
		return nil, err
	}
	d.store.businessMu.RLock()
	defer d.store.businessMu.RUnlock()
	b, ok := d.store.businesses[id]
	if !ok {
		return nil, infra.WrapRepoErr("business not found", nil, infra.KindNotFound)
	}
	return &b, nil
}
