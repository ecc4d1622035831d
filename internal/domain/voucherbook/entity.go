package voucherbook

import (
	"strings"
	"time"

	"voucher-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound      = errs.Define(errs.ErrResourceNotFound, "voucher book not found")
	ErrInvalidStatus     = errs.Define(errs.ErrValidation, "unknown book status")
	ErrInvalidMonth      = errs.Define(errs.ErrValidation, "month must be between 1 and 12")
	ErrInvalidYear       = errs.Define(errs.ErrValidation, "year is out of range")
	ErrInvalidPages      = errs.Define(errs.ErrValidation, "total pages cannot be negative")
	ErrInvalidPageNumber = errs.Define(errs.ErrValidation, "page number is outside the book")
	ErrInvalidTransition = errs.Define(errs.ErrBusinessRuleViolation, "invalid book state transition")
	ErrNotReady          = errs.Define(errs.ErrBusinessRuleViolation, "book is missing required fields")
	ErrNotEditable       = errs.Define(errs.ErrBusinessRuleViolation, "book entries can only change while in draft")
	ErrDuplicateEntry    = errs.Define(errs.ErrBusinessRuleViolation, "voucher is already placed in this book")
)

const (
	minYear = 2000
	maxYear = 2100
)

type Book struct {
	id            uuid.UUID
	title         string
	description   string
	edition       string
	month         int
	year          int
	status        Status
	totalPages    int
	voucherCount  int
	coverImageURL *string
	backImageURL  *string
	pdfURL        *string
	createdAt     time.Time
	updatedAt     time.Time
	deletedAt     *time.Time
}

type NewBookParams struct {
	Title         string
	Description   string
	Edition       string
	Month         int
	Year          int
	TotalPages    int
	CoverImageURL *string
	BackImageURL  *string
}

// NewBook accepts incomplete books; completeness is enforced when the book
// moves towards print.
func NewBook(id uuid.UUID, p NewBookParams, now time.Time) (*Book, error) {
	if p.Month != 0 && (p.Month < 1 || p.Month > 12) {
		return nil, ErrInvalidMonth
	}
	if p.Year != 0 && (p.Year < minYear || p.Year > maxYear) {
		return nil, errs.Reason(ErrInvalidYear, "year %d is out of range", p.Year)
	}
	if p.TotalPages < 0 {
		return nil, ErrInvalidPages
	}
	return &Book{
		id:            id,
		title:         strings.TrimSpace(p.Title),
		description:   strings.TrimSpace(p.Description),
		edition:       strings.TrimSpace(p.Edition),
		month:         p.Month,
		year:          p.Year,
		status:        StatusDraft,
		totalPages:    p.TotalPages,
		coverImageURL: p.CoverImageURL,
		backImageURL:  p.BackImageURL,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type Snapshot struct {
	ID            uuid.UUID
	Title         string
	Description   string
	Edition       string
	Month         int
	Year          int
	Status        Status
	TotalPages    int
	VoucherCount  int
	CoverImageURL *string
	BackImageURL  *string
	PDFURL        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

func ReconstructBook(s Snapshot) *Book {
	return &Book{
		id:            s.ID,
		title:         s.Title,
		description:   s.Description,
		edition:       s.Edition,
		month:         s.Month,
		year:          s.Year,
		status:        s.Status,
		totalPages:    s.TotalPages,
		voucherCount:  s.VoucherCount,
		coverImageURL: s.CoverImageURL,
		backImageURL:  s.BackImageURL,
		pdfURL:        s.PDFURL,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		deletedAt:     s.DeletedAt,
	}
}

func (b *Book) Snapshot() Snapshot {
	return Snapshot{
		ID:            b.id,
		Title:         b.title,
		Description:   b.description,
		Edition:       b.edition,
		Month:         b.month,
		Year:          b.year,
		Status:        b.status,
		TotalPages:    b.totalPages,
		VoucherCount:  b.voucherCount,
		CoverImageURL: b.coverImageURL,
		BackImageURL:  b.backImageURL,
		PDFURL:        b.pdfURL,
		CreatedAt:     b.createdAt,
		UpdatedAt:     b.updatedAt,
		DeletedAt:     b.deletedAt,
	}
}

// ReadinessCheck lists every missing or invalid field so a caller can
// render a checklist.
type ReadinessCheck struct {
	Allowed        bool
	RequiredFields []string
}

func ValidateReadyForPublication(b *Book) ReadinessCheck {
	var missing []string
	if b.title == "" {
		missing = append(missing, "title")
	}
	if b.description == "" {
		missing = append(missing, "description")
	}
	if b.month == 0 {
		missing = append(missing, "month")
	}
	if b.year == 0 {
		missing = append(missing, "year")
	}
	if b.totalPages < 1 {
		missing = append(missing, "totalPages")
	}
	if b.voucherCount < 1 {
		missing = append(missing, "voucherCount")
	}
	return ReadinessCheck{Allowed: len(missing) == 0, RequiredFields: missing}
}

// TransitionTo applies the table and, for print-facing targets, readiness.
func (b *Book) TransitionTo(target Status, now time.Time) error {
	check := ValidateTransition(b.status, target)
	if !check.Allowed {
		return errs.Reason(ErrInvalidTransition, "%s", check.Reason)
	}
	if target.RequiresReadiness() {
		if r := ValidateReadyForPublication(b); !r.Allowed {
			return errs.Reason(ErrNotReady, "book is missing required fields: %s", strings.Join(r.RequiredFields, ", "))
		}
	}
	b.status = target
	b.updatedAt = now
	return nil
}

func (b *Book) ValidateNewEntry(pageNumber int) error {
	if b.status != StatusDraft {
		return errs.Reason(ErrNotEditable, "book is %s; entries can only change while in draft", b.status)
	}
	if pageNumber < 1 || (b.totalPages > 0 && pageNumber > b.totalPages) {
		return errs.Reason(ErrInvalidPageNumber, "page %d is outside 1..%d", pageNumber, b.totalPages)
	}
	return nil
}

func (b *Book) IsDeleted() bool { return b.deletedAt != nil }

func (b *Book) ID() uuid.UUID            { return b.id }
func (b *Book) Title() string            { return b.title }
func (b *Book) Description() string      { return b.description }
func (b *Book) Edition() string          { return b.edition }
func (b *Book) Month() int               { return b.month }
func (b *Book) Year() int                { return b.year }
func (b *Book) Status() Status           { return b.status }
func (b *Book) TotalPages() int          { return b.totalPages }
func (b *Book) VoucherCount() int        { return b.voucherCount }
func (b *Book) CoverImageURL() *string   { return b.coverImageURL }
func (b *Book) BackImageURL() *string    { return b.backImageURL }
func (b *Book) PDFURL() *string          { return b.pdfURL }
func (b *Book) CreatedAt() time.Time     { return b.createdAt }
func (b *Book) UpdatedAt() time.Time     { return b.updatedAt }
func (b *Book) DeletedAt() *time.Time    { return b.deletedAt }

type Entry struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	VoucherID  uuid.UUID
	PageNumber int
	Position   int
	CreatedAt  time.Time
}
