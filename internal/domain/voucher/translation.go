package voucher

import (
	"strings"

	"github.com/google/uuid"
)

// Translation holds the localized copy of a voucher's user-facing text.
type Translation struct {
	VoucherID   uuid.UUID
	Lang        string
	Title       string
	Description string
}

// NormalizeLang reduces a tag like "de-AT" or "DE_at" to its primary subtag.
func NormalizeLang(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return tag
}
