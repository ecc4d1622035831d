package codegen

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"voucher-engine/internal/pkg/errs"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
)

// Alphabet drops 0/O, 1/I/L so codes survive being read aloud or retyped.
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	shortCodeHalf   = 4
	shortCodeLength = shortCodeHalf * 2
	staticPrefix    = "VCH-"
	staticBodyLen   = 10
)

var ErrCodeGeneration = errs.New("failed to generate random code")

type Generator struct {
	node *snowflake.Node
}

func NewGenerator(node *snowflake.Node) *Generator {
	return &Generator{node: node}
}

// ShortCode returns an 8 character code formatted as XXXX-XXXX.
func (g *Generator) ShortCode() (string, error) {
	raw, err := randomString(shortCodeLength)
	if err != nil {
		return "", err
	}
	return raw[:shortCodeHalf] + "-" + raw[shortCodeHalf:], nil
}

func (g *Generator) StaticCode() (string, error) {
	raw, err := randomString(staticBodyLen)
	if err != nil {
		return "", err
	}
	return staticPrefix + raw, nil
}

// BatchID is lexically sortable by creation time.
func (g *Generator) BatchID(t time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(t), rand.Reader)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "failed to generate batch id"), ErrCodeGeneration)
	}
	return id.String(), nil
}

func (g *Generator) ScanID() int64 {
	return g.node.Generate().Int64()
}

// NormalizeShortCode accepts a short code with or without its dash and in
// any case, and returns the canonical XXXX-XXXX form.
func NormalizeShortCode(in string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(in))
	s = strings.ReplaceAll(s, "-", "")
	if len(s) != shortCodeLength || !inAlphabet(s) {
		return "", false
	}
	return s[:shortCodeHalf] + "-" + s[shortCodeHalf:], true
}

func IsStaticCode(in string) bool {
	s := strings.ToUpper(strings.TrimSpace(in))
	if !strings.HasPrefix(s, staticPrefix) {
		return false
	}
	body := s[len(staticPrefix):]
	return len(body) == staticBodyLen && inAlphabet(body)
}

func inAlphabet(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}

func randomString(n int) (string, error) {
	max := big.NewInt(int64(len(Alphabet)))
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errs.Mark(errs.Wrap(err, "failed to read random source"), ErrCodeGeneration)
		}
		sb.WriteByte(Alphabet[idx.Int64()])
	}
	return sb.String(), nil
}
