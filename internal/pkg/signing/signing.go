package signing

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"log/slog"
	"math/big"
	"os"
	"sync"

	"voucher-engine/internal/pkg/config"
	"voucher-engine/internal/pkg/errs"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// P-256 scalar size in bytes.
const CurveSize = 32

var (
	ErrKeyUnavailable     = errs.New("signing key unavailable")
	ErrInvalidKey         = errs.New("invalid signing key")
	ErrMalformedSignature = errs.New("malformed ecdsa signature")
)

// KeyPair hides where the private key lives. Sign returns an ASN.1 DER
// encoded ECDSA signature over a SHA-256 digest.
type KeyPair interface {
	Sign(digest []byte) ([]byte, error)
	PublicKey() *ecdsa.PublicKey
}

type ecdsaKeyPair struct {
	priv *ecdsa.PrivateKey
}

func NewKeyPair(priv *ecdsa.PrivateKey) KeyPair {
	return &ecdsaKeyPair{priv: priv}
}

func (k *ecdsaKeyPair) Sign(digest []byte) ([]byte, error) {
	return ecdsa.SignASN1(rand.Reader, k.priv, digest)
}

func (k *ecdsaKeyPair) PublicKey() *ecdsa.PublicKey {
	return &k.priv.PublicKey
}

func GenerateKeyPair() (KeyPair, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate P-256 key")
	}
	return NewKeyPair(priv), nil
}

// Provider hands out the process key pair. The pair is loaded on first use
// and then never replaced; a failed load is retried on the next call.
type Provider struct {
	mu   sync.Mutex
	pair KeyPair
	load func(ctx context.Context) (KeyPair, error)
}

func NewProvider(cfg config.SigningConfig, logger *slog.Logger) *Provider {
	return &Provider{
		load: func(_ context.Context) (KeyPair, error) {
			return loadFromConfig(cfg, logger)
		},
	}
}

func NewStaticProvider(pair KeyPair) *Provider {
	return &Provider{pair: pair}
}

func NewLoaderProvider(load func(ctx context.Context) (KeyPair, error)) *Provider {
	return &Provider{load: load}
}

func (p *Provider) KeyPair(ctx context.Context) (KeyPair, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pair != nil {
		return p.pair, nil
	}
	if p.load == nil {
		return nil, ErrKeyUnavailable
	}

	pair, err := p.load(ctx)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to load signing key"), ErrKeyUnavailable)
	}
	p.pair = pair
	return pair, nil
}

func loadFromConfig(cfg config.SigningConfig, logger *slog.Logger) (KeyPair, error) {
	var data []byte
	switch {
	case cfg.PrivateKeyPEM != "":
		data = []byte(cfg.PrivateKeyPEM)
	case cfg.PrivateKeyFile != "":
		b, err := os.ReadFile(cfg.PrivateKeyFile)
		if err != nil {
			return nil, errs.Wrapf(err, "failed to read key file %s", cfg.PrivateKeyFile)
		}
		data = b
	default:
		logger.Warn("no signing key configured, generating an ephemeral key; tokens will not verify after restart")
		return GenerateKeyPair()
	}

	priv, err := ParsePrivateKeyPEM(data)
	if err != nil {
		return nil, err
	}
	return NewKeyPair(priv), nil
}

// ParsePrivateKeyPEM accepts SEC 1 ("EC PRIVATE KEY") and PKCS #8 blocks.
func ParsePrivateKeyPEM(data []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errs.Mark(errs.New("no PEM block found"), ErrInvalidKey)
	}

	var priv *ecdsa.PrivateKey
	switch block.Type {
	case "EC PRIVATE KEY":
		k, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, errs.Mark(errs.Wrap(err, "failed to parse EC private key"), ErrInvalidKey)
		}
		priv = k
	case "PRIVATE KEY":
		k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, errs.Mark(errs.Wrap(err, "failed to parse PKCS8 private key"), ErrInvalidKey)
		}
		ec, ok := k.(*ecdsa.PrivateKey)
		if !ok {
			return nil, errs.Mark(errs.New("PKCS8 key is not ECDSA"), ErrInvalidKey)
		}
		priv = ec
	default:
		return nil, errs.Mark(errs.Newf("unsupported PEM block type %q", block.Type), ErrInvalidKey)
	}

	if priv.Curve != elliptic.P256() {
		return nil, errs.Mark(errs.New("signing key must use curve P-256"), ErrInvalidKey)
	}
	return priv, nil
}

// MarshalPrivateKeyPEM is the inverse of ParsePrivateKeyPEM for SEC 1 keys.
func MarshalPrivateKeyPEM(priv *ecdsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		return nil, errs.Wrap(err, "failed to marshal EC private key")
	}
	return pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}), nil
}

// DERToRaw converts an ASN.1 ECDSA signature into the fixed width r||s form
// used by JWS.
func DERToRaw(der []byte, size int) ([]byte, error) {
	var (
		r, s  big.Int
		inner cryptobyte.String
	)
	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(&r) ||
		!inner.ReadASN1Integer(&s) ||
		!inner.Empty() {
		return nil, ErrMalformedSignature
	}
	if r.Sign() <= 0 || s.Sign() <= 0 || r.BitLen() > size*8 || s.BitLen() > size*8 {
		return nil, ErrMalformedSignature
	}

	out := make([]byte, 2*size)
	r.FillBytes(out[:size])
	s.FillBytes(out[size:])
	return out, nil
}
