//go:build unit

package signing_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"

	"voucher-engine/internal/pkg/config"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/pkg/signing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvider(t *testing.T) {
	t.Run("loads once under concurrent first use", func(t *testing.T) {
		var loads atomic.Int32
		p := signing.NewLoaderProvider(func(_ context.Context) (signing.KeyPair, error) {
			loads.Add(1)
			return signing.GenerateKeyPair()
		})

		var wg sync.WaitGroup
		pairs := make([]signing.KeyPair, 32)
		for i := range pairs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				kp, err := p.KeyPair(context.Background())
				assert.NoError(t, err)
				pairs[i] = kp
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), loads.Load())
		for _, kp := range pairs {
			assert.Same(t, pairs[0], kp)
		}
	})

	t.Run("failed load is retried and reported as unavailable", func(t *testing.T) {
		var calls int
		p := signing.NewLoaderProvider(func(_ context.Context) (signing.KeyPair, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("secret store down")
			}
			return signing.GenerateKeyPair()
		})

		_, err := p.KeyPair(context.Background())
		require.Error(t, err)
		assert.True(t, errs.Is(err, signing.ErrKeyUnavailable))

		kp, err := p.KeyPair(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, kp)
	})

	t.Run("configured PEM is used", func(t *testing.T) {
		priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)
		pemBytes, err := signing.MarshalPrivateKeyPEM(priv)
		require.NoError(t, err)

		p := signing.NewProvider(config.SigningConfig{PrivateKeyPEM: string(pemBytes)}, discardLogger())
		kp, err := p.KeyPair(context.Background())
		require.NoError(t, err)
		assert.True(t, priv.PublicKey.Equal(kp.PublicKey()))
	})

	t.Run("ephemeral key without configuration", func(t *testing.T) {
		p := signing.NewProvider(config.SigningConfig{}, discardLogger())
		kp, err := p.KeyPair(context.Background())
		require.NoError(t, err)
		assert.Equal(t, elliptic.P256(), kp.PublicKey().Curve)
	})

	t.Run("missing key file", func(t *testing.T) {
		p := signing.NewProvider(config.SigningConfig{PrivateKeyFile: "/nonexistent/key.pem"}, discardLogger())
		_, err := p.KeyPair(context.Background())
		assert.True(t, errs.Is(err, signing.ErrKeyUnavailable))
	})
}

func TestParsePrivateKeyPEM(t *testing.T) {
	t.Run("rejects garbage", func(t *testing.T) {
		_, err := signing.ParsePrivateKeyPEM([]byte("not a key"))
		assert.True(t, errs.Is(err, signing.ErrInvalidKey))
	})

	t.Run("rejects other curves", func(t *testing.T) {
		priv, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
		require.NoError(t, err)
		pemBytes, err := signing.MarshalPrivateKeyPEM(priv)
		require.NoError(t, err)

		_, err = signing.ParsePrivateKeyPEM(pemBytes)
		assert.True(t, errs.Is(err, signing.ErrInvalidKey))
	})
}

func TestDERToRaw(t *testing.T) {
	kp, err := signing.GenerateKeyPair()
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("payload"))
	der, err := kp.Sign(digest[:])
	require.NoError(t, err)

	raw, err := signing.DERToRaw(der, signing.CurveSize)
	require.NoError(t, err)
	require.Len(t, raw, 2*signing.CurveSize)

	r := new(big.Int).SetBytes(raw[:signing.CurveSize])
	s := new(big.Int).SetBytes(raw[signing.CurveSize:])
	assert.True(t, ecdsa.Verify(kp.PublicKey(), digest[:], r, s))

	_, err = signing.DERToRaw([]byte{0x30, 0x01, 0x00}, signing.CurveSize)
	assert.ErrorIs(t, err, signing.ErrMalformedSignature)
}
