package token

import (
	"crypto/sha256"

	"voucher-engine/internal/pkg/signing"

	"github.com/golang-jwt/jwt/v5"
)

// keyPairMethod signs ES256 through a signing.KeyPair so the private key
// never has to be handed to the jwt library. Verification is the stock
// ES256 implementation against the public key.
type keyPairMethod struct{}

var signingMethodKeyPair jwt.SigningMethod = &keyPairMethod{}

func (m *keyPairMethod) Alg() string {
	return jwt.SigningMethodES256.Alg()
}

func (m *keyPairMethod) Sign(signingString string, key any) ([]byte, error) {
	kp, ok := key.(signing.KeyPair)
	if !ok {
		return nil, jwt.ErrInvalidKeyType
	}

	digest := sha256.Sum256([]byte(signingString))
	der, err := kp.Sign(digest[:])
	if err != nil {
		return nil, err
	}
	return signing.DERToRaw(der, signing.CurveSize)
}

func (m *keyPairMethod) Verify(signingString string, sig []byte, key any) error {
	return jwt.SigningMethodES256.Verify(signingString, sig, key)
}
