package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrSignatureMismatch is returned when a payment callback's signature does
// not match the locally recomputed one. The order is left untouched.
var ErrSignatureMismatch = errors.New("payment signature mismatch")

// PaymentSignatureVerifier verifies payment-provider callbacks locally. The
// provider signs the pair of its order reference and the payment reference
// with a shared secret; reconciliation recomputes the same keyed hash and
// compares in constant time, so authenticity never depends on a round trip
// to the provider.
type PaymentSignatureVerifier struct {
	secret []byte
}

// NewPaymentSignatureVerifier creates a verifier with the provider's shared
// secret.
func NewPaymentSignatureVerifier(secret string) PaymentSignatureVerifier {
	return PaymentSignatureVerifier{secret: []byte(secret)}
}

// Sign computes the expected hex-encoded HMAC-SHA256 signature over
// "providerOrderRef|paymentRef". Exposed for tests and for building
// provider-side fixtures.
func (v PaymentSignatureVerifier) Sign(providerOrderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(providerOrderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares the supplied signature against the recomputed one.
// Returns ErrSignatureMismatch when they differ.
func (v PaymentSignatureVerifier) Verify(providerOrderRef, paymentRef, signature string) error {
	expected := v.Sign(providerOrderRef, paymentRef)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}
