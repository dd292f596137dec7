package auth

import (
	"crypto/hmac"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks bearer credentials against the configured API token. The
// token may be configured in the clear or as a bcrypt digest; with a digest
// the plaintext never has to live in the environment.
type Verifier struct {
	token     string
	tokenHash string
}

// NewVerifier builds a Verifier. An empty token and hash yields a disabled
// verifier that accepts every request.
func NewVerifier(token, tokenHash string) *Verifier {
	return &Verifier{token: token, tokenHash: tokenHash}
}

// Enabled reports whether any credential is configured.
func (v *Verifier) Enabled() bool {
	return v.token != "" || v.tokenHash != ""
}

// VerifyRequest extracts the bearer token from the Authorization header and
// checks it. It returns false for a missing header, a non-bearer scheme, or a
// token mismatch.
func (v *Verifier) VerifyRequest(r *http.Request) bool {
	if !v.Enabled() {
		return true
	}

	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	return v.verify(strings.TrimPrefix(header, prefix))
}

func (v *Verifier) verify(token string) bool {
	if v.tokenHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(v.tokenHash), []byte(token)) == nil
	}
	return hmac.Equal([]byte(v.token), []byte(token))
}
