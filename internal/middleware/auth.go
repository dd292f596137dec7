package middleware

import (
	"net/http"

	"graze/internal/api"
	"graze/internal/auth"
)

// Auth requires a valid bearer token on the protected path prefixes and
// passes everything else through untouched.
func Auth(verifier *auth.Verifier, protected []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isProtected(r.URL.Path, protected) {
			next.ServeHTTP(w, r)
			return
		}

		if !verifier.VerifyRequest(r) {
			api.WriteError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isProtected(path string, protected []string) bool {
	for _, p := range protected {
		if path == p || (len(path) > len(p) && path[:len(p)+1] == p+"/") {
			return true
		}
	}
	return false
}
