package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// HeaderAPIKey carries an API key for clients that cannot send Bearer tokens.
const HeaderAPIKey = "X-API-Key"

// publicPaths are served without credentials.
var publicPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware rejects requests without one of apiKeys, given either
// as "Authorization: Bearer <key>" or in the X-API-Key header. Blank keys are
// ignored; with no keys left the middleware is a no-op.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	keys := make([][]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, msg := credential(r)
			if msg == "" && !knownKey(keys, []byte(token)) {
				msg = "invalid api key"
			}
			if msg != "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="docq"`)
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, msg)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// credential extracts the presented key. A non-empty msg describes why
// none could be read.
func credential(r *http.Request) (token, msg string) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, rest, _ := strings.Cut(auth, " ")
		if !strings.EqualFold(scheme, "Bearer") {
			return "", "authorization header must use Bearer scheme"
		}
		return strings.TrimSpace(rest), ""
	}
	if key := r.Header.Get(HeaderAPIKey); key != "" {
		return key, ""
	}
	return "", "missing credentials"
}

// knownKey compares token against every key so timing does not reveal which one matched.
func knownKey(keys [][]byte, token []byte) bool {
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, token)
	}
	return found == 1
}
