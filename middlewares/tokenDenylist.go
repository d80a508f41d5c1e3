package middlewares

import (
	"sync"
	"time"
)

var (
	revokedTokens = make(map[string]time.Time)
	revokedMu     sync.Mutex
)

// RevokeToken rejects the token with id jti until it would have expired
// on its own.
func RevokeToken(jti string, until time.Time) {
	revokedMu.Lock()
	defer revokedMu.Unlock()

	now := time.Now()
	for id, exp := range revokedTokens {
		if now.After(exp) {
			delete(revokedTokens, id)
		}
	}
	revokedTokens[jti] = until
}

func IsTokenRevoked(jti string) bool {
	revokedMu.Lock()
	defer revokedMu.Unlock()

	until, ok := revokedTokens[jti]
	return ok && time.Now().Before(until)
}
