package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/itchan-dev/roadboard/shared/logger"
	"github.com/itchan-dev/roadboard/shared/middleware/ratelimiter"
)

// Limiter is satisfied by *ratelimiter.KeyedLimiter.
type Limiter interface {
	Allow(key string) bool
}

var _ Limiter = (*ratelimiter.KeyedLimiter)(nil)

// RateLimit answers 429 once the caller identified by getIdentity runs out of tokens.
func RateLimit(l Limiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				logger.Log.Error("rate limit identity", "error", err)
				http.Error(w, "Internal error", http.StatusInternalServerError)
				return
			}
			if !l.Allow(identity) {
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserIdFromContext needs NeedAuth earlier in the chain.
func GetUserIdFromContext(r *http.Request) (string, error) {
	user := GetUserFromContext(r)
	if user == nil {
		return "", errors.New("no user in context")
	}
	return strconv.FormatInt(user.Id, 10), nil
}

func GetIP(r *http.Request) (string, error) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	return host, nil
}
