package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"rentwheels/shared"
	"rentwheels/shared/cache"
	"rentwheels/shared/constant"
	"rentwheels/transport/http/response"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
)

// RateLimit is a fixed-window counter per client address and user agent kept
// in Redis. Requests pass through untouched when Redis cannot be reached.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limits := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limits.Enable {
				next.ServeHTTP(w, r)

				return
			}

			key := limiterKey(r)

			count, err := a.hit(r, key)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Rate limiter unavailable, letting request through")
				next.ServeHTTP(w, r)

				return
			}

			if count > limits.MaxRequests {
				w.Header().Set("Retry-After", strconv.Itoa(limits.WindowSeconds))
				response.WithRequestLimitExceeded(w)

				return
			}

			if err := a.cache.Save(r.Context(), key, count, limits.WindowSeconds); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Failed to store rate limit counter")
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limits.MaxRequests-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

			next.ServeHTTP(w, r)
		})
	}
}

// hit returns the request count of the current window including this request.
func (a *appMiddleware) hit(r *http.Request, key string) (int, error) {
	var count int

	err := a.cache.Get(r.Context(), key, &count)
	if errors.Is(err, cache.Nil) {
		return 1, nil
	}

	if err != nil {
		return 0, err
	}

	return count + 1, nil
}

func limiterKey(r *http.Request) string {
	userAgent := r.Header.Get(constant.RequestHeaderUserAgent)
	if userAgent == "" {
		userAgent = unknownUserAgent
	}

	return shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent)
}

// clientIP relies on chi's RealIP middleware having already rewritten
// RemoteAddr from the proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
