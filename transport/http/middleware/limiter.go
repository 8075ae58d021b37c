package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"saleema/shared"
	"saleema/shared/cache"
	"saleema/shared/constant"
	"saleema/transport/http/response"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
)

// RateLimit counts requests per client IP and user agent in a fixed window
// kept in redis. Redis errors let the request through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limit := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !limit.Enable {
				next.ServeHTTP(writer, request)

				return
			}

			key := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(request), a.getUA(request))

			count, err := a.hit(request.Context(), key, limit.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(writer, request)

				return
			}

			header := writer.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.Itoa(limit.MaxRequests))
			header.Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limit.WindowSeconds))

			if count > limit.MaxRequests {
				header.Set(constant.RequestHeaderRateLimitRemaining, "0")
				header.Set(constant.RequestHeaderRetryAfter, strconv.Itoa(limit.WindowSeconds))
				response.WithRequestLimitExceeded(writer)

				return
			}

			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(limit.MaxRequests-count))
			next.ServeHTTP(writer, request)
		})
	}
}

// hit returns the request count in the current window including this one.
// A request over the limit is not stored, so a blocked client's window
// still expires on time.
func (a *appMiddleware) hit(ctx context.Context, key string, windowSeconds int) (int, error) {
	var count int

	err := a.cache.Get(ctx, key, &count)
	if err != nil && !errors.Is(err, cache.Nil) {
		return 0, fmt.Errorf("failed to read request count: %w", err)
	}

	count++

	if count > a.config.App.RateLimiter.MaxRequests {
		return count, nil
	}

	if err := a.cache.Save(ctx, key, count, windowSeconds); err != nil {
		return 0, fmt.Errorf("failed to store request count: %w", err)
	}

	return count, nil
}

func (a *appMiddleware) getUA(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != constant.Empty {
		return ua
	}

	return unknownUserAgent
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// socket address without its port.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != constant.Empty {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != constant.Empty {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
