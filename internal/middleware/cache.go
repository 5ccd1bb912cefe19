package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-pms/internal/config"
)

// cachedResponse is the envelope stored in Redis for a cached reply.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// captureWriter tees the handler's response body so it can be stored
// after the request completes.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}

// NewRedisCache returns a read-through response cache for idempotent
// endpoints such as the front-desk dashboard and availability search.
// Only successful responses are stored, and the cache key includes the
// hotel ID so tenants never share entries.  Redis failures fall
// through to the handler.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[c.Request().Method] {
				return next(c)
			}

			key := cacheKeyFrom(cfg, c)
			ctx := c.Request().Context()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cr cachedResponse
				if json.Unmarshal(raw, &cr) == nil {
					c.Response().Header().Set("X-Cache", "HIT")
					if cr.ContentType != "" {
						c.Response().Header().Set(echo.HeaderContentType, cr.ContentType)
					}
					return c.Blob(cr.Status, cr.ContentType, cr.Body)
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status != http.StatusOK || cw.buf.Len() == 0 || cw.buf.Len() > cfg.MaxBodyBytes {
				return nil
			}
			cr := cachedResponse{
				Status:      cw.status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        cw.buf.Bytes(),
			}
			if payload, err := json.Marshal(cr); err == nil {
				// Best effort; a failed SET just means the next request
				// hits the handler again.
				rdb.Set(ctx, key, payload, cfg.TTL)
			}
			return nil
		}
	}
}

// cacheKeyFrom builds the Redis key for a request.  The default
// "hotel_route_query" strategy keys on tenant, method, path and the
// sorted query string; "hotel_route_user" swaps the query for the user
// so per-user views cache separately.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
	parts := []string{cfg.Prefix, "hotel", currentHotelID(c), c.Request().Method, c.Request().URL.Path}

	switch strings.ToLower(cfg.KeyStrategy) {
	case "hotel_route":
		// Nothing beyond the path.
	case "hotel_route_user":
		parts = append(parts, "user", currentUserKey(c))
	default: // "hotel_route_query"
		parts = append(parts, "q", normalizedQuery(c))
	}

	// Hash the variable tail so keys stay short and Redis-safe.
	sum := sha256.Sum256([]byte(strings.Join(parts[2:], "|")))
	return parts[0] + ":" + parts[1] + ":" + hex.EncodeToString(sum[:16])
}

func normalizedQuery(c echo.Context) string {
	q := c.Request().URL.Query()
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		vals := append([]string(nil), q[k]...)
		sort.Strings(vals)
		for _, v := range vals {
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
			b.WriteByte('&')
		}
	}
	return b.String()
}
