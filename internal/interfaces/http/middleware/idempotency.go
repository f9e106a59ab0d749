package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time the lock is held while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long the cached response is kept
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

type responseRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// cachedResponse is the stored replay payload. The status code is kept
// so a replayed 201 comes back as a 201.
type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// IdempotencyMiddleware replays the cached response for a repeated
// Idempotency-Key instead of processing the request twice. Opt-in:
// requests without the header pass straight through. Keys are scoped
// per user, so it must run after AuthMiddleware.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, _ := GetUserID(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s", userID, key)
		ctx := c.Request.Context()

		val, err := redis.Get(ctx, storageKey)
		if err == nil {
			if val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"code":  domainerrors.CodeConflict,
					"error": "Request already in progress",
				})
				return
			}

			var cached cachedResponse
			if err := json.Unmarshal([]byte(val), &cached); err != nil || cached.Status == 0 {
				cached = cachedResponse{Status: http.StatusOK, Body: val}
			}

			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(cached.Status, cached.Body)
			c.Abort()
			return
		}
		if !errors.Is(err, goredis.Nil) {
			// Redis is down; process without the guard rather than
			// failing the request.
			c.Next()
			return
		}

		acquired, err := redis.SetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":  domainerrors.CodeConflict,
				"error": "Request already in progress",
			})
			return
		}

		w := &responseRecorder{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			cached, _ := json.Marshal(cachedResponse{Status: status, Body: w.body.String()})
			_ = redis.Set(ctx, storageKey, string(cached), RetentionDuration)
		} else {
			// Drop the lock so the client can retry
			_ = redis.Del(ctx, storageKey)
		}
	}
}
