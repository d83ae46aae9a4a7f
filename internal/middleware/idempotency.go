package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// encodeCachedResponse stores the status code on the first line so a replay
// can reproduce it (a cached create must replay as 201, not 200).
func encodeCachedResponse(status int, body string) string {
	return strconv.Itoa(status) + "\n" + body
}

func decodeCachedResponse(val string) (int, string) {
	i := strings.IndexByte(val, '\n')
	if i < 0 {
		return http.StatusOK, val
	}
	status, err := strconv.Atoi(val[:i])
	if err != nil {
		return http.StatusOK, val
	}
	return status, val[i+1:]
}

type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for a repeated POST carrying the
// same Idempotency-Key from the same user. Requests without the header pass
// through untouched.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString(SessionKeyUserID)
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			status, body := decodeCachedResponse(val)
			c.Header("Idempotency-Replayed", "true")
			c.Data(status, "application/json", []byte(body))
			c.Abort()
			return
		}

		// Short-lived lock so a concurrent duplicate gets rejected instead
		// of executing twice.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this idempotency key is already in progress",
			})
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if status := writer.Status(); status >= 200 && status < 300 {
			rdb.Set(c.Request.Context(), cacheKey, encodeCachedResponse(status, writer.body.String()), idempotencyTTL)
		}
		rdb.Del(c.Request.Context(), lockKey)
	}
}
