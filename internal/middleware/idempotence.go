package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotenceHeader = "Idempotency-Key"
	idempotenceTTL    = 60 * time.Second
)

// Idempotence rejects a replayed POST carrying the same Idempotency-Key
// from the same credentials within idempotenceTTL. Requests without the
// header pass through untouched. A failed request releases its key so the
// client may retry.
func Idempotence(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		hdr := c.GetHeader(IdempotenceHeader)
		if hdr == "" {
			c.Next()
			return
		}

		redisKey := fmt.Sprintf("studydesk:idempotence:%s", idempotenceKey(c, hdr))
		ctx := c.Request.Context()

		acquired, err := rdb.SetNX(ctx, redisKey, "0", idempotenceTTL).Result()
		if err != nil {
			c.Next()
			return
		}
		if !acquired {
			msg := "Duplicate request, the original already succeeded"
			if val, err := rdb.Get(ctx, redisKey).Result(); (err == nil && val == "0") || errors.Is(err, redis.Nil) {
				msg = "Duplicate request, the original is still in progress"
			}
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"ok":      0,
				"code":    http.StatusConflict,
				"message": msg,
			})
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			rdb.Set(ctx, redisKey, "1", redis.KeepTTL)
		} else {
			rdb.Del(ctx, redisKey)
		}
	}
}

func idempotenceKey(c *gin.Context, hdr string) string {
	raw := c.Request.Method + "|" + c.Request.URL.Path + "|" + NormalizeToken(c.GetHeader("Authorization")) + "|" + hdr
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
