package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"scavengr/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BodySizeLimit 先讀入整個請求體，超過 limit 時回 413，不進入 handler。
// 未帶 Content-Length 的 chunked 請求同樣受限。
func BodySizeLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		if c.Request.ContentLength > limit {
			rejectOversized(c, c.Request.ContentLength, limit)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				rejectOversized(c, c.Request.ContentLength, limit)
				return
			}
			common.LogWarn("讀取請求體失敗",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			common.WriteError(c, http.StatusBadRequest, common.MsgInvalidRequest)
			c.Abort()
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Request.ContentLength = int64(len(body))
		c.Next()
	}
}

func rejectOversized(c *gin.Context, declared, limit int64) {
	common.LogWarn("請求體超過上限",
		zap.Int64("content_length", declared),
		zap.Int64("limit", limit),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", common.RequestID(c)),
	)
	common.WriteError(c, http.StatusRequestEntityTooLarge, common.MsgBodyTooLarge)
	c.Abort()
}
