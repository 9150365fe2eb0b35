package httpapi

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adijith/HotelManagement/internal/errs"
	"github.com/adijith/HotelManagement/internal/token"
)

const claimsKey = "hm.claims"

// RequestLogger logs one structured line per request: metadata only, never
// bodies or tokens.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("peer", c.ClientIP()),
		)
	}
}

// Recovery converts panics into a 500 response and logs the stack.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Message: "Internal server error"})
			}
		}()
		c.Next()
	}
}

// BearerAuth validates the Authorization header on protected routes and stores
// the verified claims in the request context. An expired token and an invalid
// one get the same external response; the distinction is kept for logs.
func BearerAuth(tokens *token.Manager, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "Access denied"})
			return
		}
		claims, err := tokens.Validate(raw)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, errs.ErrTokenExpired) {
				reason = "expired"
			}
			log.Info("auth rejected",
				zap.String("reason", reason),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "Access denied"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFromCtx fetches the validated token claims stored by BearerAuth.
func ClaimsFromCtx(c *gin.Context) (*token.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*token.Claims)
	return claims, ok
}

func bearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errs.ErrTokenInvalid
	}
	return parts[1], nil
}
