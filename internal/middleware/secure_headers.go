package middleware

import (
	"github.com/gin-gonic/gin"
)

// sent on every response; listing images are served cross-origin from the CDN
var baseHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Cross-Origin-Resource-Policy", "cross-origin"},
}

const hstsValue = "max-age=31536000; includeSubDomains"

// SecureHeaders sets the browser hardening headers. HSTS is only sent when
// hsts is set, since development runs over plain HTTP on localhost.
func SecureHeaders(hsts bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range baseHeaders {
			c.Header(h[0], h[1])
		}
		if hsts {
			c.Header("Strict-Transport-Security", hstsValue)
		}
		c.Next()
	}
}
