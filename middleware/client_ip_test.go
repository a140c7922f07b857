package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded chain uses first hop", "203.0.113.7, 10.0.0.1", "", "10.0.0.2:4455", "203.0.113.7"},
		{"forwarded single entry", " 203.0.113.9 ", "", "10.0.0.2:4455", "203.0.113.9"},
		{"real ip beats remote addr", "", "198.51.100.4", "10.0.0.2:4455", "198.51.100.4"},
		{"remote addr strips port", "", "", "192.0.2.10:8080", "192.0.2.10"},
		{"remote addr without port", "", "", "192.0.2.11", "192.0.2.11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			c.Request.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				c.Request.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				c.Request.Header.Set("X-Real-IP", tt.realIP)
			}

			assert.Equal(t, tt.want, clientIP(c))
		})
	}
}
