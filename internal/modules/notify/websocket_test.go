package notify

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed_NoHeaderAdmitted(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws", nil)
	assert.True(t, originAllowed(req))
}

func TestOriginAllowed_DevOriginAdmitted(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, originAllowed(req))
}

func TestOriginAllowed_UnknownOriginRejected(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, originAllowed(req))
}

func TestOriginAllowed_EnvOriginAdmitted(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "https://app.example.com")
	assert.True(t, originAllowed(req))

	req.Header.Set("Origin", "https://staging.example.com")
	assert.True(t, originAllowed(req))
}
