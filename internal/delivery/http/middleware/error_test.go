package middleware

import (
	"errors"
	"testing"

	"jobni/internal/domain/apperr"
	"jobni/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"invalid", apperr.New(apperr.ErrInvalid, "Rating must be between 1 and 5"), 400, "Rating must be between 1 and 5"},
		{"unauthorized", apperr.New(apperr.ErrUnauthorized, "Not authenticated"), 401, "Not authenticated"},
		{"forbidden", apperr.New(apperr.ErrForbidden, "Not authorized"), 403, "Not authorized"},
		{"not found", apperr.New(apperr.ErrNotFound, "Job not found"), 404, "Job not found"},
		{"conflict", apperr.New(apperr.ErrConflict, "Already applied to this job"), 409, "Already applied to this job"},
		{"internal hides cause", apperr.Internal(errors.New("pq: connection refused")), 500, response.MessageInternalServerError},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), 405, "nope"},
		{"plain error", errors.New("boom"), 500, response.MessageInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, detail := NormalizeError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.detail, detail)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	tok, ok = BearerToken("bearer   xyz ")
	assert.True(t, ok)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Bearer", "Basic abc", "Bearer  "} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}
