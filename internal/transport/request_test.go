package transport

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kindergarten/rollcall/pkg/errors"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request: &http.Request{
			Method: http.MethodGet,
			URL:    &url.URL{Path: "/api/children/"},
		},
	}
}

func TestDecodeResponseErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		is      error
	}{
		{"detail string", 403, `{"detail":"Not enough permissions"}`, "Not enough permissions", pkgerrors.ErrForbidden},
		{"validation list", 422, `{"detail":[{"loc":["query","group_id"],"msg":"field required","type":"value_error.missing"}]}`, "group_id: field required", pkgerrors.ErrInvalidInput},
		{"message field", 400, `{"message":"bad date"}`, "bad date", pkgerrors.ErrInvalidInput},
		{"plain text", 502, "upstream down", "upstream down", pkgerrors.ErrUnavailable},
		{"html page", 503, "<html>maintenance</html>", "", pkgerrors.ErrUnavailable},
		{"unauthorized", 401, `{"detail":"Could not validate credentials"}`, "Could not validate credentials", pkgerrors.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DecodeResponse(response(tt.status, tt.body), nil)

			var apiErr *pkgerrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, "GET /api/children/", apiErr.Endpoint)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestDecodeResponseSuccess(t *testing.T) {
	var out []map[string]any
	require.NoError(t, DecodeResponse(response(200, `[{"id":1}]`), &out))
	assert.Len(t, out, 1)

	require.NoError(t, DecodeResponse(response(204, ""), &out))

	err := DecodeResponse(response(200, `{broken`), &out)
	var parseErr *pkgerrors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestErrorMessageTruncation(t *testing.T) {
	t.Run("ascii", func(t *testing.T) {
		msg := errorMessage([]byte(strings.Repeat("x", 600)))
		assert.Len(t, msg, maxErrorBody)
	})

	t.Run("keeps multibyte characters whole", func(t *testing.T) {
		// "a" shifts every two-byte rune so the limit falls inside one.
		msg := errorMessage([]byte("a" + strings.Repeat("ж", 300)))
		assert.True(t, utf8.ValidString(msg))
		assert.Len(t, msg, maxErrorBody-1)
		assert.Equal(t, "a"+strings.Repeat("ж", 255), msg)
	})
}
