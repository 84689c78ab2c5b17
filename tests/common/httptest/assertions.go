//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorBody mirrors httperr.Response as clients see it.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail map[string]string `json:"detail"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "status mismatch, body: %s", w.Body.String()) {
		return
	}
	if targetStruct != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "failed to decode response JSON: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and, when expectedErrorMsg is set, that the public message contains it.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	body := decodeError(t, w, expectedStatus)
	if expectedErrorMsg != "" {
		assert.Contains(t, body.Error.Message, expectedErrorMsg, "response error message doesn't contain expected text")
	}
}

// AssertFieldErrors checks the field -> failed tag detail of a binding error.
func AssertFieldErrors(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expected map[string]string) {
	t.Helper()

	body := decodeError(t, w, expectedStatus)
	assert.Equal(t, expected, body.Detail)
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) errorBody {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "status mismatch, body: %s", w.Body.String())

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "failed to decode error response JSON: %s", w.Body.String())
	return body
}
