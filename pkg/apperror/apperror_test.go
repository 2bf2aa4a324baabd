package apperror

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeMissingField, http.StatusBadRequest},
		{CodeInvalidFormat, http.StatusBadRequest},
		{CodeUnknownCustomer, http.StatusBadRequest},
		{CodeUnknownProduct, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeDuplicate, http.StatusBadRequest},
		{CodeUnauthenticated, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, MetadataFor(tt.code).HTTPStatus, "status for %s", tt.code)
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_ELSE")
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
	assert.True(t, meta.ExposeCause)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection reset")
	err := Wrap(CodeInternal, cause, "load product")

	assert.True(t, stdErrors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, CodeInternal, err.Code())
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	base := New(CodeUnknownProduct, "product p-1 does not exist").WithDetail("product_id", "p-1")
	wrapped := fmt.Errorf("create order: %w", base)

	typed := As(wrapped)
	if assert.NotNil(t, typed) {
		assert.Equal(t, CodeUnknownProduct, typed.Code())
		assert.Equal(t, "p-1", typed.Details()["product_id"])
	}
	assert.True(t, HasCode(wrapped, CodeUnknownProduct))
	assert.Equal(t, CodeInternal, CodeOf(stdErrors.New("plain")))
	assert.Nil(t, As(nil))
}

func TestMessageFallsBackToPublicMessage(t *testing.T) {
	assert.Equal(t, "access denied", New(CodeForbidden, "").Message())
}
