package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/apperror"
)

func TestParseQueryInt(t *testing.T) {
	v, err := ParseQueryInt("", "page", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = ParseQueryInt(" 7 ", "page", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = ParseQueryInt("0", "page", 1, 1)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidFormat))

	_, err = ParseQueryInt("two", "limit", 10, 1)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidFormat))
}

func TestParseQueryFloat(t *testing.T) {
	v, err := ParseQueryFloat("", "minPrice")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseQueryFloat("12.5", "minPrice")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 12.5, *v)

	for _, raw := range []string{"abc", "NaN", "Inf"} {
		_, err = ParseQueryFloat(raw, "maxPrice")
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidFormat), raw)
	}
}
