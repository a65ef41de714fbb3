package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raster-editor/internal/domain"
)

func TestParseColor(t *testing.T) {
	c, err := domain.ParseColor("Z")
	require.NoError(t, err)
	assert.Equal(t, domain.Color('Z'), c)
	assert.Equal(t, "Z", c.String())

	for _, token := range []string{"", "z", "AB", "1", "#"} {
		_, err := domain.ParseColor(token)
		assert.True(t, errors.Is(err, domain.ErrInvalidColor), "token %q 应被拒绝", token)
	}
}

func TestBlankIsValid(t *testing.T) {
	assert.True(t, domain.Blank.Valid())
	assert.Equal(t, "O", domain.Blank.String())
}

func TestTagMutates(t *testing.T) {
	for _, tag := range []domain.Tag{domain.TagClear, domain.TagPixel, domain.TagVertical, domain.TagHorizontal, domain.TagRect, domain.TagFill} {
		assert.True(t, tag.Mutates(), "%s 应修改画布", tag)
	}
	for _, tag := range []domain.Tag{domain.TagInit, domain.TagSave, domain.TagExit} {
		assert.False(t, tag.Mutates(), "%s 不应修改画布", tag)
	}
}
