package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		got, err := ExtractJSON(`{"title":"Pasta"}`)
		require.NoError(t, err)
		assert.Equal(t, `{"title":"Pasta"}`, got)
	})

	t.Run("object wrapped in prose", func(t *testing.T) {
		content := "Sure! Here is your recipe:\n```json\n{\"title\":\"Pasta\"}\n```\nEnjoy!"
		got, err := ExtractJSON(content)
		require.NoError(t, err)
		assert.Equal(t, `{"title":"Pasta"}`, got)
	})

	t.Run("nested braces span the full object", func(t *testing.T) {
		content := `prefix {"a":{"b":1},"c":2} suffix`
		got, err := ExtractJSON(content)
		require.NoError(t, err)
		assert.Equal(t, `{"a":{"b":1},"c":2}`, got)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := ExtractJSON("no json here")
		assert.ErrorIs(t, err, ErrNoJSON)
	})

	t.Run("closing brace before opening", func(t *testing.T) {
		_, err := ExtractJSON("} oops {")
		assert.ErrorIs(t, err, ErrNoJSON)
	})
}
