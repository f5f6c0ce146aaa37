package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSurveyKey(t *testing.T) {
	key, err := GenerateSurveyKey(10)
	require.NoError(t, err)
	assert.Len(t, key, 10)
	for _, r := range key {
		assert.True(t, strings.ContainsRune(surveyKeyAlphabet, r), "unexpected character %q", r)
	}
}

func TestGenerateSurveyKeyVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		key, err := GenerateSurveyKey(10)
		require.NoError(t, err)
		seen[key] = true
	}
	// 50 draws from a 62^10 space should never collide.
	assert.Len(t, seen, 50)
}
