package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_NotBlank(t *testing.T) {
	assert.NoError(t, Validate.Var("x", "notblank"))
	assert.Error(t, Validate.Var("   ", "notblank"))
	assert.Error(t, Validate.Var("", "notblank"))
}

func TestValidate_Priority(t *testing.T) {
	for _, p := range []string{"low", "medium", "high"} {
		assert.NoError(t, Validate.Var(p, "priority"), p)
	}
	assert.Error(t, Validate.Var("urgent", "priority"))
	assert.NoError(t, Validate.Var("", "omitempty,priority"))
}

func TestValidate_MaxCountsCharacters(t *testing.T) {
	// 255 two-byte runes are 510 bytes but still within max=255
	assert.NoError(t, Validate.Var(strings.Repeat("é", 255), "max=255"))
	assert.Error(t, Validate.Var(strings.Repeat("a", 256), "max=255"))
}
