package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Sanitization:
// - Path separators and punctuation become single underscores
// - Leading digits get a protective prefix
// - Empty or fully-stripped input falls back to a fixed token
// - Length is capped
// - sanitizeID(sanitizeID(s)) == sanitizeID(s) for hostile inputs
// - Labels drop quotes, newlines, and backslashes but keep word text

func TestSanitizeID_Basics(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "src_components_App_jsx", SanitizeID("src/components/App.jsx"))
	assert.Equal(t, "a_b", SanitizeID("a---b"))
	assert.Equal(t, "node", SanitizeID(""))
	assert.Equal(t, "node", SanitizeID("///..."))
	assert.Equal(t, "n_3rdParty", SanitizeID("3rdParty"))
	assert.Equal(t, "trimmed", SanitizeID("_trimmed_"))
}

func TestSanitizeID_LengthCap(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("abc/", 100)
	assert.LessOrEqual(t, len(SanitizeID(long)), maxIDLength)
}

func TestSanitizeID_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain",
		"src/pages/Home.vue",
		"3-start-with-digit",
		"__many___underscores__",
		"weird!@#$%^&*()chars",
		strings.Repeat("x.y/", 50),
		"ünïcode/påth.js",
		"_",
		"....",
	}
	for _, in := range inputs {
		once := SanitizeID(in)
		assert.Equal(t, once, SanitizeID(once), "input %q", in)
	}
}

func TestSanitizeLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "App.jsx", SanitizeLabel("App.jsx"))
	assert.Equal(t, "say hi", SanitizeLabel("say \"hi\"\n"))
	assert.Equal(t, "backslash", SanitizeLabel(`back\slash`))
	assert.Equal(t, "render()", SanitizeLabel("render()"))
	assert.Equal(t, "", SanitizeLabel("\"'\\\n"))
}

func TestSanitizeLabel_LengthCap(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 40)
	assert.LessOrEqual(t, len(SanitizeLabel(long)), maxLabelLength)
}
