package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	out, err := ToHTML("**Workout Plan**\n\n- squats\n- deadlifts")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Workout Plan</strong>")
	assert.Contains(t, out, "<li>squats</li>")
}

func TestToHTMLEscapesRawHTML(t *testing.T) {
	out, err := ToHTML(`hello <script>alert(1)</script>`)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}
