package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	out, err := r.Render("Fundamentado nas **Escrituras**.\n\n- um\n- dois\n")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<strong>Escrituras</strong>")
	assert.Contains(t, html, "<li>um</li>")
}

func TestRenderStripsScripts(t *testing.T) {
	t.Parallel()

	out, err := NewRenderer().Render("oi <script>alert(1)</script> [site](https://example.com)")
	require.NoError(t, err)

	html := string(out)
	assert.NotContains(t, html, "<script")
	assert.Contains(t, html, `href="https://example.com"`)
	assert.True(t, strings.Contains(html, `target="_blank"`))
}

func TestRenderAll(t *testing.T) {
	t.Parallel()

	out, err := NewRenderer().RenderAll([]string{"a", "*b*"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Contains(t, string(out[1]), "<em>b</em>")
}
