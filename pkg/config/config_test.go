package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rema-viva-landing/pkg/countdown"
	"rema-viva-landing/pkg/models"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "RELAY_TIMEOUT", "ALLOWED_ORIGINS", "DEDUPE_TTL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 10*time.Second, cfg.RelayTimeout)
	assert.Equal(t, 10*time.Minute, cfg.DedupeTTL)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("RELAY_TIMEOUT", "3s")
	t.Setenv("DEDUPE_TTL", "nonsense")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3*time.Second, cfg.RelayTimeout)
	assert.Equal(t, 10*time.Minute, cfg.DedupeTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestDefaultSite(t *testing.T) {
	t.Parallel()

	site, err := LoadSite("")
	require.NoError(t, err)

	assert.Len(t, site.Products, 2)
	assert.Equal(t, 1500*time.Millisecond, site.Submission.RedirectDelay)
	assert.Equal(t, 100*time.Millisecond, site.Submission.FocusDelay)

	initial, err := site.CountdownInitial()
	require.NoError(t, err)
	assert.Equal(t, countdown.State{Hours: 23, Minutes: 45, Seconds: 30}, initial)

	tc := site.CountdownTimerConfig()
	assert.Equal(t, countdown.ModeWrap, tc.Mode)
	assert.Equal(t, countdown.DefaultRestart, tc.Restart)
}

func TestRedirectFor(t *testing.T) {
	t.Parallel()

	site, err := LoadSite("")
	require.NoError(t, err)

	free, err := site.RedirectFor(models.KindFree, "")
	require.NoError(t, err)
	assert.Equal(t, models.RedirectDocument, free.Kind)
	assert.Equal(t, site.FreeLesson.DocumentURL, free.URL)

	kit, err := site.RedirectFor(models.KindPaid, "kit3")
	require.NoError(t, err)
	assert.Equal(t, "https://mpago.la/2AP2zxE", kit.URL)

	serie, err := site.RedirectFor(models.KindPaid, "serie1")
	require.NoError(t, err)
	assert.NotEqual(t, kit.URL, serie.URL)

	_, err = site.RedirectFor(models.KindPaid, "kit9")
	assert.ErrorIs(t, err, ErrUnknownProduct)

	_, err = site.RedirectFor("outro", "")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseSiteRejectsBrokenCatalog(t *testing.T) {
	t.Parallel()

	base := `
free_lesson: {document_url: "https://example.com/doc.pdf"}
countdown: {initial: "01:00:00"}
`
	tests := map[string]string{
		"no products": base,
		"duplicate kind": base + `
products:
  - {kind: a, name: A, price_label: "R$ 1", checkout_url: "https://pay/a"}
  - {kind: a, name: B, price_label: "R$ 2", checkout_url: "https://pay/b"}
`,
		"missing checkout": base + `
products:
  - {kind: a, name: A, price_label: "R$ 1"}
`,
		"bad countdown": `
free_lesson: {document_url: "https://example.com/doc.pdf"}
countdown: {initial: "25:00:00"}
products:
  - {kind: a, name: A, price_label: "R$ 1", checkout_url: "https://pay/a"}
`,
		"bad mode": `
free_lesson: {document_url: "https://example.com/doc.pdf"}
countdown: {initial: "01:00:00", mode: bounce}
products:
  - {kind: a, name: A, price_label: "R$ 1", checkout_url: "https://pay/a"}
`,
	}

	for name, doc := range tests {
		_, err := ParseSite([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoadSiteFromFileAndEnvOverride(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "site.yaml")
	doc := `
free_lesson: {document_url: "https://example.com/doc.pdf"}
countdown: {initial: "00:00:10", mode: halt}
submission: {endpoint: "https://script.example/exec"}
products:
  - {kind: kit3, name: Kit, price_label: "R$ 49,90", checkout_url: "https://pay/kit3"}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	site, err := LoadSite(path)
	require.NoError(t, err)
	assert.Equal(t, countdown.ModeHalt, site.CountdownTimerConfig().Mode)

	site.ApplyEnv(&Config{AppScriptURL: "https://override/exec", GTMContainerID: "GTM-TEST"})
	assert.Equal(t, "https://override/exec", site.Submission.Endpoint)
	assert.Equal(t, "GTM-TEST", site.Analytics.GTMContainerID)

	_, err = LoadSite(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
