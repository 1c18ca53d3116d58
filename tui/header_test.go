package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWordmark(t *testing.T) {
	rows := buildWordmark(wordmark)

	t.Run("every letter has a glyph", func(t *testing.T) {
		for _, ch := range wordmark {
			_, ok := glyphs[ch]
			assert.True(t, ok, "missing glyph for %q", ch)
		}
	})

	t.Run("rows have equal width", func(t *testing.T) {
		w := ansi.StringWidth(rows[0])
		assert.Equal(t, w, ansi.StringWidth(rows[1]))
		assert.Equal(t, w, ansi.StringWidth(rows[2]))
	})

	t.Run("unknown runes are skipped", func(t *testing.T) {
		rows := buildWordmark("C?")
		assert.Equal(t, "  "+glyphs['C'].Top, rows[0])
	})
}

func TestRenderBanner(t *testing.T) {
	t.Run("full layout on tall terminals", func(t *testing.T) {
		banner := RenderBanner(80, 40)
		assert.Equal(t, 4, len(strings.Split(banner, "\n")))
	})

	t.Run("compact layout on short terminals", func(t *testing.T) {
		banner := RenderBanner(80, CompactHeaderThreshold-1)
		assert.Equal(t, 1, len(strings.Split(banner, "\n")))
	})

	t.Run("zero height means unknown, full layout", func(t *testing.T) {
		banner := RenderBanner(80, 0)
		assert.Equal(t, 4, len(strings.Split(banner, "\n")))
	})
}

func TestRenderHeader(t *testing.T) {
	info := &HeaderInfo{ConfigPath: "/etc/codexbar/config.yaml", Interval: 30 * time.Second}

	t.Run("includes config path and interval", func(t *testing.T) {
		header := RenderHeader(info, 120, 40)
		plain := ansi.Strip(header)
		assert.Contains(t, plain, "/etc/codexbar/config.yaml")
		assert.Contains(t, plain, "every 30s")
	})

	t.Run("compact header is a single line", func(t *testing.T) {
		header := RenderHeader(info, 120, 10)
		assert.NotContains(t, header, "\n")
	})
}

func TestApplyGradient(t *testing.T) {
	// Force a color profile so lipgloss actually emits ANSI sequences.
	lipgloss.DefaultRenderer().SetColorProfile(termenv.TrueColor)
	defer lipgloss.DefaultRenderer().SetColorProfile(termenv.Ascii)

	out := applyGradient("AB", ColorCyan, ColorPurple)
	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, "AB", ansi.Strip(out))

	t.Run("spaces keep no styling", func(t *testing.T) {
		out := applyGradient(" ", ColorCyan, ColorPurple)
		assert.Equal(t, " ", out)
	})
}

func TestWriteBanner(t *testing.T) {
	var buf bytes.Buffer
	writeBanner(&buf, 80, 40)

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n\n"))
	assert.Contains(t, ansi.Strip(out), "USAGE AT A GLANCE")
}

func TestNormalizeBannerSize(t *testing.T) {
	w, h := normalizeBannerSize(0, 0, assert.AnError)
	assert.Equal(t, defaultBannerWidth, w)
	assert.Equal(t, 0, h)

	w, h = normalizeBannerSize(100, 50, nil)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)
}

func TestConfigPathWithHome(t *testing.T) {
	t.Setenv("HOME", "/home/pat")

	info := HeaderInfo{ConfigPath: "/home/pat/.config/codexbar/config.yaml"}
	require.Equal(t, "$HOME/.config/codexbar/config.yaml", info.ConfigPathWithHome())

	info = HeaderInfo{ConfigPath: "/etc/codexbar/config.yaml"}
	require.Equal(t, "/etc/codexbar/config.yaml", info.ConfigPathWithHome())
}
