package render

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"

	"github.com/riverfjs/directivemd/internal/transform"
)

func toHTML(t *testing.T, src string) string {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(
		&transform.Extension{Logger: log.New(io.Discard)},
		&Extension{},
	))
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	return buf.String()
}

func TestRender_InlineDirective(t *testing.T) {
	html := toHTML(t, "[GRAPH: humans-vs-bots]")
	if !strings.Contains(html, `data-graph="humans-vs-bots"`) {
		t.Errorf("missing graph figure: %q", html)
	}
	if strings.Contains(html, "[GRAPH") {
		t.Errorf("marker leaked into HTML: %q", html)
	}
}

func TestRender_RangeWrapsChildren(t *testing.T) {
	html := toHTML(t, "[ANIM:start parallax+fade-in hero]\n\n# Dead Internet Theory\n\n[ANIM:end]")
	open := strings.Index(html, "directive-anim-parallax")
	heading := strings.Index(html, "<h1>Dead Internet Theory</h1>")
	closing := strings.LastIndex(html, "</div>")
	if open < 0 || heading < 0 || closing < 0 {
		t.Fatalf("unexpected HTML: %q", html)
	}
	if !(open < heading && heading < closing) {
		t.Errorf("heading should be inside the range container: %q", html)
	}
}

func TestRender_EliasCue(t *testing.T) {
	html := toHTML(t, `[ELIAS: whisper at=4.25 text="<b>hi</b>"]`)
	for _, want := range []string{`data-mode="whisper"`, `data-at="4.25"`, `data-text="&lt;b&gt;hi&lt;/b&gt;"`, "hidden"} {
		if !strings.Contains(html, want) {
			t.Errorf("cue HTML %q missing %q", html, want)
		}
	}
}

func TestRender_UnknownPresetPlaceholder(t *testing.T) {
	html := toHTML(t, "[FX: warp-drive]")
	if !strings.Contains(html, "directive-unsupported") {
		t.Errorf("unknown preset should render a placeholder: %q", html)
	}
}

func TestRender_UnbalancedStartStaysLiteral(t *testing.T) {
	html := toHTML(t, "[ANIM:start hero]\n\ntext")
	if !strings.Contains(html, "<p>[ANIM:start hero]</p>") {
		t.Errorf("unbalanced start should render literally: %q", html)
	}
}

func TestRender_EntitiesEscapedOnce(t *testing.T) {
	html := toHTML(t, `[MEDIA: photo "Fish &amp; Chips" - x]`)
	if !strings.Contains(html, `alt="Fish &amp; Chips"`) {
		t.Errorf("entity should be decoded then escaped once: %q", html)
	}
	if strings.Contains(html, "&amp;amp;") {
		t.Errorf("entity double-escaped: %q", html)
	}
}
