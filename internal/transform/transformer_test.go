package transform

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/directivemd/internal/node"
	"github.com/riverfjs/directivemd/internal/types"
)

// shape 是测试用的树结构摘要
type shape struct {
	Kind     string
	Text     string
	Children []shape
}

func parse(t *testing.T, src string) (ast.Node, []types.Diagnostic) {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(&Extension{Logger: log.New(io.Discard)}))
	pc := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader([]byte(src)), parser.WithContext(pc))
	return doc, Diagnostics(pc)
}

func plainText(n ast.Node, source []byte) string {
	var buf strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func shapeOf(n ast.Node, source []byte) shape {
	var s shape
	switch el := n.(type) {
	case *node.Directive:
		s.Kind = el.Name.String()
		s.Text = el.Value
	case *node.EliasCue:
		s.Kind = "EliasCue"
		s.Text = string(el.Mode) + "@" + el.AtRaw + ":" + el.Say
	case *ast.Paragraph:
		s.Kind = "p"
		s.Text = plainText(el, source)
		return s
	case *ast.Heading:
		s.Kind = "h"
		s.Text = plainText(el, source)
		return s
	default:
		s.Kind = n.Kind().String()
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s.Children = append(s.Children, shapeOf(c, source))
	}
	return s
}

func topLevel(doc ast.Node, source []byte) []shape {
	var out []shape
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, shapeOf(c, source))
	}
	return out
}

func p(s string) shape { return shape{Kind: "p", Text: s} }

func TestTransform_InlineMarkers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []shape
	}{
		{
			name: "graph scenario",
			src:  "[GRAPH: humans-vs-bots]",
			want: []shape{{Kind: "Graph", Text: "humans-vs-bots"}},
		},
		{
			name: "lowercase kind",
			src:  "[fx: glitch effect on scroll]",
			want: []shape{{Kind: "Fx", Text: "glitch effect on scroll"}},
		},
		{
			name: "value trimmed",
			src:  `[MEDIA:    photo "Shrimp Jesus"   ]`,
			want: []shape{{Kind: "Media", Text: `photo "Shrimp Jesus"`}},
		},
		{
			name: "anim without range keyword",
			src:  "[ANIM: parallax+fade-in hero]",
			want: []shape{{Kind: "Anim", Text: "parallax+fade-in hero"}},
		},
		{
			name: "siblings keep order",
			src:  "before\n\n[FX: glitch]\n\nafter",
			want: []shape{p("before"), {Kind: "Fx", Text: "glitch"}, p("after")},
		},
		{
			name: "unknown kind is literal",
			src:  "[AUDIO: drone]",
			want: []shape{p("[AUDIO: drone]")},
		},
		{
			name: "missing colon is literal",
			src:  "[GRAPH humans-vs-bots]",
			want: []shape{p("[GRAPH humans-vs-bots]")},
		},
		{
			name: "empty value is literal",
			src:  "[FX:   ]",
			want: []shape{p("[FX:   ]")},
		},
		{
			name: "marker inside sentence is literal",
			src:  "see [GRAPH: timeline] below",
			want: []shape{p("see [GRAPH: timeline] below")},
		},
		{
			name: "nested in blockquote",
			src:  "> [FX: glitch]",
			want: []shape{{Kind: "Blockquote", Children: []shape{{Kind: "Fx", Text: "glitch"}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, diags := parse(t, tt.src)
			if diff := cmp.Diff(tt.want, topLevel(doc, []byte(tt.src))); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
			if len(diags) != 0 {
				t.Errorf("unexpected diagnostics: %v", diags)
			}
		})
	}
}

// TestTransform_MarkerValueIsSourceText 值按源文本匹配，HTML 和 Markdown 语法保留，实体和转义解码
func TestTransform_MarkerValueIsSourceText(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want shape
	}{
		{"emphasis kept", "[FX: *glitch*]", shape{Kind: "Fx", Text: "*glitch*"}},
		{"entity decoded", `[MEDIA: photo "Fish &amp; Chips" - x]`, shape{Kind: "Media", Text: `photo "Fish & Chips" - x`}},
		{"escape decoded", `[FX: a\_b]`, shape{Kind: "Fx", Text: "a_b"}},
		{"numeric reference", "[GRAPH: time&#108;ine]", shape{Kind: "Graph", Text: "timeline"}},
		{"inline html in cue", `[ELIAS: whisper at=4.25 text="<b>hi</b>"]`, shape{Kind: "EliasCue", Text: "whisper@4.25:<b>hi</b>"}},
		{"cue text entity", `[ELIAS: appear at=1 text="a &lt; b"]`, shape{Kind: "EliasCue", Text: "appear@1:a < b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := parse(t, tt.src)
			if diff := cmp.Diff([]shape{tt.want}, topLevel(doc, []byte(tt.src))); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransform_MultiLineParagraphIsNotMarker(t *testing.T) {
	src := "[FX: glitch\nstill the same paragraph]"
	doc, _ := parse(t, src)
	if _, ok := doc.FirstChild().(*ast.Paragraph); !ok {
		t.Fatalf("first child = %T, want *ast.Paragraph", doc.FirstChild())
	}
}

func TestTransform_EliasCues(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantMode types.Mode
		wantAt   float64
		wantText string
	}{
		{"takeover without text", "[ELIAS: takeover at=9.0]", types.ModeTakeover, 9.0, ""},
		{"appear with text", `[ELIAS: appear at=2.5 text="are you still there?"]`, types.ModeAppear, 2.5, "are you still there?"},
		{"mode lowercased", "[elias: Whisper at=3]", types.ModeWhisper, 3, ""},
		{"hide", `[ELIAS: hide at=7.9 text=""]`, types.ModeHide, 7.9, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := parse(t, tt.src)
			cue, ok := doc.FirstChild().(*node.EliasCue)
			if !ok {
				t.Fatalf("first child = %T, want *node.EliasCue", doc.FirstChild())
			}
			if cue.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", cue.Mode, tt.wantMode)
			}
			if cue.At != tt.wantAt {
				t.Errorf("At = %v, want %v", cue.At, tt.wantAt)
			}
			if cue.Say != tt.wantText {
				t.Errorf("Say = %q, want %q", cue.Say, tt.wantText)
			}
			if !cue.Mode.Valid() {
				t.Errorf("Mode %q is not valid", cue.Mode)
			}
		})
	}
}

func TestTransform_MalformedEliasIsLiteral(t *testing.T) {
	for _, src := range []string{
		"[ELIAS: shout at=1]",
		"[ELIAS: appear]",
		"[ELIAS: appear at=two]",
		"[ELIAS: appear at=1 text=unquoted]",
	} {
		t.Run(src, func(t *testing.T) {
			doc, _ := parse(t, src)
			if _, ok := doc.FirstChild().(*ast.Paragraph); !ok {
				t.Errorf("first child = %T, want literal paragraph", doc.FirstChild())
			}
		})
	}
}

func TestTransform_RangePairing(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		want      []shape
		wantDiags []types.DiagnosticCode
	}{
		{
			name: "basic span",
			src:  "A\n\n[ANIM:start v]\n\nX\n\nY\n\n[ANIM:end]\n\nB",
			want: []shape{
				p("A"),
				{Kind: "Anim", Text: "v", Children: []shape{p("X"), p("Y")}},
				p("B"),
			},
		},
		{
			name: "empty span",
			src:  "[ANIM:start fade-in]\n\n[ANIM:end]",
			want: []shape{{Kind: "Anim", Text: "fade-in"}},
		},
		{
			name: "inline markers typed before wrapping",
			src:  "[ANIM:start parallax hero]\n\n# Title\n\n[FX: glitch]\n\n[ANIM:end]",
			want: []shape{
				{Kind: "Anim", Text: "parallax hero", Children: []shape{
					{Kind: "h", Text: "Title"},
					{Kind: "Fx", Text: "glitch"},
				}},
			},
		},
		{
			name: "second start captured verbatim",
			src:  "[ANIM:start a]\n\n[ANIM:start b]\n\nX\n\n[ANIM:end]",
			want: []shape{
				{Kind: "Anim", Text: "a", Children: []shape{p("[ANIM:start b]"), p("X")}},
			},
		},
		{
			name: "sequential spans",
			src:  "[ANIM:start a]\n\nX\n\n[ANIM:end]\n\n[ANIM:start b]\n\nY\n\n[ANIM:end]",
			want: []shape{
				{Kind: "Anim", Text: "a", Children: []shape{p("X")}},
				{Kind: "Anim", Text: "b", Children: []shape{p("Y")}},
			},
		},
		{
			name:      "unbalanced start",
			src:       "A\n\n[ANIM:start v]\n\nX",
			want:      []shape{p("A"), p("[ANIM:start v]"), p("X")},
			wantDiags: []types.DiagnosticCode{types.DiagUnbalancedRange},
		},
		{
			name:      "stray end",
			src:       "A\n\n[ANIM:end]",
			want:      []shape{p("A"), p("[ANIM:end]")},
			wantDiags: []types.DiagnosticCode{types.DiagStrayRangeEnd},
		},
		{
			name: "unbalanced start before a balanced span",
			src:  "[ANIM:start a]\n\n[ANIM:end]\n\n[ANIM:start b]",
			want: []shape{
				{Kind: "Anim", Text: "a"},
				p("[ANIM:start b]"),
			},
			wantDiags: []types.DiagnosticCode{types.DiagUnbalancedRange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, diags := parse(t, tt.src)
			if diff := cmp.Diff(tt.want, topLevel(doc, []byte(tt.src))); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
			var codes []types.DiagnosticCode
			for _, d := range diags {
				codes = append(codes, d.Code)
			}
			if diff := cmp.Diff(tt.wantDiags, codes); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransform_DiagnosticLine(t *testing.T) {
	_, diags := parse(t, "A\n\n[ANIM:start v]\n\nX")
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Line != 3 {
		t.Errorf("Line = %d, want 3", diags[0].Line)
	}
	if diags[0].Value != "v" {
		t.Errorf("Value = %q, want %q", diags[0].Value, "v")
	}
}

func TestTransform_Idempotent(t *testing.T) {
	src := "A\n\n[ANIM:start v]\n\n[GRAPH: timeline]\n\n[ELIAS: appear at=1.5]\n\n[ANIM:end]\n\n[MEDIA: audio drone]"
	source := []byte(src)
	doc, _ := parse(t, src)
	first := topLevel(doc, source)

	diags := New(log.New(io.Discard)).Apply(doc, source)
	if len(diags) != 0 {
		t.Errorf("second pass diagnostics = %v, want none", diags)
	}
	if diff := cmp.Diff(first, topLevel(doc, source)); diff != "" {
		t.Errorf("second pass changed the tree (-first +second):\n%s", diff)
	}
}

func TestTransform_NoMarkerLeaks(t *testing.T) {
	src := "[ANIM:start hero]\n\n[FX: glitch]\n\n[ELIAS: whisper at=1.2 text=\"hello\"]\n\n[ANIM:end]\n\n[GRAPH: cascade]"
	doc, _ := parse(t, src)
	source := []byte(src)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if para, ok := n.(*ast.Paragraph); ok && entering {
			if strings.HasPrefix(plainText(para, source), "[") {
				t.Errorf("marker leaked: %q", plainText(para, source))
			}
		}
		return ast.WalkContinue, nil
	})
}

func TestTransform_AssignsStableIDs(t *testing.T) {
	src := "[FX: glitch]\n\n[FX: glitch]"
	doc1, _ := parse(t, src)
	doc2, _ := parse(t, src)
	a := doc1.FirstChild().(*node.Directive)
	b := doc1.FirstChild().NextSibling().(*node.Directive)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs = %q, %q; want distinct non-empty", a.ID, b.ID)
	}
	if again := doc2.FirstChild().(*node.Directive); again.ID != a.ID {
		t.Errorf("ID not stable across parses: %q vs %q", a.ID, again.ID)
	}
}
