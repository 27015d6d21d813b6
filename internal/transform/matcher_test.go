package transform

import (
	"testing"

	"github.com/riverfjs/directivemd/internal/types"
)

func TestMatchInline(t *testing.T) {
	tests := []struct {
		text      string
		wantKind  types.Kind
		wantValue string
		wantOK    bool
	}{
		{"[GRAPH: humans-vs-bots]", types.KindGraph, "humans-vs-bots", true},
		{"[Media:photo]", types.KindMedia, "photo", true},
		{"[FX: a] b]", types.KindFx, "a] b", true},
		{"[ANIM:start hero]", types.KindUnknown, "", false},
		{"[ANIM:end]", types.KindUnknown, "", false},
		{"[ANIM:start]", types.KindAnim, "start", true},
		{"[ELIAS: appear at=1]", types.KindUnknown, "", false},
		{"GRAPH: x", types.KindUnknown, "", false},
		{"[FX: glitch", types.KindUnknown, "", false},
		{`[FX: a\*b\*]`, types.KindFx, "a*b*", true},
		{"[MEDIA: photo &quot;x&quot;]", types.KindMedia, `photo "x"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			kind, value, ok := MatchInline(tt.text)
			if ok != tt.wantOK || kind != tt.wantKind || value != tt.wantValue {
				t.Errorf("MatchInline(%q) = (%v, %q, %v), want (%v, %q, %v)",
					tt.text, kind, value, ok, tt.wantKind, tt.wantValue, tt.wantOK)
			}
		})
	}
}

func TestMatchElias_AtIsExact(t *testing.T) {
	cue, ok := MatchElias(`[ELIAS: appear at=2.5 text="hi"]`)
	if !ok {
		t.Fatal("MatchElias() should match")
	}
	if cue.At != 2.5 || cue.AtRaw != "2.5" {
		t.Errorf("At = %v (%q), want 2.5", cue.At, cue.AtRaw)
	}
}

func TestMatchRange(t *testing.T) {
	if v, ok := MatchRangeStart("[ANIM:start  parallax+fade-in hero]"); !ok || v != "parallax+fade-in hero" {
		t.Errorf("MatchRangeStart() = (%q, %v)", v, ok)
	}
	if _, ok := MatchRangeStart("[anim:start hero]"); ok {
		t.Error("range start is case-sensitive")
	}
	if !MatchRangeEnd("[ANIM:end]") {
		t.Error("MatchRangeEnd() should match [ANIM:end]")
	}
	if MatchRangeEnd("[ANIM: end]") {
		t.Error("MatchRangeEnd() should not match [ANIM: end]")
	}
}
