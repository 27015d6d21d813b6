package transform

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/directivemd/internal/types"
)

var (
	// [ANIM|FX|GRAPH|MEDIA: value]，关键字大小写不敏感
	inlineRe = regexp.MustCompile(`(?i)^\[(ANIM|FX|GRAPH|MEDIA):\s*(.+)\]$`)

	// [ELIAS: mode at=N text="..."]
	eliasRe = regexp.MustCompile(`(?i)^\[ELIAS:\s*(appear|whisper|hide|takeover)\s+at=([0-9]+(?:\.[0-9]+)?)\s*(?:text="([^"]*)")?\]$`)

	// [ANIM:start value] / [ANIM:end]
	rangeStartRe = regexp.MustCompile(`^\[ANIM:start\s+(.+)\]$`)
	rangeEndRe   = regexp.MustCompile(`^\[ANIM:end\]$`)
)

// Cue ELIAS marker 分解后的字段
type Cue struct {
	Mode  types.Mode
	At    float64
	AtRaw string
	Text  string
}

// MatchInline 匹配 inline marker，返回元素类型和去空白后的 value。
// Range marker 留给 range pairing 处理，这里不匹配。
func MatchInline(text string) (types.Kind, string, bool) {
	if rangeStartRe.MatchString(text) || rangeEndRe.MatchString(text) {
		return types.KindUnknown, "", false
	}
	m := inlineRe.FindStringSubmatch(text)
	if m == nil {
		return types.KindUnknown, "", false
	}
	value := strings.TrimSpace(decode(m[2]))
	if value == "" {
		return types.KindUnknown, "", false
	}
	return types.ParseKind(m[1]), value, true
}

// MatchElias 匹配 ELIAS cue marker
func MatchElias(text string) (Cue, bool) {
	m := eliasRe.FindStringSubmatch(text)
	if m == nil {
		return Cue{}, false
	}
	at, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Cue{}, false
	}
	return Cue{
		Mode:  types.Mode(strings.ToLower(m[1])),
		At:    at,
		AtRaw: m[2],
		Text:  decode(m[3]),
	}, true
}

// MatchRangeStart 匹配 [ANIM:start value]，返回 value
func MatchRangeStart(text string) (string, bool) {
	m := rangeStartRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(decode(m[1])), true
}

// MatchRangeEnd 匹配 [ANIM:end]
func MatchRangeEnd(text string) bool {
	return rangeEndRe.MatchString(text)
}

// markerText 返回段落源行拼接后的文本（去掉首尾空白）。
// 值里的 HTML、实体和转义不影响匹配；多行段落含换行，不会匹配单行 marker。
func markerText(n ast.Node, source []byte) (string, bool) {
	para, ok := n.(*ast.Paragraph)
	if !ok {
		return "", false
	}
	lines := para.Lines()
	if lines == nil || lines.Len() == 0 {
		return "", false
	}
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return strings.TrimSpace(buf.String()), true
}

// decode 按 Markdown 文本规则解码 marker 字段：反斜杠转义、数字引用和实体名
func decode(s string) string {
	b := util.UnescapePunctuations([]byte(s))
	b = util.ResolveNumericReferences(b)
	b = util.ResolveEntityNames(b)
	return string(b)
}

// lineOf 返回段落在源文件中的行号（从 1 开始）
func lineOf(n ast.Node, source []byte) int {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	start := lines.At(0).Start
	if start > len(source) {
		return 0
	}
	return bytes.Count(source[:start], []byte{'\n'}) + 1
}
