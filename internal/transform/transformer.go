// Package transform rewrites directive marker paragraphs into typed nodes.
package transform

import (
	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/directivemd/internal/node"
	"github.com/riverfjs/directivemd/internal/types"
)

var diagnosticsKey = parser.NewContextKey()

// Diagnostics 返回本次解析中记录的诊断
func Diagnostics(pc parser.Context) []types.Diagnostic {
	v := pc.Get(diagnosticsKey)
	if v == nil {
		return nil
	}
	return v.([]types.Diagnostic)
}

// Transformer 按固定顺序执行三个 pass：inline marker、ELIAS cue、range pairing
type Transformer struct {
	logger *log.Logger
}

// New 创建 Transformer，logger 为 nil 时使用 log.Default()
func New(logger *log.Logger) *Transformer {
	if logger == nil {
		logger = log.Default()
	}
	return &Transformer{logger: logger}
}

// Transform 实现 parser.ASTTransformer
func (t *Transformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	diags := t.Apply(doc, reader.Source())
	if len(diags) > 0 {
		pc.Set(diagnosticsKey, append(Diagnostics(pc), diags...))
	}
}

// Apply 原地改写 root，返回诊断。不会返回错误，也不会中断编译。
func (t *Transformer) Apply(root ast.Node, source []byte) []types.Diagnostic {
	t.replaceInline(root, source)
	t.replaceCues(root, source)
	diags := t.pairRanges(root, source)
	node.AssignIDs(root)
	return diags
}

// --- Pass 1 & 2 ---

func (t *Transformer) replaceInline(root ast.Node, source []byte) {
	for _, p := range paragraphs(root) {
		text, ok := markerText(p, source)
		if !ok {
			continue
		}
		kind, value, ok := MatchInline(text)
		if !ok {
			continue
		}
		el := node.NewDirective(kind, value)
		el.Line = lineOf(p, source)
		el.SetLines(p.Lines())
		replace(p, el)
	}
}

func (t *Transformer) replaceCues(root ast.Node, source []byte) {
	for _, p := range paragraphs(root) {
		text, ok := markerText(p, source)
		if !ok {
			continue
		}
		cue, ok := MatchElias(text)
		if !ok {
			continue
		}
		el := node.NewEliasCue(cue.Mode, cue.At, cue.AtRaw, cue.Text)
		el.Line = lineOf(p, source)
		el.SetLines(p.Lines())
		replace(p, el)
	}
}

// --- Pass 3 ---

func (t *Transformer) pairRanges(parent ast.Node, source []byte) []types.Diagnostic {
	var diags []types.Diagnostic
	siblings := children(parent)

	for i := 0; i < len(siblings); i++ {
		text, ok := markerText(siblings[i], source)
		if !ok {
			continue
		}
		if MatchRangeEnd(text) {
			line := lineOf(siblings[i], source)
			t.logger.Warn("stray range end", "line", line)
			diags = append(diags, types.Diagnostic{
				Code:    types.DiagStrayRangeEnd,
				Line:    line,
				Message: "[ANIM:end] without a preceding [ANIM:start]",
			})
			continue
		}
		value, ok := MatchRangeStart(text)
		if !ok {
			continue
		}

		j := findRangeEnd(siblings, i+1, source)
		if j < 0 {
			line := lineOf(siblings[i], source)
			t.logger.Warn("unbalanced range", "line", line, "value", value)
			diags = append(diags, types.Diagnostic{
				Code:    types.DiagUnbalancedRange,
				Line:    line,
				Message: "[ANIM:start] has no matching [ANIM:end]",
				Value:   value,
			})
			continue
		}

		container := node.NewRange(value)
		container.Line = lineOf(siblings[i], source)
		container.SetLines(siblings[i].Lines())
		parent.InsertBefore(parent, siblings[i], container)
		for _, c := range siblings[i+1 : j] {
			parent.RemoveChild(parent, c)
			container.AppendChild(container, c)
		}
		parent.RemoveChild(parent, siblings[i])
		parent.RemoveChild(parent, siblings[j])

		rest := siblings[j+1:]
		siblings = append(append(siblings[:i:i], container), rest...)
	}
	return diags
}

func findRangeEnd(siblings []ast.Node, from int, source []byte) int {
	for j := from; j < len(siblings); j++ {
		if text, ok := markerText(siblings[j], source); ok && MatchRangeEnd(text) {
			return j
		}
	}
	return -1
}

// --- helpers ---

// paragraphs 先收集再替换，避免在 Walk 过程中修改树
func paragraphs(root ast.Node) []*ast.Paragraph {
	var out []*ast.Paragraph
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if p, ok := n.(*ast.Paragraph); ok {
			out = append(out, p)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

func children(parent ast.Node) []ast.Node {
	out := make([]ast.Node, 0, parent.ChildCount())
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, c)
	}
	return out
}

func replace(old, el ast.Node) {
	parent := old.Parent()
	if parent == nil {
		return
	}
	parent.ReplaceChild(parent, old, el)
}

// Extension 注册 directive transformer 的 goldmark 扩展
type Extension struct {
	Logger *log.Logger
}

// Extend 实现 goldmark.Extender
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(New(e.Logger), 100),
	))
}
