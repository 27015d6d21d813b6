package directivemd

import (
	"bytes"

	"github.com/riverfjs/directivemd/internal/parser"
)

// Transform 解析 Markdown 并执行 directive 转换
//
// 参数:
//   - markdown: 原始 Markdown 文本
//   - opts: 选项
//
// 返回:
//   - *Document: 转换后的 AST、去掉 front matter 的源文本、元数据和诊断
//   - error: front matter 无效时返回
func Transform(markdown string, opts ...Option) (*Document, error) {
	options := applyOptions(opts...)
	return parser.Parse(newMarkdown(options), markdown)
}

// RenderHTML 转换并渲染为 HTML
//
// 参数:
//   - markdown: 原始 Markdown 文本
//   - opts: 选项
//
// 返回:
//   - string: HTML
//   - []Diagnostic: 诊断
//   - error: front matter 无效或渲染失败
func RenderHTML(markdown string, opts ...Option) (string, []Diagnostic, error) {
	options := applyOptions(opts...)
	md := newMarkdown(options)
	doc, err := parser.Parse(md, markdown)
	if err != nil {
		return "", nil, err
	}
	var buf bytes.Buffer
	if err := parser.Render(md, &buf, doc); err != nil {
		return "", doc.Diagnostics, err
	}
	return buf.String(), doc.Diagnostics, nil
}
