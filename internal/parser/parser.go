package parser

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/directivemd/internal/preset"
	"github.com/riverfjs/directivemd/internal/render"
	"github.com/riverfjs/directivemd/internal/transform"
	"github.com/riverfjs/directivemd/internal/types"
)

// Config 解析器依赖
type Config struct {
	Logger   *log.Logger
	Render   *types.RenderConfig
	Registry *preset.Registry
}

// StandardOptions goldmark 扩展配置：GFM、定义列表、脚注，加上 directive 扩展
func StandardOptions(cfg Config) []goldmark.Option {
	return []goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM,            // GitHub Flavored Markdown (tables, strikethrough, tasklists)
			extension.DefinitionList, // 定义列表
			extension.Footnote,       // 脚注
			&transform.Extension{Logger: cfg.Logger},
			&render.Extension{Registry: cfg.Registry, Config: cfg.Render},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // 自动生成标题 ID
		),
	}
}

// New 创建带 directive 扩展的 goldmark 实例
func New(cfg Config) goldmark.Markdown {
	return goldmark.New(StandardOptions(cfg)...)
}

// Result 一次解析的结果
type Result struct {
	Doc         ast.Node
	Source      []byte
	Meta        Meta
	Diagnostics []types.Diagnostic
}

// Parse 解析 Markdown（可带 front matter），执行 directive 转换
func Parse(md goldmark.Markdown, markdown string) (*Result, error) {
	meta, source, err := SplitFrontMatter([]byte(markdown))
	if err != nil {
		return nil, err
	}

	pc := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))

	return &Result{
		Doc:         doc,
		Source:      source,
		Meta:        meta,
		Diagnostics: transform.Diagnostics(pc),
	}, nil
}

// Render 将转换后的 AST 渲染为 HTML
func Render(md goldmark.Markdown, w io.Writer, res *Result) error {
	return md.Renderer().Render(w, res.Source, res.Doc)
}

// ParseAST 仅解析为 AST（已转换），不渲染
func ParseAST(markdown string) ast.Node {
	md := New(Config{})
	return md.Parser().Parse(text.NewReader([]byte(markdown)))
}
