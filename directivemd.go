// Package directivemd 将带 directive marker 的 Markdown 文章编译为类型化的内容树
//
// 文章中的单行 marker 会在解析后被改写为 typed element：
//
//	[ANIM:start parallax+fade-in hero]   打开一个 Anim range
//	[ANIM:end]                           关闭 range，中间的内容成为 Anim 的子节点
//	[FX: glitch effect on scroll]        Fx{value}
//	[GRAPH: humans-vs-bots]              Graph{value}
//	[MEDIA: photo "Shrimp Jesus" - ...]  Media{value}
//	[ELIAS: appear at=2.5 text="..."]    EliasCue{mode, at, text}
//
// 格式错误的 marker 保持原样（fail-open），不成对的 range 只产生诊断，
// 编译永远不会因为 marker 而失败。
//
// 主要 API：
//   - Transform(): 解析并转换，返回 goldmark AST 和诊断
//   - RenderHTML(): 转换并通过 preset 分发表渲染为 HTML
//   - Compile(): 完整处理，返回 Article（HTML、JSON 内容树、章节、cue 时间线、统计）
//
// 示例：
//
//	article, err := directivemd.Compile(ctx, markdown)
//	for _, d := range article.Diagnostics {
//	    fmt.Println(d)
//	}
package directivemd

import (
	"context"
	"fmt"
	"os"
)

// Compile 将 Markdown 文章编译为 Article
//
// 参数：
//   - ctx: 上下文，仅在各阶段之间检查取消
//   - markdown: 原始 Markdown 文本（可带 YAML front matter）
//   - opts: 选项，见 WithConfig、WithLogger、WithRegistry、WithStrict
//
// 返回：
//   - *Article: 编译结果
//   - error: front matter 无效，或 strict 模式下存在诊断（ErrDiagnostics）
func Compile(ctx context.Context, markdown string, opts ...Option) (*Article, error) {
	return ProcessMarkdown(ctx, markdown, applyOptions(opts...))
}

// CompileFile 读取并编译文章文件
func CompileFile(ctx context.Context, path string, opts ...Option) (*Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read article: %w", err)
	}
	return Compile(ctx, string(data), opts...)
}
