package directivemd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/yuin/goldmark/ast"

	"github.com/riverfjs/directivemd/internal/converter"
	"github.com/riverfjs/directivemd/internal/parser"
)

// ErrDiagnostics is returned by Compile in strict mode when the article has diagnostics.
var ErrDiagnostics = errors.New("article has diagnostics")

// ProcessMarkdown 完整管道：markdown → Article
//
// 步骤：
// 1. 解析 front matter 和 Markdown，执行 directive 转换
// 2. 通过 preset 分发表渲染 HTML
// 3. 遍历 AST 生成 JSON 内容树、章节 segments 和 cue
// 4. 按 `at` 排序 cue，检查 cue 是否落在文章章节范围内
// 5. 统计字数和阅读时间
func ProcessMarkdown(ctx context.Context, content string, options *ConvertOptions) (*Article, error) {
	if options == nil {
		options = applyOptions()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	md := newMarkdown(options)
	doc, err := parser.Parse(md, content)
	if err != nil {
		return nil, err
	}

	var html bytes.Buffer
	if err := parser.Render(md, &html, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	walker := converter.NewEventWalker(doc.Source)
	_ = ast.Walk(doc.Doc, walker.Walk)
	blocks, segments, cueBlocks, text := walker.Result()

	chapters := buildChapters(segments, len(blocks))
	cues, cueDiags := buildTimeline(cueBlocks, len(chapters)-1)

	diags := append(append([]Diagnostic{}, doc.Diagnostics...), cueDiags...)
	for _, d := range cueDiags {
		options.Logger.Warn("cue out of range", "line", d.Line, "at", d.Value)
	}

	article := &Article{
		Meta:        doc.Meta,
		HTML:        html.String(),
		Blocks:      blocks,
		Footnotes:   walker.Footnotes(),
		Chapters:    chapters,
		Cues:        cues,
		Diagnostics: diags,
		Stats:       readingStats(text.Words(), blocks, options.Config.WordsPerMinute),
	}
	if article.Blocks == nil {
		article.Blocks = []*Block{}
	}

	if options.Strict && len(diags) > 0 {
		return article, fmt.Errorf("%w: %d found", ErrDiagnostics, len(diags))
	}
	return article, nil
}

// buildChapters 根据二级标题 segments 切分顶层 blocks
func buildChapters(segments []converter.Segment, blockCount int) []Chapter {
	chapters := make([]Chapter, 0, len(segments)+1)

	prologueEnd := blockCount
	if len(segments) > 0 {
		prologueEnd = segments[0].Block
	}
	chapters = append(chapters, Chapter{Index: 0, FirstBlock: 0, EndBlock: prologueEnd})

	for i, seg := range segments {
		end := blockCount
		if i+1 < len(segments) {
			end = segments[i+1].Block
		}
		chapters = append(chapters, Chapter{
			Index:      i + 1,
			Title:      seg.Title,
			Anchor:     seg.Anchor,
			Line:       seg.Line,
			FirstBlock: seg.Block,
			EndBlock:   end,
		})
	}
	return chapters
}

// buildTimeline 按 at 稳定排序 cue；chapterCount 不含序章
func buildTimeline(cueBlocks []*Block, chapterCount int) ([]CueEntry, []Diagnostic) {
	cues := make([]CueEntry, 0, len(cueBlocks))
	var diags []Diagnostic

	for _, b := range cueBlocks {
		if b.At == nil {
			continue
		}
		at := *b.At
		chapter := math.Floor(at)
		entry := CueEntry{
			ID:       b.ID,
			Mode:     Mode(b.Mode),
			At:       at,
			Text:     b.Text,
			Chapter:  int(chapter),
			Progress: at - chapter,
			Line:     b.Line,
		}
		if entry.Chapter > chapterCount {
			diags = append(diags, Diagnostic{
				Code:    DiagCueOutOfRange,
				Line:    b.Line,
				Message: fmt.Sprintf("cue at=%g is past the last chapter (%d)", at, chapterCount),
				Value:   fmt.Sprintf("%g", at),
			})
		}
		cues = append(cues, entry)
	}

	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].At < cues[j].At
	})
	return cues, diags
}
