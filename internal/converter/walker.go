package converter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/riverfjs/directivemd/internal/buffer"
	"github.com/riverfjs/directivemd/internal/node"
	"github.com/riverfjs/directivemd/internal/types"
)

type frame struct {
	block *Block
	text  strings.Builder
}

// EventWalker 遍历转换后的 goldmark AST，生成 JSON 内容树、章节和 cue 列表
type EventWalker struct {
	source    []byte
	buf       *buffer.TextBuffer
	stack     []*frame
	segments  []Segment
	cues      []*Block
	footnotes []*Block
	topIndex  int

	// Table state
	inTableCell bool
	cellParts   []string
	currentRow  []string
}

// NewEventWalker 创建新的 EventWalker
func NewEventWalker(source []byte) *EventWalker {
	root := &frame{block: &Block{Type: "document"}}
	return &EventWalker{
		source:   source,
		buf:      buffer.New(),
		stack:    []*frame{root},
		segments: make([]Segment, 0),
		cues:     make([]*Block, 0),
	}
}

// Walk 遍历 AST 节点
func (w *EventWalker) Walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	// --- Typed elements ---
	case *node.Directive:
		if entering {
			w.push(&Block{
				Type:  BlockElement,
				Name:  n.Name.String(),
				Value: n.Value,
				Range: n.Range,
				ID:    n.ID,
				Line:  n.Line,
			})
		} else {
			w.pop()
		}

	case *node.EliasCue:
		if entering {
			at := n.At
			b := &Block{
				Type: BlockElement,
				Name: types.KindEliasCue.String(),
				Mode: string(n.Mode),
				At:   &at,
				Text: n.Say,
				ID:   n.ID,
				Line: n.Line,
			}
			w.leaf(b)
			w.cues = append(w.cues, b)
		}
		return ast.WalkSkipChildren, nil

	// --- Inline elements ---
	case *ast.Text:
		if entering {
			value := string(n.Segment.Value(w.source))
			if n.SoftLineBreak() {
				value += " "
			}
			if n.HardLineBreak() {
				value += "\n"
			}
			w.onText(value)
		}

	case *ast.String:
		if entering {
			w.onText(string(n.Value))
		}

	case *ast.CodeSpan:
		if entering {
			w.onText(extractCodeSpanText(n, w.source))
			return ast.WalkSkipChildren, nil
		}

	case *ast.AutoLink:
		if entering {
			w.onText(string(n.URL(w.source)))
			return ast.WalkSkipChildren, nil
		}

	// --- Block elements ---
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			w.push(&Block{Type: BlockParagraph, Line: lineOf(n, w.source)})
		} else {
			w.pop()
			w.buf.Write("\n")
		}

	case *ast.Heading:
		if entering {
			w.push(&Block{Type: BlockHeading, Level: n.Level, ID: headingID(n), Line: lineOf(n, w.source)})
		} else {
			b := w.pop()
			w.buf.Write("\n")
			// 只有顶层二级标题切分章节，range 内的标题保持为普通 block
			if n.Level == 2 && len(w.stack) == 1 {
				w.segments = append(w.segments, Segment{
					Kind:   "chapter",
					Title:  b.Text,
					Anchor: b.ID,
					Line:   b.Line,
					Block:  w.topIndex,
				})
			}
		}

	case *ast.Blockquote:
		if entering {
			w.push(&Block{Type: BlockQuote, Line: lineOf(n, w.source)})
		} else {
			w.pop()
		}

	case *ast.List:
		if entering {
			b := &Block{Type: BlockList, Ordered: n.IsOrdered()}
			if n.IsOrdered() {
				b.Start = n.Start
			}
			w.push(b)
		} else {
			w.pop()
		}

	case *ast.ListItem:
		if entering {
			w.push(&Block{Type: BlockItem})
		} else {
			w.pop()
		}

	case *east.TaskCheckBox:
		if entering {
			w.onTaskCheckBox(n.IsChecked)
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.onCodeBlock(n)
			return ast.WalkSkipChildren, nil
		}

	case *ast.ThematicBreak:
		if entering {
			w.leaf(&Block{Type: BlockRule, Line: lineOf(n, w.source)})
		}

	case *ast.HTMLBlock:
		// Block HTML ignored
		return ast.WalkSkipChildren, nil

	// --- Footnotes ---
	// 脚注列表不进入顶层 blocks，否则会被算进最后一章
	case *east.FootnoteList:
		if entering {
			w.stack = append(w.stack, &frame{block: &Block{Type: BlockFootnote}})
		} else {
			f := w.stack[len(w.stack)-1]
			w.stack = w.stack[:len(w.stack)-1]
			w.footnotes = f.block.Children
		}

	case *east.Footnote:
		if entering {
			w.push(&Block{Type: BlockFootnote, ID: fmt.Sprintf("fn:%d", n.Index)})
		} else {
			w.pop()
		}

	case *east.FootnoteLink, *east.FootnoteBacklink:
		return ast.WalkSkipChildren, nil

	case *east.DefinitionList:
		if entering {
			w.push(&Block{Type: BlockDefinition})
		} else {
			w.pop()
		}

	// --- Table ---
	case *east.Table:
		if entering {
			w.push(&Block{Type: BlockTable, Line: lineOf(n, w.source)})
		} else {
			w.pop()
			w.buf.Write("\n")
		}

	case *east.TableHeader, *east.TableRow:
		if entering {
			w.currentRow = make([]string, 0)
		} else {
			w.onEndTableRow()
		}

	case *east.TableCell:
		if entering {
			w.cellParts = make([]string, 0)
			w.inTableCell = true
		} else {
			w.onEndTableCell()
		}
	}

	return ast.WalkContinue, nil
}

// Result 返回顶层 blocks、章节 segments、cue 以及纯文本缓冲
func (w *EventWalker) Result() ([]*Block, []Segment, []*Block, *buffer.TextBuffer) {
	return w.stack[0].block.Children, w.segments, w.cues, w.buf
}

// Footnotes 返回脚注，按文档中的引用顺序
func (w *EventWalker) Footnotes() []*Block {
	return w.footnotes
}

// --- Stack helpers ---

func (w *EventWalker) push(b *Block) {
	if len(w.stack) == 1 {
		w.topIndex = len(w.stack[0].block.Children)
	}
	w.stack = append(w.stack, &frame{block: b})
}

func (w *EventWalker) pop() *Block {
	if len(w.stack) <= 1 {
		return nil
	}
	f := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if f.text.Len() > 0 {
		f.block.Text = strings.TrimRight(f.text.String(), " \n")
	}
	parent := w.stack[len(w.stack)-1].block
	parent.Children = append(parent.Children, f.block)
	return f.block
}

func (w *EventWalker) leaf(b *Block) {
	w.push(b)
	w.pop()
}

// --- Text handling ---

func (w *EventWalker) onText(value string) {
	if w.inTableCell {
		w.cellParts = append(w.cellParts, strings.ReplaceAll(value, "\n", " "))
		return
	}
	w.stack[len(w.stack)-1].text.WriteString(value)
	w.buf.Write(value)
}

// onTaskCheckBox 标记当前 list item 的完成状态
func (w *EventWalker) onTaskCheckBox(checked bool) {
	for i := len(w.stack) - 1; i > 0; i-- {
		if w.stack[i].block.Type == BlockItem {
			c := checked
			w.stack[i].block.Checked = &c
			return
		}
	}
}

func (w *EventWalker) onCodeBlock(n ast.Node) {
	b := &Block{Type: BlockCode, Line: lineOf(n, w.source)}
	if fenced, ok := n.(*ast.FencedCodeBlock); ok {
		lang := strings.Split(string(fenced.Language(w.source)), ",")[0]
		b.Language = strings.TrimSpace(lang)
	}

	var parts []string
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		parts = append(parts, string(line.Value(w.source)))
	}
	b.Text = strings.TrimSuffix(strings.Join(parts, ""), "\n")
	w.leaf(b)
}

func (w *EventWalker) onEndTableCell() {
	w.currentRow = append(w.currentRow, strings.TrimSpace(strings.Join(w.cellParts, "")))
	w.buf.Write(strings.Join(w.cellParts, "") + " ")
	w.cellParts = nil
	w.inTableCell = false
}

func (w *EventWalker) onEndTableRow() {
	table := w.stack[len(w.stack)-1].block
	table.Rows = append(table.Rows, w.currentRow)
	w.currentRow = nil
}

// --- Utilities ---

func extractCodeSpanText(n *ast.CodeSpan, source []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if textNode, ok := c.(*ast.Text); ok {
			_, _ = buf.Write(textNode.Segment.Value(source))
		}
	}
	return buf.String()
}

func headingID(n *ast.Heading) string {
	if v, ok := n.AttributeString("id"); ok {
		if id, ok := v.([]byte); ok {
			return string(id)
		}
	}
	return ""
}

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
