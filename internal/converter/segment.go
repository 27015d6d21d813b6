package converter

// Segment 记录章节（二级标题）的位置信息
type Segment struct {
	Kind   string // "chapter"
	Title  string // 标题纯文本
	Anchor string // 自动生成的标题 ID
	Line   int    // 源文件行号
	Block  int    // 包含该标题的顶层 block 下标
}

// Block JSON 内容树节点，供渲染层使用
type Block struct {
	Type     string     `json:"type"`
	Name     string     `json:"name,omitempty"`
	Value    string     `json:"value,omitempty"`
	Text     string     `json:"text,omitempty"`
	Level    int        `json:"level,omitempty"`
	Ordered  bool       `json:"ordered,omitempty"`
	Start    int        `json:"start,omitempty"`
	Checked  *bool      `json:"checked,omitempty"`
	Language string     `json:"language,omitempty"`
	Mode     string     `json:"mode,omitempty"`
	At       *float64   `json:"at,omitempty"`
	Range    bool       `json:"range,omitempty"`
	ID       string     `json:"id,omitempty"`
	Line     int        `json:"line,omitempty"`
	Rows     [][]string `json:"rows,omitempty"`
	Children []*Block   `json:"children,omitempty"`
}

// Block types
const (
	BlockHeading    = "heading"
	BlockParagraph  = "paragraph"
	BlockList       = "list"
	BlockItem       = "item"
	BlockQuote      = "blockquote"
	BlockCode       = "code"
	BlockTable      = "table"
	BlockRule       = "rule"
	BlockElement    = "element"
	BlockDefinition = "definition"
	BlockFootnote   = "footnote"
)
