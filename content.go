package directivemd

// Article is a compiled article ready for the rendering layer.
type Article struct {
	Meta        Meta         `json:"meta"`
	HTML        string       `json:"html"`
	Blocks      []*Block     `json:"blocks"`
	Footnotes   []*Block     `json:"footnotes,omitempty"`
	Chapters    []Chapter    `json:"chapters"`
	Cues        []CueEntry   `json:"cues"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Stats       Stats        `json:"stats"`
}

// Chapter is the span of top-level blocks between two level-2 headings.
// Index 0 is the prologue before the first level-2 heading.
type Chapter struct {
	Index      int    `json:"index"`
	Title      string `json:"title,omitempty"`
	Anchor     string `json:"anchor,omitempty"`
	Line       int    `json:"line,omitempty"`
	FirstBlock int    `json:"first_block"`
	EndBlock   int    `json:"end_block"`
}

// Len returns the number of top-level blocks in the chapter.
func (c Chapter) Len() int {
	return c.EndBlock - c.FirstBlock
}

// CueEntry is one ELIAS cue on the chapter-progress axis.
// At = Chapter + Progress, where Progress is in [0, 1).
type CueEntry struct {
	ID       string  `json:"id"`
	Mode     Mode    `json:"mode"`
	At       float64 `json:"at"`
	Text     string  `json:"text"`
	Chapter  int     `json:"chapter"`
	Progress float64 `json:"progress"`
	Line     int     `json:"line,omitempty"`
}

// Stats holds reading statistics computed from the article's prose.
type Stats struct {
	Words          int `json:"words"`
	ReadingMinutes int `json:"reading_minutes"`
	// Elements counts Anim, Fx, Graph and Media elements, ranges included.
	// ELIAS cues are not elements; see Article.Cues.
	Elements int `json:"elements"`
	Ranges   int `json:"ranges"`
}
