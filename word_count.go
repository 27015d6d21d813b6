package directivemd

import (
	"github.com/riverfjs/directivemd/internal/converter"
)

// ReadingMinutes 按每分钟阅读字数估算阅读时间（向上取整，至少 1 分钟）
//
// 参数：
//   - words: 正文字数（不含 marker、代码块和 cue 文本）
//   - wordsPerMinute: 阅读速度，<= 0 时使用 200
//
// 返回：
//   - int: 分钟数；words 为 0 时返回 0
func ReadingMinutes(words, wordsPerMinute int) int {
	if words <= 0 {
		return 0
	}
	if wordsPerMinute <= 0 {
		wordsPerMinute = 200
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

func readingStats(words int, blocks []*Block, wordsPerMinute int) Stats {
	stats := Stats{
		Words:          words,
		ReadingMinutes: ReadingMinutes(words, wordsPerMinute),
	}
	var count func([]*Block)
	count = func(bs []*Block) {
		for _, b := range bs {
			if b.Type == converter.BlockElement && b.Name != KindEliasCue.String() {
				stats.Elements++
				if b.Range {
					stats.Ranges++
				}
			}
			count(b.Children)
		}
	}
	count(blocks)
	return stats
}
