package parser

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Meta 文章 front matter
type Meta struct {
	Title       string   `yaml:"title" json:"title,omitempty"`
	Subtitle    string   `yaml:"subtitle" json:"subtitle,omitempty"`
	Author      string   `yaml:"author" json:"author,omitempty"`
	Published   string   `yaml:"published" json:"published,omitempty"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
}

var fence = []byte("---")

// SplitFrontMatter 解析开头的 --- YAML 块。
//
// front matter 被替换为同样数量的空行而不是删除，这样诊断中的行号仍然对应原文件。
func SplitFrontMatter(src []byte) (Meta, []byte, error) {
	var meta Meta
	if !bytes.HasPrefix(src, fence) {
		return meta, src, nil
	}
	firstNL := bytes.IndexByte(src, '\n')
	if firstNL < 0 || len(bytes.TrimSpace(src[:firstNL])) != len(fence) {
		return meta, src, nil
	}

	// 查找结束的 ---
	offset := firstNL + 1
	for offset <= len(src) {
		end := bytes.IndexByte(src[offset:], '\n')
		line := src[offset:]
		if end >= 0 {
			line = src[offset : offset+end]
		}
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), fence) {
			block := src[firstNL+1 : offset]
			if err := yaml.Unmarshal(block, &meta); err != nil {
				return Meta{}, nil, fmt.Errorf("front matter: %w", err)
			}
			closeEnd := len(src)
			if end >= 0 {
				closeEnd = offset + end
			}
			blank := bytes.Repeat([]byte{'\n'}, bytes.Count(src[:closeEnd], []byte{'\n'}))
			body := append(blank, src[closeEnd:]...)
			return meta, body, nil
		}
		if end < 0 {
			break
		}
		offset += end + 1
	}
	// 没有结束标记：按普通 Markdown 处理
	return meta, src, nil
}
