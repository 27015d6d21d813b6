package types

import (
	"fmt"
	"strings"
)

// Kind 标识 typed element 的名称
type Kind int

const (
	KindUnknown Kind = iota
	KindAnim
	KindFx
	KindGraph
	KindMedia
	KindEliasCue
)

var kindNames = map[Kind]string{
	KindAnim:     "Anim",
	KindFx:       "Fx",
	KindGraph:    "Graph",
	KindMedia:    "Media",
	KindEliasCue: "EliasCue",
}

// String 返回元素名（Anim、Fx、Graph、Media、EliasCue）
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText 让 Kind 以元素名序列化到 JSON
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind 将 marker 关键字（ANIM、fx ...）或元素名映射为 Kind，大小写不敏感
func ParseKind(s string) Kind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ANIM":
		return KindAnim
	case "FX":
		return KindFx
	case "GRAPH":
		return KindGraph
	case "MEDIA":
		return KindMedia
	case "ELIAS", "ELIASCUE":
		return KindEliasCue
	default:
		return KindUnknown
	}
}

// Mode ELIAS cue 的模式
type Mode string

const (
	ModeAppear   Mode = "appear"
	ModeWhisper  Mode = "whisper"
	ModeHide     Mode = "hide"
	ModeTakeover Mode = "takeover"
)

// Valid 检查 mode 是否为四个合法值之一
func (m Mode) Valid() bool {
	switch m {
	case ModeAppear, ModeWhisper, ModeHide, ModeTakeover:
		return true
	}
	return false
}

// DiagnosticCode 诊断类别
type DiagnosticCode string

const (
	// DiagUnbalancedRange ANIM:start 之后没有 ANIM:end
	DiagUnbalancedRange DiagnosticCode = "unbalanced-range"
	// DiagStrayRangeEnd 没有打开的 range 时出现 ANIM:end
	DiagStrayRangeEnd DiagnosticCode = "stray-range-end"
	// DiagCueOutOfRange cue 的章节位置超出文章章节数
	DiagCueOutOfRange DiagnosticCode = "cue-out-of-range"
)

// Diagnostic 非致命的文档问题，文档仍然会被编译
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	Line    int            `json:"line"`
	Message string         `json:"message"`
	Value   string         `json:"value,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", d.Line, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// RenderConfig 渲染配置
type RenderConfig struct {
	// ClassPrefix 生成的 HTML class 前缀
	ClassPrefix string `toml:"class_prefix"`
	// UnsupportedText 未知 preset 的占位文本
	UnsupportedText string `toml:"unsupported_text"`
	// WordsPerMinute 阅读时间估算
	WordsPerMinute int `toml:"words_per_minute"`
	// PresetAliases 额外的 preset 别名：alias -> 已注册的 preset
	PresetAliases map[string]string `toml:"preset_aliases"`
}

// DefaultRenderConfig 返回默认渲染配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		ClassPrefix:     "directive",
		UnsupportedText: "unsupported",
		WordsPerMinute:  200,
		PresetAliases:   map[string]string{},
	}
}
