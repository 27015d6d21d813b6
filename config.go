package directivemd

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/yuin/goldmark"

	"github.com/riverfjs/directivemd/internal/converter"
	"github.com/riverfjs/directivemd/internal/node"
	"github.com/riverfjs/directivemd/internal/parser"
	"github.com/riverfjs/directivemd/internal/preset"
	"github.com/riverfjs/directivemd/internal/types"
)

// 导出类型别名
type (
	RenderConfig   = types.RenderConfig
	Kind           = types.Kind
	Mode           = types.Mode
	Diagnostic     = types.Diagnostic
	DiagnosticCode = types.DiagnosticCode
	Directive      = node.Directive
	EliasCue       = node.EliasCue
	Document       = parser.Result
	Meta           = parser.Meta
	Block          = converter.Block
	Registry       = preset.Registry
	PresetHandler  = preset.Handler
	PresetElement  = preset.Element
)

const (
	KindAnim     = types.KindAnim
	KindFx       = types.KindFx
	KindGraph    = types.KindGraph
	KindMedia    = types.KindMedia
	KindEliasCue = types.KindEliasCue

	DiagUnbalancedRange = types.DiagUnbalancedRange
	DiagStrayRangeEnd   = types.DiagStrayRangeEnd
	DiagCueOutOfRange   = types.DiagCueOutOfRange
)

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}

// DefaultRegistry returns the article's preset dispatch table for config.
func DefaultRegistry(config *RenderConfig) *Registry {
	return preset.Default(config)
}

// LoadConfigFile reads a TOML render configuration. Missing keys keep
// their default values.
func LoadConfigFile(path string) (*RenderConfig, error) {
	config := types.DefaultRenderConfig()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return config, nil
}

func newMarkdown(options *ConvertOptions) goldmark.Markdown {
	return parser.New(parser.Config{
		Logger:   options.Logger,
		Render:   options.Config,
		Registry: options.Registry,
	})
}
