package directivemd

import (
	"github.com/charmbracelet/log"
)

// ConvertOptions holds options for article compilation.
type ConvertOptions struct {
	Config   *RenderConfig
	Registry *Registry
	Logger   *log.Logger
	Strict   bool
}

// Option is a function that configures ConvertOptions.
type Option func(*ConvertOptions)

// WithConfig sets a custom RenderConfig.
func WithConfig(config *RenderConfig) Option {
	return func(opts *ConvertOptions) {
		opts.Config = config
	}
}

// WithRegistry sets the preset dispatch table used for HTML rendering.
func WithRegistry(registry *Registry) Option {
	return func(opts *ConvertOptions) {
		opts.Registry = registry
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(opts *ConvertOptions) {
		opts.Logger = logger
	}
}

// WithStrict makes Compile return ErrDiagnostics when the article has any diagnostic.
func WithStrict(enable bool) Option {
	return func(opts *ConvertOptions) {
		opts.Strict = enable
	}
}

// defaultConvertOptions returns the default conversion options.
func defaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		Config: DefaultConfig(),
		Logger: Logger,
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *ConvertOptions {
	options := defaultConvertOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Config == nil {
		options.Config = DefaultConfig()
	}
	if options.Logger == nil {
		options.Logger = Logger
	}
	if options.Registry == nil {
		options.Registry = DefaultRegistry(options.Config)
	}
	return options
}
