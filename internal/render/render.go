// Package render renders typed directive nodes to HTML through the preset
// dispatch table.
package render

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/directivemd/internal/node"
	"github.com/riverfjs/directivemd/internal/preset"
	"github.com/riverfjs/directivemd/internal/types"
)

// Renderer is a goldmark NodeRenderer for Directive and EliasCue nodes.
type Renderer struct {
	registry *preset.Registry
	config   *types.RenderConfig
}

// NewRenderer creates a Renderer. A nil registry uses preset.Default(config).
func NewRenderer(registry *preset.Registry, config *types.RenderConfig) *Renderer {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	if registry == nil {
		registry = preset.Default(config)
	}
	return &Renderer{registry: registry, config: config}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(node.KindDirective, r.renderDirective)
	reg.Register(node.KindEliasCue, r.renderCue)
}

func (r *Renderer) renderDirective(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	d := n.(*node.Directive)
	el := preset.NewElement(d.Name, d.Value, d.ID, d.Range, r.config.ClassPrefix)
	r.registry.Render(w, el, entering)
	return ast.WalkContinue, nil
}

func (r *Renderer) renderCue(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	c := n.(*node.EliasCue)
	prefix := r.config.ClassPrefix
	if prefix == "" {
		prefix = "directive"
	}
	_, _ = w.WriteString(`<div class="` + prefix + `-elias-cue"`)
	if c.ID != "" {
		attr(w, "id", c.ID)
	}
	attr(w, "data-mode", string(c.Mode))
	attr(w, "data-at", c.AtRaw)
	attr(w, "data-text", c.Say)
	_, _ = w.WriteString(" hidden></div>\n")
	return ast.WalkSkipChildren, nil
}

func attr(w util.BufWriter, name, value string) {
	_, _ = w.WriteString(" " + name + `="`)
	_, _ = w.Write(util.EscapeHTML([]byte(value)))
	_ = w.WriteByte('"')
}

// Extension registers the Renderer with a goldmark instance.
type Extension struct {
	Registry *preset.Registry
	Config   *types.RenderConfig
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewRenderer(e.Registry, e.Config), 500),
	))
}
