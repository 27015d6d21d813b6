package preset

import (
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/directivemd/internal/types"
)

// 文章中使用的 preset
var (
	animPresets  = []string{"parallax", "fade-in", "fade-out", "slow-down", "reveal", "scroll-reveal", "pin"}
	fxPresets    = []string{"glitch", "static", "flicker", "typewriter", "chat", "noise"}
	graphPresets = []string{"humans-vs-bots", "timeline", "cascade", "flowchart", "projection", "ssb-contrast", "infobox"}
)

// Default 返回文章默认的 preset 注册表
func Default(config *types.RenderConfig) *Registry {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	r := NewRegistry(unsupportedHandler(config.UnsupportedText))

	for _, name := range animPresets {
		r.RegisterPrefix(types.KindAnim, name, blockHandler("div"))
	}
	for _, name := range fxPresets {
		r.RegisterPrefix(types.KindFx, name, blockHandler("div"))
	}
	for _, name := range graphPresets {
		r.Register(types.KindGraph, name, graphHandler)
	}
	r.Register(types.KindMedia, "photo", photoHandler)
	r.Register(types.KindMedia, "image", photoHandler)
	r.Register(types.KindMedia, "audio", audioHandler)
	r.Register(types.KindMedia, "video", videoHandler)

	for alias, target := range config.PresetAliases {
		r.Alias(alias, target)
	}
	return r
}

// --- handlers ---

func blockHandler(tag string) Handler {
	return func(w util.BufWriter, el Element, entering bool) {
		if !entering {
			_, _ = w.WriteString("</" + tag + ">\n")
			return
		}
		openTag(w, tag, el)
		_, _ = w.WriteString(">")
		if el.Range {
			_ = w.WriteByte('\n')
		}
	}
}

func graphHandler(w util.BufWriter, el Element, entering bool) {
	if !entering {
		_, _ = w.WriteString("</figure>\n")
		return
	}
	openTag(w, "figure", el)
	writeAttr(w, "data-graph", el.Preset)
	_, _ = w.WriteString(">")
	if el.Rest != "" {
		_, _ = w.WriteString("<figcaption>")
		_, _ = w.Write(util.EscapeHTML([]byte(el.Rest)))
		_, _ = w.WriteString("</figcaption>")
	}
}

func photoHandler(w util.BufWriter, el Element, entering bool) {
	if !entering {
		_, _ = w.WriteString("</figure>\n")
		return
	}
	title, caption := MediaTitle(el.Rest)
	openTag(w, "figure", el)
	_, _ = w.WriteString("><img")
	writeAttr(w, "alt", title)
	writeAttr(w, "data-title", title)
	_, _ = w.WriteString(">")
	if caption != "" {
		_, _ = w.WriteString("<figcaption>")
		_, _ = w.Write(util.EscapeHTML([]byte(caption)))
		_, _ = w.WriteString("</figcaption>")
	}
}

func audioHandler(w util.BufWriter, el Element, entering bool) {
	if !entering {
		_, _ = w.WriteString("</audio>\n")
		return
	}
	openTag(w, "audio", el)
	writeAttr(w, "data-src", el.Rest)
	_, _ = w.WriteString(` preload="none">`)
}

func videoHandler(w util.BufWriter, el Element, entering bool) {
	if !entering {
		_, _ = w.WriteString("</video>\n")
		return
	}
	openTag(w, "video", el)
	writeAttr(w, "data-src", el.Rest)
	_, _ = w.WriteString(` muted playsinline preload="none">`)
}

// unsupportedHandler 未知 preset 渲染为可见占位，不会 panic
func unsupportedHandler(text string) Handler {
	return func(w util.BufWriter, el Element, entering bool) {
		if !entering {
			_, _ = w.WriteString("</div>\n")
			return
		}
		prefix := classPrefix(el)
		_, _ = w.WriteString(`<div class="` + prefix + " " + prefix + `-unsupported"`)
		if el.ID != "" {
			writeAttr(w, "id", el.ID)
		}
		writeAttr(w, "data-kind", el.Kind.String())
		writeAttr(w, "data-value", el.Value)
		_, _ = w.WriteString(`><span class="` + prefix + `-note">`)
		_, _ = w.Write(util.EscapeHTML([]byte(text + ": " + el.Kind.String() + " " + el.Value)))
		_, _ = w.WriteString("</span>")
		if el.Range {
			_ = w.WriteByte('\n')
		}
	}
}

// --- HTML helpers ---

func classPrefix(el Element) string {
	if el.ClassPrefix == "" {
		return "directive"
	}
	return el.ClassPrefix
}

// Classes 返回元素的 class 列表，例如 "directive directive-anim directive-anim-parallax"
func Classes(el Element) string {
	prefix := classPrefix(el)
	kind := strings.ToLower(el.Kind.String())
	classes := []string{prefix, prefix + "-" + kind}
	for _, effect := range Effects(el.Preset) {
		classes = append(classes, prefix+"-"+kind+"-"+effect)
	}
	return strings.Join(classes, " ")
}

// openTag 写入不带结尾 '>' 的开始标签
func openTag(w util.BufWriter, tag string, el Element) {
	_, _ = w.WriteString("<" + tag)
	if el.ID != "" {
		writeAttr(w, "id", el.ID)
	}
	writeAttr(w, "class", Classes(el))
	writeAttr(w, "data-kind", el.Kind.String())
	writeAttr(w, "data-preset", el.Preset)
	writeAttr(w, "data-value", el.Value)
}

func writeAttr(w util.BufWriter, name, value string) {
	_, _ = w.WriteString(" " + name + `="`)
	_, _ = w.Write(util.EscapeHTML([]byte(value)))
	_ = w.WriteByte('"')
}
