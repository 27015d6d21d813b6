package preset

import (
	"sort"
	"strings"
	"sync"

	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/directivemd/internal/types"
)

// Handler writes the HTML for one element. It is called once when entering
// the node and once when leaving it; range children are rendered in between.
type Handler func(w util.BufWriter, el Element, entering bool)

type key struct {
	kind types.Kind
	name string
}

type prefixEntry struct {
	kind    types.Kind
	prefix  string
	handler Handler
}

// Registry is a dispatch table from (kind, preset name) to Handler.
// Lookup order: alias rewrite, exact name, longest prefix, fallback.
type Registry struct {
	mu       sync.RWMutex
	exact    map[key]Handler
	prefixes []prefixEntry
	aliases  map[string]string
	fallback Handler
}

// NewRegistry creates an empty registry with the given fallback handler.
func NewRegistry(fallback Handler) *Registry {
	return &Registry{
		exact:    make(map[key]Handler),
		aliases:  make(map[string]string),
		fallback: fallback,
	}
}

// Register adds a handler for an exact preset name.
func (r *Registry) Register(kind types.Kind, name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exact[key{kind, strings.ToLower(name)}] = h
}

// RegisterPrefix adds a handler for every preset starting with prefix.
func (r *Registry) RegisterPrefix(kind types.Kind, prefix string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes = append(r.prefixes, prefixEntry{kind: kind, prefix: strings.ToLower(prefix), handler: h})
	sort.SliceStable(r.prefixes, func(i, j int) bool {
		return len(r.prefixes[i].prefix) > len(r.prefixes[j].prefix)
	})
}

// Alias maps an alternative preset name onto an existing one.
func (r *Registry) Alias(alias, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = strings.ToLower(target)
}

// Lookup resolves a preset. The bool reports whether a registered handler
// matched; when false the returned handler is the fallback.
func (r *Registry) Lookup(kind types.Kind, name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.ToLower(name)
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	if h, ok := r.exact[key{kind, name}]; ok {
		return h, true
	}
	for _, p := range r.prefixes {
		if p.kind == kind && strings.HasPrefix(name, p.prefix) {
			return p.handler, true
		}
	}
	return r.fallback, false
}

// Supported reports whether a preset resolves to a registered handler.
func (r *Registry) Supported(kind types.Kind, name string) bool {
	_, ok := r.Lookup(kind, name)
	return ok
}

// Render dispatches el to its handler.
func (r *Registry) Render(w util.BufWriter, el Element, entering bool) {
	h, _ := r.Lookup(el.Kind, el.Preset)
	if h == nil {
		return
	}
	h(w, el, entering)
}
