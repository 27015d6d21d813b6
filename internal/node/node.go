// Package node defines the typed goldmark nodes produced from directive markers.
package node

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/yuin/goldmark/ast"

	"github.com/riverfjs/directivemd/internal/types"
)

// KindDirective is the goldmark node kind of Anim, Fx, Graph and Media elements.
var KindDirective = ast.NewNodeKind("Directive")

// KindEliasCue is the goldmark node kind of ELIAS cues.
var KindEliasCue = ast.NewNodeKind("EliasCue")

// idNamespace scopes element IDs so equal documents always get equal IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/riverfjs/directivemd"))

// Directive is a typed element carrying an opaque preset value.
// Only range containers (Range == true) own children.
type Directive struct {
	ast.BaseBlock
	Name  types.Kind
	Value string
	Range bool
	ID    string
	Line  int
}

// NewDirective returns a childless directive element.
func NewDirective(name types.Kind, value string) *Directive {
	return &Directive{Name: name, Value: value}
}

// NewRange returns an Anim container for an ANIM:start/ANIM:end span.
func NewRange(value string) *Directive {
	return &Directive{Name: types.KindAnim, Value: value, Range: true}
}

// Kind implements ast.Node.
func (n *Directive) Kind() ast.NodeKind {
	return KindDirective
}

// Dump implements ast.Node.
func (n *Directive) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name":  n.Name.String(),
		"Value": n.Value,
		"Range": strconv.FormatBool(n.Range),
	}, nil)
}

// EliasCue positions the narrator overlay along the chapter axis.
type EliasCue struct {
	ast.BaseBlock
	Mode  types.Mode
	At    float64
	AtRaw string
	Say   string
	ID    string
	Line  int
}

// NewEliasCue returns a cue element. at must already be parsed from atRaw.
func NewEliasCue(mode types.Mode, at float64, atRaw, say string) *EliasCue {
	return &EliasCue{Mode: mode, At: at, AtRaw: atRaw, Say: say}
}

// Kind implements ast.Node.
func (n *EliasCue) Kind() ast.NodeKind {
	return KindEliasCue
}

// Dump implements ast.Node.
func (n *EliasCue) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Mode": string(n.Mode),
		"At":   n.AtRaw,
		"Say":  n.Say,
	}, nil)
}

// ElementID derives a stable element ID from the element's kind, its ordinal
// among typed elements in document order, and its payload.
func ElementID(kind types.Kind, ordinal int, payload string) string {
	name := fmt.Sprintf("%s:%d:%s", kind, ordinal, payload)
	return kind.String() + "-" + uuid.NewSHA1(idNamespace, []byte(name)).String()[:8]
}

// AssignIDs numbers every typed element under root in document order.
func AssignIDs(root ast.Node) {
	ordinal := 0
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch el := n.(type) {
		case *Directive:
			el.ID = ElementID(el.Name, ordinal, el.Value)
			ordinal++
		case *EliasCue:
			el.ID = ElementID(types.KindEliasCue, ordinal, el.AtRaw+"|"+string(el.Mode))
			ordinal++
		}
		return ast.WalkContinue, nil
	})
}
