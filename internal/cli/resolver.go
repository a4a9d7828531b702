package cli

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

// PathSeparator joins names in an entity path, e.g. "Main/Tools/Run Script"
const PathSeparator = "/"

// maxSuggestions caps the "did you mean" list
const maxSuggestions = 3

// ErrAmbiguousReference is returned when a bare name matches several entities
var ErrAmbiguousReference = errors.New("ambiguous reference")

// Entity is a tab, panel or element located by a reference
type Entity struct {
	Kind  layout.EntityKind  `json:"kind" yaml:"kind"`
	ID    string             `json:"id" yaml:"id"`
	Name  string             `json:"name" yaml:"name"`
	Path  string             `json:"path" yaml:"path"`
	Type  models.ElementType `json:"type,omitempty" yaml:"type,omitempty"`
	Depth int                `json:"depth" yaml:"depth"`
}

// ContainerRef returns the container reference for a panel or container
// element
func (e Entity) ContainerRef() (models.ContainerRef, error) {
	switch {
	case e.Kind == layout.KindPanel:
		return models.PanelRef(e.ID), nil
	case e.Kind == layout.KindElement && e.Type.IsContainer():
		return models.ElementRef(e.ID), nil
	}
	return models.ContainerRef{}, fmt.Errorf("%w: %s %q is not a container", layout.ErrUnsupportedNesting, e.label(), e.Path)
}

func (e Entity) label() string {
	if e.Kind == layout.KindElement {
		return string(e.Type)
	}
	return string(e.Kind)
}

// Resolver finds entities by id, by name path, or by a unique name. It
// indexes a snapshot of the store; build a new one after mutating.
type Resolver struct {
	entries []Entity
}

// NewResolver indexes every entity of the store in ribbon order
func NewResolver(store *layout.Store) *Resolver {
	r := &Resolver{}
	for _, tabID := range store.TabIDs() {
		tab, err := store.Tab(tabID)
		if err != nil {
			continue
		}
		r.entries = append(r.entries, Entity{Kind: layout.KindTab, ID: tabID, Name: tab.Name, Path: tab.Name})
		for _, panelID := range tab.Panels {
			panel, err := store.Panel(panelID)
			if err != nil {
				continue
			}
			path := tab.Name + PathSeparator + panel.Name
			r.entries = append(r.entries, Entity{Kind: layout.KindPanel, ID: panelID, Name: panel.Name, Path: path, Depth: 1})
			r.addElements(store, panel.Elements, path, 2)
		}
	}
	return r
}

func (r *Resolver) addElements(store *layout.Store, ids []string, parent string, depth int) {
	for _, id := range ids {
		e, err := store.Element(id)
		if err != nil {
			continue
		}
		path := parent + PathSeparator + e.Name
		r.entries = append(r.entries, Entity{Kind: layout.KindElement, ID: id, Name: e.Name, Path: path, Type: e.Type, Depth: depth})
		r.addElements(store, e.Children, path, depth+1)
	}
}

// Entities returns every indexed entity in ribbon order
func (r *Resolver) Entities() []Entity {
	return slices.Clone(r.entries)
}

// Resolve finds the entity named by ref, restricted to kinds when given.
// ref is tried as an id, then as a full path, then as a bare name; names
// compare case-insensitively.
func (r *Resolver) Resolve(ref string, kinds ...layout.EntityKind) (Entity, error) {
	ref = strings.TrimSpace(ref)
	candidates := r.ofKind(kinds)

	for _, e := range candidates {
		if e.ID == ref {
			return e, nil
		}
	}

	var matches []Entity
	for _, e := range candidates {
		if strings.EqualFold(e.Path, ref) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		for _, e := range candidates {
			if strings.EqualFold(e.Name, ref) {
				matches = append(matches, e)
			}
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		hint := ""
		if s := Suggest(ref, candidates); len(s) > 0 {
			hint = fmt.Sprintf(" (did you mean %s?)", quoteJoin(s))
		}
		return Entity{}, fmt.Errorf("%w: %s %q%s", layout.ErrNotFound, kindLabel(kinds), ref, hint)
	}

	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = m.Path
	}
	return Entity{}, fmt.Errorf("%w: %q matches %s; use the full path or id", ErrAmbiguousReference, ref, quoteJoin(paths))
}

// Container resolves ref to a panel or a stack/pulldown element
func (r *Resolver) Container(ref string) (models.ContainerRef, Entity, error) {
	e, err := r.Resolve(ref, layout.KindPanel, layout.KindElement)
	if err != nil {
		return models.ContainerRef{}, Entity{}, err
	}
	cref, err := e.ContainerRef()
	return cref, e, err
}

func (r *Resolver) ofKind(kinds []layout.EntityKind) []Entity {
	if len(kinds) == 0 {
		return r.entries
	}
	var out []Entity
	for _, e := range r.entries {
		if slices.Contains(kinds, e.Kind) {
			out = append(out, e)
		}
	}
	return out
}

// Suggest returns up to three entity paths close to ref by edit distance
func Suggest(ref string, candidates []Entity) []string {
	type scored struct {
		path string
		dist int
	}

	needle := strings.ToLower(ref)
	limit := max(2, len(needle)/3)

	var hits []scored
	for _, e := range candidates {
		d := min(
			levenshtein.ComputeDistance(needle, strings.ToLower(e.Name)),
			levenshtein.ComputeDistance(needle, strings.ToLower(e.Path)),
		)
		if d <= limit {
			hits = append(hits, scored{path: e.Path, dist: d})
		}
	}
	slices.SortStableFunc(hits, func(a, b scored) int {
		return cmp.Compare(a.dist, b.dist)
	})

	var out []string
	for _, h := range hits {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, h.path)
	}
	return out
}

func kindLabel(kinds []layout.EntityKind) string {
	if len(kinds) == 1 {
		return string(kinds[0])
	}
	return "item"
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
