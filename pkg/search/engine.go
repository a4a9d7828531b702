// Package search finds tabs, panels and elements of a layout with a small
// field:value query language.
package search

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

const pathSeparator = "/"

// Item is one searchable entity of the layout
type Item struct {
	Kind    layout.EntityKind  `json:"kind" yaml:"kind"`
	ID      string             `json:"id" yaml:"id"`
	Name    string             `json:"name" yaml:"name"`
	Path    string             `json:"path" yaml:"path"`
	Type    models.ElementType `json:"type,omitempty" yaml:"type,omitempty"`
	Title   string             `json:"title,omitempty" yaml:"title,omitempty"`
	Tooltip string             `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
}

// Result represents a search result with relevance score
type Result struct {
	Item       Item                `json:"item" yaml:"item"`
	Score      float64             `json:"score" yaml:"score"`
	Highlights map[string][]string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// Engine searches an index built from one layout snapshot
type Engine struct {
	mu     sync.RWMutex
	items  []Item
	tokens map[string][]int // word -> sorted item indices
	parser *Parser
}

// NewEngine creates an engine indexing store
func NewEngine(store *layout.Store) *Engine {
	e := &Engine{parser: NewParser()}
	e.BuildIndex(store)
	return e
}

// BuildIndex replaces the index with the current contents of store, in
// ribbon order
func (e *Engine) BuildIndex(store *layout.Store) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	e.tokens = make(map[string][]int)

	for _, tabID := range store.TabIDs() {
		tab, err := store.Tab(tabID)
		if err != nil {
			continue
		}
		e.add(Item{Kind: layout.KindTab, ID: tabID, Name: tab.Name, Path: tab.Name})
		for _, panelID := range tab.Panels {
			panel, err := store.Panel(panelID)
			if err != nil {
				continue
			}
			path := tab.Name + pathSeparator + panel.Name
			e.add(Item{Kind: layout.KindPanel, ID: panelID, Name: panel.Name, Path: path})
			e.addElements(store, panel.Elements, path)
		}
	}
}

func (e *Engine) addElements(store *layout.Store, ids []string, parent string) {
	for _, id := range ids {
		el, err := store.Element(id)
		if err != nil {
			continue
		}
		path := parent + pathSeparator + el.Name
		e.add(Item{
			Kind:    layout.KindElement,
			ID:      id,
			Name:    el.Name,
			Path:    path,
			Type:    el.Type,
			Title:   el.Title,
			Tooltip: el.Tooltip,
		})
		e.addElements(store, el.Children, path)
	}
}

func (e *Engine) add(item Item) {
	idx := len(e.items)
	e.items = append(e.items, item)
	for _, token := range tokenizeContent(item.Name + " " + item.Title + " " + item.Tooltip) {
		if n := len(e.tokens[token]); n > 0 && e.tokens[token][n-1] == idx {
			continue
		}
		e.tokens[token] = append(e.tokens[token], idx)
	}
}

// Len returns the number of indexed items
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.items)
}

// Items returns every indexed item in ribbon order
func (e *Engine) Items() []Item {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.items)
}

// Search runs queryStr against the index. An empty query matches
// everything. Results are ordered by score, then ribbon order.
func (e *Engine) Search(queryStr string) ([]Result, error) {
	query, err := e.parser.Parse(queryStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	var matches []int
	if len(query.Conditions) == 0 {
		for i := range e.items {
			matches = append(matches, i)
		}
	} else {
		sets := make([][]int, len(query.Conditions))
		for i, condition := range query.Conditions {
			sets[i] = e.evaluate(condition)
		}
		matches = combine(sets, query.Logic)
	}

	results := make([]Result, 0, len(matches))
	for _, idx := range matches {
		item := e.items[idx]
		results = append(results, Result{
			Item:       item,
			Score:      e.score(idx, query),
			Highlights: highlights(item, query),
		})
	}
	// matches are in index order, so the stable sort keeps ribbon order
	// between equal scores
	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return results, nil
}

// evaluate returns the sorted indices of items satisfying condition
func (e *Engine) evaluate(condition Condition) []int {
	needle := strings.ToLower(condition.Value)

	var matches []int
	switch condition.Field {
	case FieldContent:
		matches = e.filter(func(item Item) bool {
			return containsFold(item.Name, needle) || containsFold(item.Title, needle) ||
				containsFold(item.Tooltip, needle) || containsFold(item.Path, needle)
		})
	default:
		matches = e.filter(func(item Item) bool {
			return matchField(item, condition.Field, needle)
		})
	}

	if condition.Negate {
		matches = e.invert(matches)
	}
	return matches
}

func matchField(item Item, field FieldType, needle string) bool {
	switch field {
	case FieldElementType:
		return item.Type != "" && strings.HasPrefix(string(item.Type), needle)
	case FieldKind:
		return string(item.Kind) == needle
	case FieldID:
		return strings.ToLower(item.ID) == needle
	case FieldName:
		return containsFold(item.Name, needle)
	case FieldTitle:
		return containsFold(item.Title, needle)
	case FieldTooltip:
		return containsFold(item.Tooltip, needle)
	}
	return false
}

func (e *Engine) filter(keep func(Item) bool) []int {
	var out []int
	for i, item := range e.items {
		if keep(item) {
			out = append(out, i)
		}
	}
	return out
}

// invert returns all indices not in matches
func (e *Engine) invert(matches []int) []int {
	var out []int
	for i := range e.items {
		if _, found := slices.BinarySearch(matches, i); !found {
			out = append(out, i)
		}
	}
	return out
}

// combine folds the match sets left to right. AND binds no tighter than OR.
func combine(sets [][]int, operators []Operator) []int {
	if len(sets) == 0 {
		return nil
	}

	result := sets[0]
	for i := 1; i < len(sets); i++ {
		switch operators[i-1] {
		case OperatorAND:
			result = intersect(result, sets[i])
		case OperatorOR:
			result = union(result, sets[i])
		}
	}
	return result
}

// score boosts name matches over matches found only in titles or tooltips,
// and whole word hits over partial ones
func (e *Engine) score(idx int, query *Query) float64 {
	item := e.items[idx]
	total := 1.0
	name := strings.ToLower(item.Name)
	for _, condition := range query.Conditions {
		if condition.Negate {
			continue
		}
		needle := strings.ToLower(condition.Value)
		switch condition.Field {
		case FieldName, FieldContent:
			switch {
			case name == needle:
				total += 2.0
			case strings.HasPrefix(name, needle):
				total += 1.0
			case strings.Contains(name, needle):
				total += 0.5
			}
			if _, found := slices.BinarySearch(e.tokens[needle], idx); found {
				total += 0.5
			}
		case FieldID:
			total += 2.0
		}
	}
	return total
}

// highlights collects short excerpts around free text hits
func highlights(item Item, query *Query) map[string][]string {
	out := make(map[string][]string)
	for _, condition := range query.Conditions {
		if condition.Negate {
			continue
		}
		switch condition.Field {
		case FieldContent, FieldTooltip:
			if excerpts := extractExcerpts(item.Tooltip, condition.Value, 2, 30); len(excerpts) > 0 {
				out["tooltip"] = excerpts
			}
			if condition.Field == FieldContent && containsFold(item.Name, strings.ToLower(condition.Value)) {
				out["name"] = []string{item.Name}
			}
		case FieldName:
			out["name"] = []string{item.Name}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

func tokenizeContent(content string) []string {
	var tokens []string
	content = strings.ReplaceAll(strings.ToLower(content), "-", " ")
	for _, word := range strings.Fields(content) {
		word = strings.Trim(word, ".,!?;:\"'()")
		if len(word) > 2 {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func intersect(a, b []int) []int {
	var out []int
	for _, v := range a {
		if _, found := slices.BinarySearch(b, v); found {
			out = append(out, v)
		}
	}
	return out
}

func union(a, b []int) []int {
	out := append(slices.Clone(a), b...)
	slices.Sort(out)
	return slices.Compact(out)
}

func extractExcerpts(content, searchTerm string, maxExcerpts, contextChars int) []string {
	var excerpts []string
	lowerContent := strings.ToLower(content)
	lowerTerm := strings.ToLower(searchTerm)
	if lowerTerm == "" || len(lowerContent) != len(content) {
		return nil
	}

	index := 0
	for range maxExcerpts {
		pos := strings.Index(lowerContent[index:], lowerTerm)
		if pos == -1 {
			break
		}
		pos += index
		start := max(0, pos-contextChars)
		end := min(len(content), pos+len(searchTerm)+contextChars)

		excerpt := content[start:end]
		if start > 0 {
			excerpt = "..." + excerpt
		}
		if end < len(content) {
			excerpt += "..."
		}
		excerpts = append(excerpts, excerpt)
		index = pos + len(searchTerm)
	}
	return excerpts
}
