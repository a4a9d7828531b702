package layout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

var buttonNamePattern = regexp.MustCompile(`^` + DefaultButtonPrefix + ` (\d+)$`)

// sameName compares names the way sibling uniqueness does: case-insensitively
func sameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// uniqueName returns base if free, otherwise "base 1", "base 2", ...
func uniqueName(base string, taken []string) string {
	candidate := base
	for n := 1; containsName(taken, candidate); n++ {
		candidate = fmt.Sprintf("%s %d", base, n)
	}
	return candidate
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if sameName(n, name) {
			return true
		}
	}
	return false
}

// nextButtonName picks the smallest positive n such that "Button n" is not
// already used by a sibling. Gaps left by deletions are filled first.
func nextButtonName(siblings []string) string {
	used := map[int]bool{}
	for _, name := range siblings {
		m := buttonNamePattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			used[n] = true
		}
	}
	n := 1
	for used[n] {
		n++
	}
	return fmt.Sprintf("%s %d", DefaultButtonPrefix, n)
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	return nil
}

// ValidExtensionName checks a name used as the extension root folder and
// archive file name. It must stay a single path element.
func ValidExtensionName(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(name)
	if strings.ContainsAny(trimmed, `/\`) {
		return fmt.Errorf("%w: extension name %q must not contain path separators", ErrInvalidName, trimmed)
	}
	if trimmed == "." || trimmed == ".." {
		return fmt.Errorf("%w: extension name %q is not a folder name", ErrInvalidName, trimmed)
	}
	return nil
}

// cleanExtensionName keeps the last path element of a loaded name, or ""
// when nothing usable is left
func cleanExtensionName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = strings.TrimSpace(name[i+1:])
	}
	if name == "." || name == ".." {
		return ""
	}
	return name
}

func (s *Store) tabNames(except string) []string {
	var names []string
	for _, id := range s.tabOrder {
		if id == except {
			continue
		}
		names = append(names, s.tabs[id].Name)
	}
	return names
}

func (s *Store) panelNames(tabID, except string) []string {
	t, ok := s.tabs[tabID]
	if !ok {
		return nil
	}
	var names []string
	for _, id := range t.Panels {
		if id == except {
			continue
		}
		if p, ok := s.panels[id]; ok {
			names = append(names, p.Name)
		}
	}
	return names
}

// siblingNames lists element names in a container, skipping except
func (s *Store) siblingNames(ref models.ContainerRef, except string) []string {
	ids, err := s.childSlice(ref)
	if err != nil {
		return nil
	}
	var names []string
	for _, id := range *ids {
		if id == except {
			continue
		}
		if e, ok := s.elements[id]; ok {
			names = append(names, e.Name)
		}
	}
	return names
}

// DefaultElementName returns the name a new element in ref would get when
// the user leaves the name blank
func (s *Store) DefaultElementName(ref models.ContainerRef) (string, error) {
	if _, err := s.childSlice(ref); err != nil {
		return "", err
	}
	return nextButtonName(s.siblingNames(ref, "")), nil
}
