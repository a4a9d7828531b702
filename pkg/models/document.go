package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DocumentVersion is written into every saved layout
const DocumentVersion = "1.0"

// Document is the flat, serialisable form of a layout
type Document struct {
	Version       string              `json:"version"`
	ExtensionName string              `json:"extensionName"`
	Tabs          TabSet              `json:"tabs"`
	Panels        map[string]*Panel   `json:"panels"`
	Elements      map[string]*Element `json:"elements"`
	ActiveTabID   string              `json:"activeTabId,omitempty"`
	NextIDs       *NextIDs            `json:"nextIds,omitempty"`
}

// TabSet is a tab mapping that remembers insertion order. Tab order is the
// ribbon order, so it has to survive a trip through a JSON object.
type TabSet struct {
	Order []string
	ByID  map[string]*Tab
}

// NewTabSet creates an empty tab set
func NewTabSet() TabSet {
	return TabSet{ByID: map[string]*Tab{}}
}

// Add appends a tab, replacing any earlier tab with the same id
func (s *TabSet) Add(id string, tab *Tab) {
	if s.ByID == nil {
		s.ByID = map[string]*Tab{}
	}
	if _, exists := s.ByID[id]; !exists {
		s.Order = append(s.Order, id)
	}
	s.ByID[id] = tab
}

// Len returns the number of tabs
func (s TabSet) Len() int {
	return len(s.Order)
}

func (s TabSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range s.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(s.ByID[id])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tab %s: %w", id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *TabSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("tabs must be an object")
	}

	set := NewTabSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("tabs: expected string key")
		}
		var tab Tab
		if err := dec.Decode(&tab); err != nil {
			return fmt.Errorf("tabs: failed to decode %s: %w", id, err)
		}
		set.Add(id, &tab)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = set
	return nil
}
