package models

import (
	"fmt"
	"strings"
)

// ElementType tags the variant of a ribbon element
type ElementType string

const (
	ElementPushButton   ElementType = "pushbutton"
	ElementPulldown     ElementType = "pulldown"
	ElementStack        ElementType = "stack"
	ElementSmartButton  ElementType = "smartbutton"
	ElementSplitButton  ElementType = "splitbutton"
	ElementToggleButton ElementType = "togglebutton"
	ElementLinkButton   ElementType = "linkbutton"
	ElementInvokeButton ElementType = "invokebutton"
)

// ElementTypes lists every element variant in display order
var ElementTypes = []ElementType{
	ElementPushButton,
	ElementPulldown,
	ElementStack,
	ElementSmartButton,
	ElementSplitButton,
	ElementToggleButton,
	ElementLinkButton,
	ElementInvokeButton,
}

// ParseElementType converts a user supplied tag into an ElementType
func ParseElementType(s string) (ElementType, error) {
	normalized := ElementType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range ElementTypes {
		if t == normalized {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown element type: %q", s)
}

// Valid reports whether t is one of the known variants
func (t ElementType) Valid() bool {
	for _, known := range ElementTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsContainer reports whether elements of this type own children
func (t ElementType) IsContainer() bool {
	return t == ElementPulldown || t == ElementStack
}

// IsExecutable reports whether the exported bundle carries a script
func (t ElementType) IsExecutable() bool {
	switch t {
	case ElementStack, ElementLinkButton, ElementInvokeButton:
		return false
	}
	return true
}

// StackCapacity is the maximum number of children a stack may hold
const StackCapacity = 3

// Tab is a top level ribbon grouping
type Tab struct {
	ID     string   `json:"-" yaml:"-"`
	Name   string   `json:"name" yaml:"name"`
	Panels []string `json:"panels" yaml:"panels"`
}

// Panel groups elements within a tab
type Panel struct {
	ID       string   `json:"-" yaml:"-"`
	Name     string   `json:"name" yaml:"name"`
	Elements []string `json:"elements" yaml:"elements"`
	TabID    string   `json:"tabId" yaml:"tab_id"`
}

// Element is a button-like unit. Exactly one of PanelID and ParentID is set.
type Element struct {
	ID       string      `json:"-" yaml:"-"`
	Type     ElementType `json:"type" yaml:"type"`
	Name     string      `json:"name" yaml:"name"`
	Title    string      `json:"title" yaml:"title"`
	Tooltip  string      `json:"tooltip" yaml:"tooltip"`
	Code     string      `json:"code,omitempty" yaml:"code,omitempty"`
	URL      string      `json:"url,omitempty" yaml:"url,omitempty"`
	Command  string      `json:"command,omitempty" yaml:"command,omitempty"`
	IconData string      `json:"iconData,omitempty" yaml:"icon_data,omitempty"`
	PanelID  string      `json:"panelId,omitempty" yaml:"panel_id,omitempty"`
	ParentID string      `json:"parentId,omitempty" yaml:"parent_id,omitempty"`
	Children []string    `json:"children,omitempty" yaml:"children,omitempty"`
}

// Container returns the reference of the container that owns the element
func (e *Element) Container() ContainerRef {
	if e.ParentID != "" {
		return ContainerRef{Kind: ContainerElement, ID: e.ParentID}
	}
	return ContainerRef{Kind: ContainerPanel, ID: e.PanelID}
}

// ElementFields are the mutable, user editable fields of an element
type ElementFields struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Tooltip  string `json:"tooltip"`
	Code     string `json:"code,omitempty"`
	URL      string `json:"url,omitempty"`
	Command  string `json:"command,omitempty"`
	IconData string `json:"iconData,omitempty"`
}

// Fields extracts the editable fields of an element
func (e *Element) Fields() ElementFields {
	return ElementFields{
		Name:     e.Name,
		Title:    e.Title,
		Tooltip:  e.Tooltip,
		Code:     e.Code,
		URL:      e.URL,
		Command:  e.Command,
		IconData: e.IconData,
	}
}

// ContainerKind distinguishes panels from container elements
type ContainerKind string

const (
	ContainerPanel   ContainerKind = "panel"
	ContainerElement ContainerKind = "element"
)

// ContainerRef names a container that holds an ordered list of elements
type ContainerRef struct {
	Kind ContainerKind `json:"kind" yaml:"kind"`
	ID   string        `json:"id" yaml:"id"`
}

func (r ContainerRef) String() string {
	return fmt.Sprintf("%s %s", r.Kind, r.ID)
}

// PanelRef is shorthand for a panel container reference
func PanelRef(id string) ContainerRef {
	return ContainerRef{Kind: ContainerPanel, ID: id}
}

// ElementRef is shorthand for a stack or pulldown container reference
func ElementRef(id string) ContainerRef {
	return ContainerRef{Kind: ContainerElement, ID: id}
}

// NextIDs holds the per-kind id counters
type NextIDs struct {
	Tab     int `json:"tab" yaml:"tab"`
	Panel   int `json:"panel" yaml:"panel"`
	Element int `json:"element" yaml:"element"`
}
