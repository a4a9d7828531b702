package models

// NodeKind distinguishes folders from files in a projected tree
type NodeKind int

const (
	NodeFolder NodeKind = iota
	NodeFile
)

// Well-known icon file names inside an element bundle
const (
	IconFile     = "icon.png"
	DarkIconFile = "icon.dark.png"
)

// Node is one entry of the projected extension folder tree. Nodes are built
// once by the composer and treated as read-only afterwards.
type Node struct {
	Name     string
	Kind     NodeKind
	Children []*Node

	// Content is the body of a text file
	Content string

	// Icon is set for binary icon files; the bytes are resolved at export time
	Icon *IconSource
}

// IconSource describes where an icon file's bytes come from
type IconSource struct {
	// Asset is the shared asset name used when no data was uploaded
	Asset string
	// DataURI is the element's uploaded icon, if any
	DataURI string
}

// Folder builds a folder node
func Folder(name string, children ...*Node) *Node {
	return &Node{Name: name, Kind: NodeFolder, Children: children}
}

// TextFile builds a text file node
func TextFile(name, content string) *Node {
	return &Node{Name: name, Kind: NodeFile, Content: content}
}

// IconFileNode builds an icon file node
func IconFileNode(name, dataURI string) *Node {
	return &Node{Name: name, Kind: NodeFile, Icon: &IconSource{Asset: name, DataURI: dataURI}}
}

// IsFolder reports whether the node is a folder
func (n *Node) IsFolder() bool {
	return n.Kind == NodeFolder
}

// Child returns the direct child with the given name
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find walks a slash-free path of child names
func (n *Node) Find(names ...string) *Node {
	cur := n
	for _, name := range names {
		if cur == nil {
			return nil
		}
		cur = cur.Child(name)
	}
	return cur
}
