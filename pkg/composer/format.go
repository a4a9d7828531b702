package composer

import (
	"strings"

	"github.com/pyrx/pyrx-cli/pkg/models"
)

const (
	treeTee    = "├── "
	treeCorner = "└── "
	treeLine   = "│   "
	treeBlank  = "    "
)

// FormatTree renders the tree in directory-listing notation, one node per
// line in pre-order. The root is drawn as a last child.
func FormatTree(root *models.Node) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	writeTree(&sb, root, "", true)
	return sb.String()
}

func writeTree(sb *strings.Builder, n *models.Node, prefix string, isLast bool) {
	marker := treeTee
	childPrefix := prefix + treeLine
	if isLast {
		marker = treeCorner
		childPrefix = prefix + treeBlank
	}
	sb.WriteString(prefix + marker + n.Name + "\n")

	for i, child := range n.Children {
		writeTree(sb, child, childPrefix, i == len(n.Children)-1)
	}
}

// CountNodes returns the number of folders and files in the tree
func CountNodes(root *models.Node) (folders, files int) {
	if root == nil {
		return 0, 0
	}
	if root.IsFolder() {
		folders++
	} else {
		files++
	}
	for _, child := range root.Children {
		f, fi := CountNodes(child)
		folders += f
		files += fi
	}
	return folders, files
}
