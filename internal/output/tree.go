package output

import (
	"path"
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "
)

type treeNode struct {
	name     string
	children map[string]*treeNode
}

// RenderTree renders slash-separated relative paths as a tree under root.
// Directories sort before files.
func RenderTree(root string, paths []string) string {
	top := &treeNode{name: root, children: map[string]*treeNode{}}
	for _, p := range paths {
		node := top
		for _, part := range strings.Split(path.Clean(p), "/") {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{name: part, children: map[string]*treeNode{}}
				node.children[part] = child
			}
			node = child
		}
	}

	var sb strings.Builder
	sb.WriteString(StyleAction.Render(root + "/"))
	sb.WriteString("\n")
	writeChildren(&sb, top, "")
	return sb.String()
}

func writeChildren(sb *strings.Builder, node *treeNode, prefix string) {
	children := make([]*treeNode, 0, len(node.children))
	for _, c := range node.children {
		children = append(children, c)
	}
	sort.Slice(children, func(i, j int) bool {
		di, dj := len(children[i].children) > 0, len(children[j].children) > 0
		if di != dj {
			return di
		}
		return children[i].name < children[j].name
	})

	for i, c := range children {
		last := i == len(children)-1
		connector, next := treeEdge, treeVert
		if last {
			connector, next = treeLast, treeSpace
		}

		name := c.name
		if len(c.children) > 0 {
			name += "/"
		}
		sb.WriteString(prefix + connector + name + "\n")
		writeChildren(sb, c, prefix+next)
	}
}
