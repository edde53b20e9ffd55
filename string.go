package latex

import "strings"

// String returns plain text of the nodes, markup and comments are dropped
func String(nodes ...*Node) string {
	var b strings.Builder
	for _, node := range nodes {
		writeString(&b, node)
	}

	return b.String()
}

func writeString(b *strings.Builder, node *Node) {
	switch node.Kind {
	case TextKind:
		b.WriteString(node.Data)
	case CommentKind:
	default:
		for _, child := range node.Children {
			writeString(b, child)
		}
	}
}
