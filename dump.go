package pmap

import "fmt"
import "io"
import "strings"

//============================================= Diagnostic Dump


// Dump writes a human readable rendering of the map's trie shape to w: one line per node, indented
// by depth, showing each node's kind and occupancy. It exists purely for debugging, e.g. inspecting
// boundary shapes (promotion, demotion, collision growth); the format is not part of any
// compatibility guarantee and may change between versions.
func (m *Map[K, V]) Dump(w io.Writer) error {
	return dumpNode(w, m.root, 0)
}

func dumpNode[K, V any](w io.Writer, n node[K, V], depth int) error {
	indent := strings.Repeat("  ", depth)

	switch self := n.(type) {
	case *bitmapNode[K, V]:
		if _, err := fmt.Fprintf(w, "%sbitmap(%d slots)\n", indent, len(self.slots)); err != nil { return err }
		for _, slot := range self.slots {
			if slot.isLeaf {
				if _, err := fmt.Fprintf(w, "%s  leaf %v -> %v\n", indent, slot.key, slot.value); err != nil { return err }
				continue
			}
			if err := dumpNode(w, slot.child, depth+1); err != nil { return err }
		}

	case *arrayNode[K, V]:
		if _, err := fmt.Fprintf(w, "%sarray(%d children)\n", indent, self.count); err != nil { return err }
		for _, child := range self.children {
			if child == nil { continue }
			if err := dumpNode(w, child, depth+1); err != nil { return err }
		}

	case *collisionNode[K, V]:
		if _, err := fmt.Fprintf(w, "%scollision(hash=%d, %d entries)\n", indent, self.hash, len(self.entries)); err != nil { return err }
		for _, e := range self.entries {
			if _, err := fmt.Fprintf(w, "%s  leaf %v -> %v\n", indent, e.key, e.value); err != nil { return err }
		}

	default:
		invariantViolation("unknown node kind in dump")
	}

	return nil
}
