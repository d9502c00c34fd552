package codec

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"
)

// morseTreeNodes returns every code of the Morse table plus all of its
// prefixes, ordered breadth first with dot before dash. The empty string is
// the root.
func morseTreeNodes() []string {
	seen := map[string]bool{"": true}
	for _, code := range morseCodes {
		if code == MorseWordSeparator {
			continue
		}
		for i := 1; i <= len(code); i++ {
			seen[code[:i]] = true
		}
	}
	nodes := make([]string, 0, len(seen))
	for code := range seen {
		nodes = append(nodes, code)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if len(nodes[i]) != len(nodes[j]) {
			return len(nodes[i]) < len(nodes[j])
		}
		// '-' sorts before '.' in ASCII, so compare inverted.
		return strings.Map(invertMorse, nodes[i]) < strings.Map(invertMorse, nodes[j])
	})
	return nodes
}

func invertMorse(r rune) rune {
	if r == MorseDot {
		return MorseDash
	}
	return MorseDot
}

func morseNodeID(code string) string {
	if code == "" {
		return "root"
	}
	return "n" + strings.NewReplacer(".", "d", "-", "h").Replace(code)
}

// MorseTreeDOT returns the Morse dichotomic tree as a Graphviz digraph.
// Following a left edge appends a dot and a right edge appends a dash, so the
// path from the root to a letter spells its code. Prefixes that are not
// codes themselves are drawn as small blank points.
func MorseTreeDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph Morse {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	nodes := morseTreeNodes()
	for _, code := range nodes {
		id := morseNodeID(code)
		switch r, ok := morseLetters[code]; {
		case code == "":
			fmt.Fprintf(&buf, "  %s [label=\"START\", shape=box, style=\"filled,rounded\"];\n", id)
		case ok:
			fmt.Fprintf(&buf, "  %s [label=%q, shape=circle, tooltip=%q];\n", id, string(r), code)
		default:
			fmt.Fprintf(&buf, "  %s [label=\"\", shape=point, width=0.08];\n", id)
		}
	}
	buf.WriteString("\n")

	for _, code := range nodes {
		if code == "" {
			continue
		}
		parent := code[:len(code)-1]
		style := "solid"
		if code[len(code)-1] == MorseDot {
			style = "dotted"
		}
		fmt.Fprintf(&buf, "  %s -> %s [style=%s, label=%q];\n", morseNodeID(parent), morseNodeID(code), style, code[len(code)-1:])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderMorseTree renders MorseTreeDOT with Graphviz. format is "svg" or
// "png".
func RenderMorseTree(ctx context.Context, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch strings.ToLower(format) {
	case "", "svg":
		gvFormat = graphviz.SVG
	case "png":
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("unsupported morse tree format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(MorseTreeDOT()))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", gvFormat, err)
	}
	return buf.Bytes(), nil
}
