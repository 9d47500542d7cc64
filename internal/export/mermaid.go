package export

import (
	"fmt"
	"io"
	"strings"

	"entity-extractor/internal/extract"
)

// mermaidCardinality maps relationship keys to Mermaid erDiagram edges.
var mermaidCardinality = map[extract.RelationshipKey]string{
	extract.KeyInherits:    "||--||",
	extract.KeyReferences:  "}o--||",
	extract.KeyHasChildren: "||--o{",
	extract.KeyEnum:        "}o..||",
}

// encodeMermaid renders res as a Mermaid erDiagram. Enum members are listed
// as "value" attributes.
func encodeMermaid(w io.Writer, res *extract.Result) error {
	var sb strings.Builder

	sb.WriteString("erDiagram\n")

	for _, e := range res.Entities {
		fmt.Fprintf(&sb, "    %s {\n", mermaidIdent(e.Name))

		for pair := e.Attributes.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Value.IsValues() {
				for _, member := range pair.Value.Values {
					fmt.Fprintf(&sb, "        value %s\n", mermaidIdent(member))
				}

				continue
			}

			fmt.Fprintf(&sb, "        %s %s\n", mermaidType(pair.Value.Type), mermaidIdent(pair.Key))
		}

		sb.WriteString("    }\n")
	}

	for _, r := range res.Relationships {
		edge, ok := mermaidCardinality[r.Key]
		if !ok {
			edge = "||--||"
		}

		fmt.Fprintf(&sb, "    %s %s %s : %s\n", mermaidIdent(r.FromEntity), edge, mermaidIdent(r.ToEntity), r.Key)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write mermaid: %w", err)
	}

	return nil
}

// mermaidType renders "List<T>" as "T[]" and sanitizes the rest.
func mermaidType(t string) string {
	if inner, ok := strings.CutPrefix(t, "List<"); ok && strings.HasSuffix(inner, ">") {
		return mermaidIdent(strings.TrimSuffix(inner, ">")) + "[]"
	}

	return mermaidIdent(t)
}

// mermaidIdent replaces characters Mermaid does not accept in names.
func mermaidIdent(s string) string {
	if s == "" {
		return "_"
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}
