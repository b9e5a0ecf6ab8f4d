// Package graph renders flow definitions as Mermaid flowcharts for
// documentation and debugging.
package graph

import (
	"fmt"
	"strings"

	"github.com/vitaehq/converse/pkg/domain"
)

// Overlay contains dynamic session data to visualize on the graph.
type Overlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces Mermaid flowchart syntax for a flow definition.
// Node shapes follow semantics:
//   - start/end: ((circle))
//   - question: [/parallelogram/] (input)
//   - condition: {diamond}
//   - api-call/webhook/action: [[subroutine]]
//   - default: [rectangle]
func GenerateMermaid(def *domain.FlowDefinition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range def.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Type {
		case domain.NodeTypeStart, domain.NodeTypeEnd:
			opener, closer = "((", "))"
		case domain.NodeTypeQuestion:
			opener, closer = "[/", "/]"
		case domain.NodeTypeCondition:
			opener, closer = "{", "}"
		case domain.NodeTypeAPICall, domain.NodeTypeWebhook, domain.NodeTypeAction:
			opener, closer = "[[", "]]"
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, nodeLabel(node), closer))
	}

	for _, edge := range def.Edges {
		from := sanitizeMermaidID(edge.Source)
		to := sanitizeMermaidID(edge.Target)

		arrow := "-->"
		if label := edgeLabel(edge); label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", label)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow, to))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

// nodeLabel prefers human-readable text over node IDs where the node
// carries any.
func nodeLabel(node domain.Node) string {
	var text string
	switch data := node.Data.(type) {
	case domain.QuestionData:
		text = data.Text
	case domain.MessageData:
		text = data.Content
	case domain.EndData:
		text = data.Message
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return node.ID
	}
	if len(text) > 40 {
		text = text[:37] + "..."
	}
	return strings.ReplaceAll(text, "\"", "'")
}

// edgeLabel favors the explicit label, then the source handle.
func edgeLabel(edge domain.Edge) string {
	label := edge.Label
	if label == "" {
		label = edge.SourceHandle
	}
	return strings.ReplaceAll(label, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
