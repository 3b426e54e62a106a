package cellmd

import "strings"

// diagramKeywords is the fixed set of diagram-grammar opening keywords.
// A document whose first non-whitespace token starts with one of these
// is treated as a standalone diagram description rather than Markdown.
var diagramKeywords = []string{
	"graph",
	"flowchart",
	"sequenceDiagram",
	"classDiagram",
	"stateDiagram-v2",
	"stateDiagram",
	"erDiagram",
	"journey",
	"gantt",
	"pie",
	"mindmap",
	"timeline",
	"quadrantChart",
	"xychart-beta",
	"sankey-beta",
	"requirementDiagram",
	"gitGraph",
	"C4Context",
	"C4Container",
	"C4Component",
	"C4Dynamic",
	"C4Deployment",
	"block-beta",
	"packet-beta",
	"architecture-beta",
	"kanban",
	"zenuml",
}

// IsDiagramDocument reports whether text is a standalone diagram
// description. The check is a cheap prefix heuristic, not a parser:
// leading and trailing whitespace is ignored, then the text must begin
// with one of the known diagram keywords. Matching is case-sensitive
// first, then case-insensitive as a fallback. A keyword appearing
// mid-document does not count.
func IsDiagramDocument(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	for _, kw := range diagramKeywords {
		if strings.HasPrefix(trimmed, kw) {
			return true
		}
	}

	lower := strings.ToLower(trimmed)
	for _, kw := range diagramKeywords {
		if strings.HasPrefix(lower, strings.ToLower(kw)) {
			return true
		}
	}

	return false
}
