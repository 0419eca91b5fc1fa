package markdown

import (
	"fmt"
	"strings"
)

func blockMarkers(name string) (string, string) {
	return fmt.Sprintf("<!-- studydesk:%s:start -->", name), fmt.Sprintf("<!-- studydesk:%s:end -->", name)
}

// ReplaceBlock swaps the generated block called name inside body, appending
// it when body has none yet. An empty generated text removes the block.
func ReplaceBlock(body, name, generated string) string {
	startMarker, endMarker := blockMarkers(name)
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	hasBlock := start >= 0 && end > start

	if strings.TrimSpace(generated) == "" {
		if !hasBlock {
			return body
		}
		return strings.TrimRight(body[:start], "\n") + "\n" + strings.TrimLeft(body[end+len(endMarker):], "\n")
	}

	block := startMarker + "\n" + strings.TrimSpace(generated) + "\n" + endMarker
	if hasBlock {
		return body[:start] + block + body[end+len(endMarker):]
	}
	trimmed := strings.TrimRight(body, "\n")
	if strings.TrimSpace(trimmed) == "" {
		return block + "\n"
	}
	return trimmed + "\n\n" + block + "\n"
}
