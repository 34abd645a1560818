package forge

import "strings"

// Delimiters the assistant is instructed to wrap its structured field
// updates in. Everything between them is machine-readable; everything
// outside is shown to the user.
const (
	UpdatesStartMarker = "=== CONSIDERATION UPDATES ==="
	UpdatesEndMarker   = "=== END CONSIDERATION UPDATES ==="
)

// ParseAssistantReply splits a raw assistant reply into the user-visible
// text and the field updates embedded in the delimited block. When no
// well-formed block is present the reply passes through unchanged with an
// empty update map, and the caller falls back to keyword inference.
func ParseAssistantReply(raw string) (string, map[string]string) {
	updates := map[string]string{}

	start := strings.Index(raw, UpdatesStartMarker)
	if start == -1 {
		return raw, updates
	}
	end := strings.Index(raw[start:], UpdatesEndMarker)
	if end == -1 {
		return raw, updates
	}
	end += start

	block := raw[start+len(UpdatesStartMarker) : end]
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		fieldID, content, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fieldID = strings.TrimSpace(fieldID)
		content = strings.TrimSpace(content)
		if fieldID == "" || content == "" {
			continue
		}
		// Duplicate ids within one block: the later entry wins.
		updates[fieldID] = content
	}

	visible := strings.TrimSpace(raw[:start]) + strings.TrimSpace(raw[end+len(UpdatesEndMarker):])
	return visible, updates
}
