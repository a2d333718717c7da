package inspect

import (
	"fmt"
	"strings"

	"mediumcheck/internal/resolver"
	"mediumcheck/internal/textutil"
)

const (
	modeOnText  = "Inspect mode: ON"
	noTextText  = "(no text)"
	promptText  = "Manual search: enter text (e.g. movie name or Title - Artist):"
	badgeLoad   = "Medium: …"
	badgeMissed = "Medium: ✗"
)

func badgeFound(total int) string {
	return fmt.Sprintf("Medium: ✓ (%d)", total)
}

func pendingText(query string) string {
	return quote(query) + "\nStatus: …"
}

// tooltipText renders a lookup answer. Failures quote the text that was sent;
// successes quote the normalized query echoed by the resolver.
func tooltipText(query string, status resolver.MediumStatus, maxItems int) string {
	if !status.OK {
		msg := status.Error
		if msg == "" {
			msg = "unknown"
		}
		return quote(query) + "\nError: " + msg
	}

	lines := []string{quote(status.Query)}
	if status.Found {
		lines = append(lines, fmt.Sprintf("Status: FOUND (%d)", status.Total))
	} else {
		lines = append(lines, "Status: missing")
	}

	var used []string
	if status.Used.Audio != "" {
		used = append(used, "audio="+quote(status.Used.Audio))
	}
	if status.Used.Video != "" {
		used = append(used, "video="+quote(status.Used.Video))
	}
	if len(used) > 0 {
		lines = append(lines, "Query: "+strings.Join(used, "  "))
	}

	if len(status.Items) > 0 {
		lines = append(lines, "", "Hits:")
		for i, item := range status.Items {
			if i >= maxItems {
				break
			}
			lines = append(lines, "- "+item)
		}
	}
	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + s + `"`
}

// extractQuery returns the first non-empty rendered text found on n or up to
// depth of its ancestors, whitespace collapsed and capped at maxChars.
func extractQuery(host Host, n Node, depth, maxChars int) string {
	current, ok := n, true
	for i := 0; i <= depth && ok; i++ {
		if text := textutil.CollapseSpace(host.Text(current)); text != "" {
			return textutil.Truncate(text, maxChars)
		}
		current, ok = host.Parent(current)
	}
	return ""
}
