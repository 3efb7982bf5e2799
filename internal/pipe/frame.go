package pipe

import "strings"

// finishedSentinel is the status marker Audacity appends to every reply.
const finishedSentinel = "BatchCommand finished: OK"

// extractResponse scans accumulated channel bytes for a complete response.
// The channel has no length prefix or request ID; the only framing signal is
// a blank line that follows at least one non-blank line. Blank lines before
// any content are channel noise and are skipped. Returns the response body
// with the trailing status sentinel stripped, and whether a full response
// was present.
func extractResponse(buf []byte) (string, bool) {
	lines := strings.Split(string(buf), "\n")
	// The final element is a partial line still being received; only
	// complete lines can terminate the message.
	var content []string
	for _, line := range lines[:len(lines)-1] {
		trimmed := strings.TrimRight(line, "\r")
		if trimmed == "" {
			if len(content) > 0 {
				return finalize(content), true
			}
			continue
		}
		content = append(content, trimmed)
	}
	return "", false
}

func finalize(lines []string) string {
	body := strings.Join(lines, "\n")
	body = strings.ReplaceAll(body, finishedSentinel, "")
	return strings.TrimSpace(body)
}
