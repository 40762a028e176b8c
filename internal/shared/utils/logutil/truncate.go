// Package logutil keeps secrets out of log lines.
package logutil

// TruncateForLog keeps at most maxLen leading characters of s, marking the
// cut with "...". Bearer tokens and session references go through here so a
// prefix lands in the log without the credential.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
