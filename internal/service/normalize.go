package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"screen_navigator/internal/domain/models"
)

const codeFence = "```"

// stripCodeFence trims the response and, when it opens with a code fence,
// drops its first and last lines.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, codeFence) {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= 2 {
		return ""
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}

// normalizeResponse turns the model's answer into a ScreenAnalysis. A single
// JSON object is kept verbatim; anything else degrades to the raw fallback.
func normalizeResponse(artifact string, response string) *models.ScreenAnalysis {
	text := stripCodeFence(response)
	if isJSONObject(text) {
		return models.NewParsedAnalysis(artifact, []byte(text))
	}
	return models.NewRawFallbackAnalysis(artifact, text)
}

func isJSONObject(text string) bool {
	b := []byte(text)
	if !json.Valid(b) {
		return false
	}
	b = bytes.TrimLeft(b, " \t\r\n")
	return len(b) > 0 && b[0] == '{'
}
