package whisper

import (
	"encoding/json"
	"fmt"
	"os"
)

// SidecarExtensions lists every output format the recognizer may emit,
// in the order summaries display them. Any subset may actually appear.
var SidecarExtensions = []string{".srt", ".json", ".tsv", ".txt", ".vtt"}

type jsonPayload struct {
	Language         string `json:"language"`
	LanguageDetected string `json:"language_detected"`
}

// DetectedLanguage reads the recognizer's JSON sidecar and returns the
// language it reported. A missing file yields an empty string, not an
// error, since the JSON sidecar is optional output.
func DetectedLanguage(jsonPath string) (string, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var payload jsonPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("parse recognizer json: %w", err)
	}
	if payload.Language != "" {
		return payload.Language, nil
	}
	return payload.LanguageDetected, nil
}
