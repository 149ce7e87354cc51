package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.Paths.LogDir, err = expandPath(firstNonEmpty(c.Paths.LogDir, defaultLogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	c.Tools.Transcoder = firstNonEmpty(strings.TrimSpace(c.Tools.Transcoder), defaultTranscoder)
	c.Tools.Recognizer = firstNonEmpty(strings.TrimSpace(c.Tools.Recognizer), defaultRecognizer)

	c.Defaults.Model = strings.ToLower(firstNonEmpty(strings.TrimSpace(c.Defaults.Model), defaultModel))

	c.Logging.Format = strings.ToLower(firstNonEmpty(strings.TrimSpace(c.Logging.Format), defaultLogFormat))
	c.Logging.Level = strings.ToLower(firstNonEmpty(strings.TrimSpace(c.Logging.Level), defaultLogLevel))

	return nil
}

func firstNonEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
