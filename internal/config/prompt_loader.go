package config

import (
	"fmt"
	"os"
	"strings"
)

// LoadPromptContent resolves a prompt config value: an existing file
// path is read, anything containing a placeholder is treated as inline
// template content, and an empty value returns "" so the caller can
// fall back to its compiled-in default.
func LoadPromptContent(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if strings.Contains(value, "{{") {
		return value, nil
	}
	data, err := os.ReadFile(value)
	if err != nil {
		return "", fmt.Errorf("read prompt file %q: %w", value, err)
	}
	return string(data), nil
}
