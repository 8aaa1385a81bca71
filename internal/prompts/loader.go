// Package prompts serves the generation templates used by the rewrite,
// compose, scoring, and audit stages. Templates live in JSON files keyed by
// prompt name and are embedded into the binary.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFS embed.FS

// parsed prompt files, loaded once per filename
var files sync.Map // string -> map[string]string

// Get returns the template stored under key in the named file. The filename
// carries no path component ("composing.json", not "prompts/composing.json").
func Get(filename, key string) (string, error) {
	set, err := load(filename)
	if err != nil {
		return "", err
	}
	template, ok := set[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for templates the program cannot run without.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format substitutes {{.Key}} placeholders with values from data. Placeholders
// without a matching key are left intact so missing substitutions surface in
// the rendered prompt instead of vanishing.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

func load(filename string) (map[string]string, error) {
	if cached, ok := files.Load(filename); ok {
		return cached.(map[string]string), nil
	}

	data, err := promptFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var set map[string]string
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	actual, _ := files.LoadOrStore(filename, set)
	return actual.(map[string]string), nil
}

// ClearCache drops all parsed prompt files.
func ClearCache() {
	files.Range(func(key, _ any) bool {
		files.Delete(key)
		return true
	})
}
