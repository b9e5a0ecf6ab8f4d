// Package interpolate substitutes {{variable}} placeholders in flow text.
package interpolate

import (
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Render replaces every {{name}} placeholder with the value from vars.
// Unknown variables render as the empty string rather than leaking the
// placeholder to the user.
func Render(template string, vars map[string]string) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	return placeholder.ReplaceAllStringFunc(template, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		return vars[name]
	})
}

// RenderMap renders every value of a string map, returning a new map.
// A nil input returns nil.
func RenderMap(in map[string]string, vars map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = Render(v, vars)
	}
	return out
}
