package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	vars := map[string]string{
		"name": "Ada",
		"city": "London",
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"simple", "Hello {{name}}!", "Hello Ada!"},
		{"whitespace inside braces", "Hello {{ name }}!", "Hello Ada!"},
		{"multiple placeholders", "{{name}} from {{city}}", "Ada from London"},
		{"unknown variable renders empty", "Hi {{missing}}.", "Hi ."},
		{"no placeholders", "plain text", "plain text"},
		{"repeated placeholder", "{{name}} {{name}}", "Ada Ada"},
		{"single braces untouched", "{name}", "{name}"},
		{"invalid identifier untouched", "{{1bad}}", "{{1bad}}"},
		{"empty template", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.template, vars))
		})
	}
}

func TestRenderNilVars(t *testing.T) {
	assert.Equal(t, "Hi !", Render("Hi {{name}}!", nil))
}

func TestRenderMap(t *testing.T) {
	vars := map[string]string{"token": "abc123"}

	got := RenderMap(map[string]string{
		"Authorization": "Bearer {{token}}",
		"Accept":        "application/json",
	}, vars)

	assert.Equal(t, "Bearer abc123", got["Authorization"])
	assert.Equal(t, "application/json", got["Accept"])
	assert.Nil(t, RenderMap(nil, vars))
}
