package jsonish

import (
	"fmt"
	"strings"
)

// replace substitutes {key}-style placeholders in template with the
// stringified values from params, mirroring the schema package's own
// message-templating helper.
func replace(template string, params map[string]any) string {
	if len(params) == 0 {
		return template
	}
	for key, value := range params {
		placeholder := "{" + key + "}"
		template = strings.ReplaceAll(template, placeholder, fmt.Sprint(value))
	}
	return template
}
