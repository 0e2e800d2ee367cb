package snippets

import (
	"filterdesk/internal/config"
)

// Option is one selectable line of the filter builder.
type Option struct {
	Group string
	Label string
	Text  string
}

// RenderOptions flattens snippet groups into picker order.
func RenderOptions(groups []config.SnippetGroup) []Option {
	var out []Option
	for _, g := range groups {
		for _, it := range g.Items {
			text := it.Text
			if text == "" {
				text = it.Label
			}
			if text == "" {
				continue
			}
			label := it.Label
			if label == "" {
				label = text
			}
			out = append(out, Option{Group: g.Name, Label: label, Text: text})
		}
	}
	return out
}
