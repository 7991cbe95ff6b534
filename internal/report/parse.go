package report

import (
	"github.com/tidwall/gjson"
)

// ParseQuantitative decodes a serialized module -> {score, max} object.
// Modules come back in document order; a repeated key keeps its first position
// and its last value. Anything that is not a JSON object yields an empty slice.
func ParseQuantitative(text string) []ModuleScore {
	if !gjson.Valid(text) {
		return []ModuleScore{}
	}
	doc := gjson.Parse(text)
	if !doc.IsObject() {
		return []ModuleScore{}
	}

	modules := newOrderedMap[ModuleScore]()
	doc.ForEach(func(key, value gjson.Result) bool {
		m := modules.entry(key.String())
		m.Module = key.String()
		m.Score = value.Get("score").Float()
		m.Max = value.Get("max").Float()
		return true
	})

	out := make([]ModuleScore, 0, modules.len())
	modules.each(func(_ string, m *ModuleScore) {
		out = append(out, *m)
	})
	return out
}

// ParseQualitative decodes a serialized array of {round, comment} objects.
// Non-object elements are skipped; anything that is not a JSON array yields an empty slice.
func ParseQualitative(text string) []Comment {
	if !gjson.Valid(text) {
		return []Comment{}
	}
	doc := gjson.Parse(text)
	if !doc.IsArray() {
		return []Comment{}
	}

	out := make([]Comment, 0)
	doc.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		out = append(out, Comment{
			Round:   value.Get("round").String(),
			Comment: value.Get("comment").String(),
		})
		return true
	})
	return out
}

// commentFor returns the first comment whose round names module, or NotAvailable.
func commentFor(comments []Comment, module string) string {
	for _, c := range comments {
		if c.Round == module {
			if c.Comment == "" {
				return NotAvailable
			}
			return c.Comment
		}
	}
	return NotAvailable
}
