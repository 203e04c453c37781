package filter

import (
	"github.com/nicwaller/fleece"
)

// Replace the value of a field with a new value, or add the field if it doesn’t already exist.
func Replace(field string, content string) fleece.FilterPlugin {
	return func(event *fleece.Event) error {
		return event.Field(field).SetCarefully(content)
	}
}

// Static applies configured fields in order, so a later duplicate key wins.
func Static(fields []fleece.StaticField) fleece.FilterPlugin {
	replacers := make([]fleece.FilterPlugin, 0, len(fields))
	for _, f := range fields {
		replacers = append(replacers, Replace(f.Key, f.Value))
	}
	return Chain(replacers...)
}

// Mandatory stamps the provenance fields. Add it after every other filter so
// that neither the input nor a static field can spoof them.
func Mandatory(hostname string) fleece.FilterPlugin {
	return Chain(
		Replace(fleece.FieldFile, fleece.StdinFile),
		Replace(fleece.FieldHost, hostname),
	)
}

// Enrich is Static followed by Mandatory.
func Enrich(fields []fleece.StaticField, hostname string) fleece.FilterPlugin {
	return Chain(Static(fields), Mandatory(hostname))
}

// Chain runs filters in order and stops at the first error.
func Chain(filters ...fleece.FilterPlugin) fleece.FilterPlugin {
	return func(event *fleece.Event) error {
		for _, f := range filters {
			if err := f(event); err != nil {
				return err
			}
		}
		return nil
	}
}
