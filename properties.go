// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

// field is one processed property.
type field struct {
	name      string
	token     string
	fragments []string
	required  bool
}

// key returns property name with required marker.
func (item field) key() string {
	if item.required {
		return item.name + "*"
	}

	return item.name
}

// processProperties renders every property of object node in declaration order.
func (f *formatter) processProperties(node *Object) []field {
	properties := objectField(node, "properties")
	if properties.Len() == 0 {
		return nil
	}

	required := make(map[string]struct{})
	for _, name := range asStringSlice(sliceField(node, "required")) {
		required[name] = struct{}{}
	}

	out := make([]field, 0, properties.Len())
	for _, name := range properties.Keys() {
		value, _ := properties.Get(name)
		_, isRequired := required[name]
		if isRequired {
			f.sawRequired = true
		}

		out = append(out, field{
			name:      name,
			required:  isRequired,
			token:     f.resolveNode(value),
			fragments: f.metadataFragments(value),
		})
	}

	return out
}

// rootFields processes root properties once per conversion.
func (f *formatter) rootFields() []field {
	if f.fieldsDone {
		return f.fields
	}

	f.fields = f.processProperties(f.root)
	f.fieldsDone = true
	return f.fields
}

// hasProperties reports whether node declares at least one property.
func hasProperties(node *Object) bool {
	return objectField(node, "properties").Len() > 0
}
