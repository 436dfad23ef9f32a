package catalog

import "strings"

// Attributes is the raw attribute set of a source row with typed accessors.
// Values are kept verbatim; absent keys read as empty strings.
type Attributes map[string]string

// Get returns the value and whether the key is present.
func (a Attributes) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a[key]
	return v, ok
}

// GetString returns the value or "" when absent.
func (a Attributes) GetString(key string) string {
	return a[key]
}

// GetBool interprets the export's flag encodings ("1"/"0", "true"/"false").
func (a Attributes) GetBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(a[key])) {
	case "1", "true", "t", "yes", "y":
		return true
	}
	return false
}

// Has checks if key exists (including empty values).
func (a Attributes) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Clone creates a shallow copy.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	result := make(Attributes, len(a))
	for k, v := range a {
		result[k] = v
	}
	return result
}
