package models

import "time"

// Preferences is the free-form user preference mapping shared by every
// pipeline stage. Arbitrary keys are accepted and merged without validation;
// the typed accessors below cover the keys the agents actually honor.
type Preferences map[string]interface{}

// DefaultPreferences returns the process-wide fallback preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		"tone":             "professional",
		"length":           "1500-2000",
		"audience":         "developers",
		"include_examples": true,
	}
}

func (p Preferences) str(key, def string) string {
	if v, ok := p[key].(string); ok && v != "" {
		return v
	}
	return def
}

func (p Preferences) Tone() string     { return p.str("tone", "professional") }
func (p Preferences) Length() string   { return p.str("length", "1500-2000") }
func (p Preferences) Audience() string { return p.str("audience", "developers") }

func (p Preferences) IncludeExamples() bool {
	if v, ok := p["include_examples"].(bool); ok {
		return v
	}
	return true
}

// Merge overlays other onto a copy of p, leaving both inputs untouched.
func (p Preferences) Merge(other Preferences) Preferences {
	out := make(Preferences, len(p)+len(other))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// BlogSummary is the archived record of one completed generation, served by
// the history endpoint.
type BlogSummary struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Status    string    `json:"status"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"date"`
}
