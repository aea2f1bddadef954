package pipeline

import (
	"github.com/Vrajesh-Sharma/Blog-Agent/internal/agent"
	"github.com/Vrajesh-Sharma/Blog-Agent/utils"
)

// Typed views over the loosely-structured stage outputs. Decoding is
// lenient: missing or malformed fields degrade to empty values so a sloppy
// upstream answer never fails the pipeline on its own.

// Source is one research citation.
type Source struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// ResearchData is the decoded research stage output.
type ResearchData struct {
	KeyPoints []string `json:"key_points"`
	Sources   []Source `json:"sources"`
}

// OutlineSection is one planned section of the post.
type OutlineSection struct {
	Heading          string `json:"heading"`
	ShortDescription string `json:"short_description"`
}

// Outline is the decoded outline stage output.
type Outline struct {
	Title    string           `json:"title"`
	Sections []OutlineSection `json:"sections"`
}

// decodeResearch pulls key points and sources out of a research result.
// A plain-text result becomes a single key point, mirroring how a model
// answer without structure is still usable research.
func decodeResearch(res agent.Result) ResearchData {
	out := ResearchData{KeyPoints: []string{}, Sources: []Source{}}
	if res.Data == nil {
		if res.Text != "" {
			out.KeyPoints = []string{res.Text}
		}
		return out
	}
	out.KeyPoints = stringSlice(res.Data["key_points"])
	if out.KeyPoints == nil {
		out.KeyPoints = []string{}
	}
	if items, ok := res.Data["sources"].([]interface{}); ok {
		for _, item := range items {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			out.Sources = append(out.Sources, Source{
				Title:   utils.Str(m["title"]),
				URL:     utils.Str(m["url"]),
				Snippet: utils.Str(m["snippet"]),
			})
		}
	}
	return out
}

// decodeOutline pulls the title and sections out of an outline result.
func decodeOutline(res agent.Result) Outline {
	out := Outline{Sections: []OutlineSection{}}
	if res.Data == nil {
		return out
	}
	out.Title = utils.Str(res.Data["title"])
	if items, ok := res.Data["sections"].([]interface{}); ok {
		for _, item := range items {
			switch v := item.(type) {
			case map[string]interface{}:
				out.Sections = append(out.Sections, OutlineSection{
					Heading:          utils.Str(v["heading"]),
					ShortDescription: utils.Str(v["short_description"]),
				})
			case string:
				out.Sections = append(out.Sections, OutlineSection{Heading: v})
			}
		}
	}
	return out
}

// empty reports whether nothing usable was decoded.
func (o Outline) empty() bool { return o.Title == "" && len(o.Sections) == 0 }
