package pipeline

import (
	"testing"

	"github.com/Vrajesh-Sharma/Blog-Agent/internal/agent"
)

func TestDecodeResearch(t *testing.T) {
	res := agent.Result{Data: map[string]interface{}{
		"key_points": []interface{}{"a", "b"},
		"sources": []interface{}{
			map[string]interface{}{"title": "t", "url": "u", "snippet": "s"},
			"not a mapping",
		},
	}}
	got := decodeResearch(res)
	if len(got.KeyPoints) != 2 || got.KeyPoints[0] != "a" {
		t.Fatalf("key points: %+v", got.KeyPoints)
	}
	if len(got.Sources) != 1 || got.Sources[0].URL != "u" {
		t.Fatalf("sources: %+v", got.Sources)
	}
}

func TestDecodeResearchDegradesGracefully(t *testing.T) {
	// mapping without key_points decodes to an empty list
	got := decodeResearch(agent.Result{Data: map[string]interface{}{"something": 1}})
	if got.KeyPoints == nil || len(got.KeyPoints) != 0 {
		t.Fatalf("expected empty key points, got %+v", got.KeyPoints)
	}

	// plain text becomes a single key point
	got = decodeResearch(agent.Result{Text: "freeform research notes"})
	if len(got.KeyPoints) != 1 || got.KeyPoints[0] != "freeform research notes" {
		t.Fatalf("text fallback: %+v", got.KeyPoints)
	}
}

func TestDecodeOutline(t *testing.T) {
	res := agent.Result{Data: map[string]interface{}{
		"title": "A Blog",
		"sections": []interface{}{
			map[string]interface{}{"heading": "Intro", "short_description": "d"},
			"Bare heading line",
		},
	}}
	got := decodeOutline(res)
	if got.Title != "A Blog" || len(got.Sections) != 2 {
		t.Fatalf("outline: %+v", got)
	}
	if got.Sections[1].Heading != "Bare heading line" {
		t.Fatalf("string section: %+v", got.Sections[1])
	}

	if !decodeOutline(agent.Result{Text: "no structure"}).empty() {
		t.Fatal("text-only outline must decode empty")
	}
}
