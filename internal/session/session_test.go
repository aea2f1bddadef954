package session

import (
	"sync"
	"testing"

	"github.com/Vrajesh-Sharma/Blog-Agent/models"
)

func TestStoreGetUnknown(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get("nope"); ok {
		t.Fatal("expected miss for unknown id")
	}
}

func TestStoreCreateAndUpdate(t *testing.T) {
	s := NewStore()
	id := s.Create("u1", "AI Agents", models.DefaultPreferences())

	rec, ok := s.Get(id)
	if !ok {
		t.Fatalf("session %s not found", id)
	}
	if rec.Status != StatusInProgress || rec.Topic != "AI Agents" {
		t.Fatalf("bad initial record: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}

	s.Update(id, func(r *Record) {
		r.CurrentStage = "research"
		r.StagesCompleted = append(r.StagesCompleted, "research")
	})
	rec, _ = s.Get(id)
	if rec.CurrentStage != "research" || len(rec.StagesCompleted) != 1 {
		t.Fatalf("update not applied: %+v", rec)
	}
}

func TestStoreGetReturnsSnapshot(t *testing.T) {
	s := NewStore()
	id := s.Create("", "t", nil)
	s.Update(id, func(r *Record) {
		r.StagesCompleted = append(r.StagesCompleted, "research")
	})

	snap, _ := s.Get(id)
	snap.StagesCompleted[0] = "tampered"
	snap.Status = StatusFailed

	rec, _ := s.Get(id)
	if rec.StagesCompleted[0] != "research" || rec.Status != StatusInProgress {
		t.Fatalf("snapshot mutation leaked into store: %+v", rec)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := s.Create("", "t", nil)
			s.Update(id, func(r *Record) { r.Status = StatusComplete })
			if rec, ok := s.Get(id); !ok || rec.Status != StatusComplete {
				t.Errorf("lost update for %s", id)
			}
		}()
	}
	wg.Wait()
	if s.Len() != 20 {
		t.Fatalf("expected 20 sessions, got %d", s.Len())
	}
}

func TestPreferencesMerge(t *testing.T) {
	p := NewPreferences(nil)
	before := p.Get()
	if before.Tone() != "professional" {
		t.Fatalf("unexpected defaults: %+v", before)
	}

	after := p.Merge(models.Preferences{"tone": "casual", "custom_key": 42})
	if after.Tone() != "casual" {
		t.Fatalf("merge not applied: %+v", after)
	}
	if after["custom_key"] != 42 {
		t.Fatalf("unknown keys must be kept: %+v", after)
	}
	if after.Audience() != "developers" {
		t.Fatalf("untouched defaults lost: %+v", after)
	}

	// earlier snapshots stay frozen
	if before.Tone() != "professional" {
		t.Fatalf("snapshot mutated: %+v", before)
	}
}
