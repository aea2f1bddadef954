package session

import (
	"sync"

	"github.com/Vrajesh-Sharma/Blog-Agent/models"
)

// Preferences holds the process-wide default generation preferences. Updates
// apply to every generation started afterwards.
type Preferences struct {
	mu     sync.RWMutex
	values models.Preferences
}

// NewPreferences seeds the store. A nil seed starts from the built-in
// defaults.
func NewPreferences(seed models.Preferences) *Preferences {
	base := models.DefaultPreferences()
	if seed != nil {
		base = base.Merge(seed)
	}
	return &Preferences{values: base}
}

// Get returns a copy of the current defaults.
func (p *Preferences) Get() models.Preferences {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(models.Preferences, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Merge overlays the given keys onto the defaults. Keys are not validated;
// unknown ones are kept and passed through to the agents.
func (p *Preferences) Merge(updates models.Preferences) models.Preferences {
	p.mu.Lock()
	p.values = p.values.Merge(updates)
	p.mu.Unlock()
	return p.Get()
}
