// Package manifest reads the per-target system selection lists. A manifest
// names which system types to load for each deployment target; it does not
// influence instantiation order (the resolver does), but the list for a
// target must be a superset sufficient to satisfy all required capabilities
// transitively.
package manifest

import (
	"encoding/json"
	"os"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/errors"
)

// Manifest maps deployment targets to the system names selected for them.
type Manifest struct {
	Targets map[plume.Target][]string `json:"targets"`
}

// Parse decodes a JSON manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.ParseFailed("manifest", err)
	}
	if len(m.Targets) == 0 {
		return nil, errors.InvalidInput(errors.PhaseParse, "manifest declares no targets")
	}
	for target, systems := range m.Targets {
		seen := make(map[string]bool, len(systems))
		for _, name := range systems {
			if name == "" {
				return nil, errors.InvalidInput(errors.PhaseParse,
					"manifest target "+string(target)+" lists an empty system name")
			}
			if seen[name] {
				return nil, errors.Duplicate(errors.PhaseParse, "manifest system", name)
			}
			seen[name] = true
		}
	}
	return &m, nil
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read manifest", err)
	}
	return Parse(data)
}

// Systems returns the selection list for target. A missing target selects
// nothing.
func (m *Manifest) Systems(target plume.Target) []string {
	systems := m.Targets[target]
	out := make([]string, len(systems))
	copy(out, systems)
	return out
}

// Enabled reports whether name is selected for target.
func (m *Manifest) Enabled(target plume.Target, name string) bool {
	for _, s := range m.Targets[target] {
		if s == name {
			return true
		}
	}
	return false
}
