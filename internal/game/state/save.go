package state

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// saveVersion guards against loading files written by an incompatible
// schema.
const saveVersion = 1

// yamlSaveFile is the top-level YAML structure for save files.
type yamlSaveFile struct {
	Version   int          `yaml:"version"`
	Resources yamlResource `yaml:"resources"`
	Minions   []yamlMinion `yaml:"minions"`
}

// yamlResource is the YAML representation of the resource pool.
type yamlResource struct {
	Mana       int     `yaml:"mana"`
	SoulEnergy int     `yaml:"soul_energy"`
	Corruption float64 `yaml:"corruption"`
	Day        int     `yaml:"day"`
}

// yamlMinion is the YAML representation of one minion.
type yamlMinion struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Power   int    `yaml:"power"`
	Loyalty int    `yaml:"loyalty"`
}

// Save writes the game state to a YAML file.
//
// Postcondition: On success the file round-trips through Load.
func (g *GameState) Save(path string) error {
	doc := yamlSaveFile{
		Version: saveVersion,
		Resources: yamlResource{
			Mana:       g.Resources.Mana,
			SoulEnergy: g.Resources.SoulEnergy,
			Corruption: g.Resources.Corruption,
			Day:        g.Resources.Day,
		},
	}
	for _, m := range g.Minions {
		doc.Minions = append(doc.Minions, yamlMinion{
			ID:      m.ID,
			Name:    m.Name,
			Type:    string(m.Type),
			Power:   m.Power,
			Loyalty: m.Loyalty,
		})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshalling save file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing save file: %w", err)
	}
	return nil
}

// Load reads and validates a YAML save file.
//
// Precondition: path must point to a file written by Save.
// Postcondition: Returns a validated GameState or a non-nil error.
func Load(path string) (*GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading save file %s: %w", path, err)
	}

	var doc yamlSaveFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing save file %s: %w", path, err)
	}
	if doc.Version != saveVersion {
		return nil, fmt.Errorf("save file version %d not supported (want %d)", doc.Version, saveVersion)
	}
	if doc.Resources.Mana < 0 || doc.Resources.SoulEnergy < 0 || doc.Resources.Day < 1 {
		return nil, fmt.Errorf("save file %s has invalid resources", path)
	}

	g := &GameState{
		Resources: Resources{
			Mana:       doc.Resources.Mana,
			SoulEnergy: doc.Resources.SoulEnergy,
			Corruption: doc.Resources.Corruption,
			Day:        doc.Resources.Day,
		},
	}
	for _, ym := range doc.Minions {
		if ym.ID == "" || !ValidMinionType(MinionType(ym.Type)) {
			return nil, fmt.Errorf("save file %s has invalid minion %q of type %q", path, ym.Name, ym.Type)
		}
		g.Minions = append(g.Minions, &Minion{
			ID:      ym.ID,
			Name:    ym.Name,
			Type:    MinionType(ym.Type),
			Power:   ym.Power,
			Loyalty: ym.Loyalty,
		})
	}
	return g, nil
}
