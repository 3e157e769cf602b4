package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Predicate is the `only`/`not` regex predicate shape shared by
// application, device, and window context matching.
type Predicate struct {
	Only []string `yaml:"only"`
	Not  []string `yaml:"not"`
}

// ModmapEntry is one unconditional modmap block.
type ModmapEntry struct {
	Name        string            `yaml:"name"`
	Application *Predicate        `yaml:"application"`
	Device      *Predicate        `yaml:"device"`
	Remap       map[string]string `yaml:"remap"`
}

// KeymapEntry is one conditional keymap block. Remap values are left
// as raw YAML nodes because an action is one of: a chord string, a
// list mixing chords/launch/sub-map, `null`, or a bare sub-map map —
// internal/keymap decodes the shape once the schema is otherwise valid.
type KeymapEntry struct {
	Name        string     `yaml:"name"`
	ExactMatch  bool       `yaml:"exact_match"`
	Application *Predicate `yaml:"application"`
	Device      *Predicate `yaml:"device"`
	Window      *Predicate `yaml:"window"`
	// Remap is kept as a raw mapping node (rather than map[string]yaml.Node)
	// so internal/keymap can walk trigger->action pairs in declaration
	// order; Go maps would scramble the order the merge/tie-break rules
	// in spec §4.1/§4.3 depend on.
	Remap yaml.Node `yaml:"remap"`
}

// Rules is the parsed modmap/keymap document (spec §6).
type Rules struct {
	Modmap []ModmapEntry `yaml:"modmap"`
	Keymap []KeymapEntry `yaml:"keymap"`
}

// LoadRules reads and decodes the YAML rule tree at path. This is a
// ConfigError in the sense of spec §7: a malformed document is
// rejected here, before the event loop begins.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	r, err := LoadRulesFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	return r, nil
}

// LoadRulesFromBytes decodes a YAML rule tree already in memory,
// shared by LoadRules and tests that build a document inline.
func LoadRulesFromBytes(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
