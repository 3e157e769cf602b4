package keymap

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Danondso/xremap-core/internal/config"
	"github.com/Danondso/xremap-core/internal/keycode"
)

// Build parses and merges a config.Rules document into a Table,
// validating trigger grammar and predicate regexes as it goes. Errors
// are ConfigError, tagged with the offending rule's name when given.
func Build(rules *config.Rules) (*Table, error) {
	t := &Table{Modmap: map[uint16]uint16{}}

	for _, mm := range rules.Modmap {
		for from, to := range mm.Remap {
			fromCode, err := keycode.Resolve(from)
			if err != nil {
				return nil, &ConfigError{RuleName: mm.Name, Err: err}
			}
			toCode, err := keycode.Resolve(to)
			if err != nil {
				return nil, &ConfigError{RuleName: mm.Name, Err: err}
			}
			t.Modmap[fromCode] = toCode
		}
	}

	for _, km := range rules.Keymap {
		entry, err := buildEntry(km)
		if err != nil {
			return nil, err
		}
		t.Merge(entry)
	}

	return t, nil
}

func buildEntry(km config.KeymapEntry) (Entry, error) {
	e := Entry{Name: km.Name, ExactMatch: km.ExactMatch}

	var err error
	if km.Application != nil {
		if e.Application, err = CompilePredicate(km.Application.Only, km.Application.Not); err != nil {
			return Entry{}, &ConfigError{RuleName: km.Name, Err: err}
		}
	}
	if km.Device != nil {
		if e.Device, err = CompilePredicate(km.Device.Only, km.Device.Not); err != nil {
			return Entry{}, &ConfigError{RuleName: km.Name, Err: err}
		}
	}
	if km.Window != nil {
		if e.Window, err = CompilePredicate(km.Window.Only, km.Window.Not); err != nil {
			return Entry{}, &ConfigError{RuleName: km.Name, Err: err}
		}
	}

	rules, err := buildRules(&km.Remap, km.Name)
	if err != nil {
		return Entry{}, err
	}
	e.Rules, e.AnyRule = SplitAny(rules)
	return e, nil
}

// buildRules walks a YAML mapping node's trigger->action pairs in
// declaration order, producing the ordered Rule list a decision tree
// needs for first-match tie-breaking (spec §4.3).
func buildRules(node *yaml.Node, ruleName string) ([]Rule, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &ConfigError{RuleName: ruleName, Err: fmt.Errorf("remap must be a mapping")}
	}
	var rules []Rule
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		chord, err := ParseChord(keyNode.Value)
		if err != nil {
			return nil, &ConfigError{RuleName: ruleName, Err: err}
		}
		action, err := decodeAction(valNode, ruleName)
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{Trigger: chord, Action: action})
	}
	return rules, nil
}

func decodeAction(node *yaml.Node, ruleName string) (Action, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return Action{Suppressed: true}, nil
		}
		chord, err := ParseChord(node.Value)
		if err != nil {
			return Action{}, &ConfigError{RuleName: ruleName, Err: err}
		}
		return Action{Steps: []Step{{Kind: StepChord, Chord: chord}}}, nil

	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return Action{Suppressed: true}, nil
		}
		var steps []Step
		var submap *SubmapTable
		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				chord, err := ParseChord(item.Value)
				if err != nil {
					return Action{}, &ConfigError{RuleName: ruleName, Err: err}
				}
				steps = append(steps, Step{Kind: StepChord, Chord: chord})
			case yaml.MappingNode:
				sm, launch, err := decodeStepMap(item, ruleName)
				if err != nil {
					return Action{}, err
				}
				if sm != nil {
					submap = sm
				}
				if launch != nil {
					steps = append(steps, Step{Kind: StepLaunch, Launch: launch})
				}
			default:
				return Action{}, &ConfigError{RuleName: ruleName, Err: fmt.Errorf("unsupported action list element")}
			}
		}
		return Action{Steps: steps, Submap: submap}, nil

	case yaml.MappingNode:
		sm, launch, err := decodeStepMap(node, ruleName)
		if err != nil {
			return Action{}, err
		}
		if launch != nil {
			return Action{Steps: []Step{{Kind: StepLaunch, Launch: launch}}}, nil
		}
		return Action{Submap: sm}, nil

	case 0:
		return Action{Suppressed: true}, nil
	}
	return Action{}, &ConfigError{RuleName: ruleName, Err: fmt.Errorf("unsupported action shape")}
}

func decodeStepMap(node *yaml.Node, ruleName string) (*SubmapTable, []string, error) {
	var m struct {
		Remap  yaml.Node `yaml:"remap"`
		Launch yaml.Node `yaml:"launch"`
	}
	if err := node.Decode(&m); err != nil {
		return nil, nil, &ConfigError{RuleName: ruleName, Err: err}
	}
	if m.Remap.Kind != 0 {
		rules, err := buildRules(&m.Remap, ruleName)
		if err != nil {
			return nil, nil, err
		}
		specific, any := SplitAny(rules)
		return &SubmapTable{Rules: specific, AnyRule: any}, nil, nil
	}
	switch m.Launch.Kind {
	case yaml.ScalarNode:
		return nil, []string{m.Launch.Value}, nil
	case yaml.SequenceNode:
		var cmd []string
		for _, c := range m.Launch.Content {
			cmd = append(cmd, c.Value)
		}
		return nil, cmd, nil
	}
	return nil, nil, &ConfigError{RuleName: ruleName, Err: fmt.Errorf("action map must contain remap or launch")}
}
