package worldfile

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"seedsolver/pkg/engine/world"
)

// compileRule turns a rule expression into a world.Rule. Accepted forms:
//
//	always | never            constants
//	Bow                       has one Bow
//	[a, b]                    all of a, b
//	{has: Bow}                has one Bow
//	{has: {item: X, count: n}}
//	{all: [...]}, {any: [...]}
//	{reach: Region}           region reached in the current mode
//	{reach: {region: R, mode: adult}}
//	{mode: adult}             only in the named mode
func compileRule(w *world.World, node *yaml.Node) (world.Rule, error) {
	switch node.Kind {
	case 0:
		return world.Always, nil
	case yaml.AliasNode:
		return compileRule(w, node.Alias)
	case yaml.ScalarNode:
		switch strings.ToLower(node.Value) {
		case "", "always", "true":
			return world.Always, nil
		case "never", "false":
			return world.Never, nil
		}
		return world.Has(node.Value), nil
	case yaml.SequenceNode:
		rules, err := compileRules(w, node.Content)
		if err != nil {
			return nil, err
		}
		return world.All(rules...), nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nil, ruleError(w, node, "rule mapping must have exactly one key")
		}
		return compileOperator(w, node.Content[0], node.Content[1])
	}
	return nil, ruleError(w, node, "unsupported rule")
}

func compileRules(w *world.World, nodes []*yaml.Node) ([]world.Rule, error) {
	rules := make([]world.Rule, 0, len(nodes))
	for _, n := range nodes {
		r, err := compileRule(w, n)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func compileOperator(w *world.World, key, value *yaml.Node) (world.Rule, error) {
	switch key.Value {
	case "all", "any":
		if value.Kind != yaml.SequenceNode {
			return nil, ruleError(w, value, key.Value+" expects a list")
		}
		rules, err := compileRules(w, value.Content)
		if err != nil {
			return nil, err
		}
		if key.Value == "all" {
			return world.All(rules...), nil
		}
		return world.Any(rules...), nil

	case "has":
		if value.Kind == yaml.ScalarNode {
			return world.Has(value.Value), nil
		}
		var spec struct {
			Item  string `yaml:"item"`
			Count int    `yaml:"count"`
		}
		if err := value.Decode(&spec); err != nil {
			return nil, ruleError(w, value, err.Error())
		}
		if spec.Item == "" {
			return nil, ruleError(w, value, "has without an item")
		}
		if spec.Count == 0 {
			spec.Count = 1
		}
		return world.HasCount(spec.Item, spec.Count), nil

	case "reach":
		if value.Kind == yaml.ScalarNode {
			return world.CanReach(value.Value), nil
		}
		var spec struct {
			Region string `yaml:"region"`
			Mode   string `yaml:"mode"`
		}
		if err := value.Decode(&spec); err != nil {
			return nil, ruleError(w, value, err.Error())
		}
		if spec.Region == "" {
			return nil, ruleError(w, value, "reach without a region")
		}
		if spec.Mode == "" {
			return world.CanReach(spec.Region), nil
		}
		m, ok := w.ModeByName(spec.Mode)
		if !ok {
			return nil, ruleError(w, value, fmt.Sprintf("unknown mode %q", spec.Mode))
		}
		return world.CanReachAs(spec.Region, m), nil

	case "mode":
		m, ok := w.ModeByName(value.Value)
		if !ok {
			return nil, ruleError(w, value, fmt.Sprintf("unknown mode %q", value.Value))
		}
		return world.AsMode(m), nil
	}
	return nil, ruleError(w, key, fmt.Sprintf("unknown rule operator %q", key.Value))
}

func ruleError(w *world.World, node *yaml.Node, msg string) error {
	return &ParseError{World: w.ID, Line: node.Line, Msg: msg}
}
