package world

import (
	"fmt"
	"strings"
)

// RuleContext is what an access rule may observe: the collection state of
// the rule's world and the region sets reached so far.
type RuleContext interface {
	ItemCount(kind string) int
	CanReach(region string, mode Mode) bool
}

// Rule is an access-rule predicate. Rules are built once at load time and are
// opaque to the search engine.
type Rule interface {
	Evaluate(ctx RuleContext, mode Mode) bool
	String() string
}

// Evaluate evaluates r, treating a nil rule as always satisfied.
func Evaluate(r Rule, ctx RuleContext, mode Mode) bool {
	if r == nil {
		return true
	}
	return r.Evaluate(ctx, mode)
}

type constRule bool

func (c constRule) Evaluate(RuleContext, Mode) bool { return bool(c) }

func (c constRule) String() string {
	if c {
		return "always"
	}
	return "never"
}

// Always and Never are the constant rules.
var (
	Always Rule = constRule(true)
	Never  Rule = constRule(false)
)

type hasRule struct {
	kind  string
	count int
}

// Has requires at least one item of the given kind.
func Has(kind string) Rule {
	return hasRule{kind: kind, count: 1}
}

// HasCount requires at least count items of the given kind.
func HasCount(kind string, count int) Rule {
	if count <= 0 {
		return Always
	}
	return hasRule{kind: kind, count: count}
}

func (h hasRule) Evaluate(ctx RuleContext, _ Mode) bool {
	return ctx.ItemCount(h.kind) >= h.count
}

func (h hasRule) String() string {
	if h.count == 1 {
		return fmt.Sprintf("has(%s)", h.kind)
	}
	return fmt.Sprintf("has(%s, %d)", h.kind, h.count)
}

type allRule []Rule

// All is satisfied when every sub-rule is. An empty All is always satisfied.
func All(rules ...Rule) Rule {
	if len(rules) == 1 {
		return rules[0]
	}
	return allRule(rules)
}

func (a allRule) Evaluate(ctx RuleContext, mode Mode) bool {
	for _, r := range a {
		if !Evaluate(r, ctx, mode) {
			return false
		}
	}
	return true
}

func (a allRule) String() string {
	return "all(" + joinRules(a) + ")"
}

type anyRule []Rule

// Any is satisfied when at least one sub-rule is. An empty Any is never satisfied.
func Any(rules ...Rule) Rule {
	if len(rules) == 1 {
		return rules[0]
	}
	return anyRule(rules)
}

func (a anyRule) Evaluate(ctx RuleContext, mode Mode) bool {
	for _, r := range a {
		if Evaluate(r, ctx, mode) {
			return true
		}
	}
	return false
}

func (a anyRule) String() string {
	return "any(" + joinRules(a) + ")"
}

type reachRule struct {
	region string
	mode   *Mode
}

// CanReach requires the named region to be reached in the mode the rule is
// evaluated in.
func CanReach(region string) Rule {
	return reachRule{region: region}
}

// CanReachAs requires the named region to be reached in a specific mode.
func CanReachAs(region string, mode Mode) Rule {
	return reachRule{region: region, mode: &mode}
}

func (r reachRule) Evaluate(ctx RuleContext, mode Mode) bool {
	if r.mode != nil {
		mode = *r.mode
	}
	return ctx.CanReach(r.region, mode)
}

func (r reachRule) String() string {
	if r.mode != nil {
		return fmt.Sprintf("reach(%s, %d)", r.region, *r.mode)
	}
	return fmt.Sprintf("reach(%s)", r.region)
}

type modeRule Mode

// AsMode is satisfied only when evaluated in the given mode.
func AsMode(m Mode) Rule {
	return modeRule(m)
}

func (m modeRule) Evaluate(_ RuleContext, mode Mode) bool {
	return Mode(m) == mode
}

func (m modeRule) String() string {
	return fmt.Sprintf("mode(%d)", uint8(m))
}

func joinRules(rules []Rule) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		if r == nil {
			parts[i] = Always.String()
			continue
		}
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
