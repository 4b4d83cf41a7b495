package model

import (
	"encoding/json"
	"fmt"
)

// RecommendationRule is one configured {when, then} pair. Rules are stored
// as a JSON list under the "rules" setting and evaluated in list order;
// the first rule whose condition matches wins.
type RecommendationRule struct {
	When RuleCondition `json:"when"`
	Then RuleAction    `json:"then"`
}

// RuleAction is the output a matched rule produces.
type RuleAction struct {
	Recommend string `json:"recommend"`
	Note      string `json:"note,omitempty"`
}

// RuleCondition is a small expression tree. A node is either a comparison
// (Field/Op/Value set) or a composite (exactly one of All/Any set).
type RuleCondition struct {
	Field string  `json:"field,omitempty"`
	Op    string  `json:"op,omitempty"`
	Value float64 `json:"value,omitempty"`

	All []RuleCondition `json:"all,omitempty"`
	Any []RuleCondition `json:"any,omitempty"`
}

const (
	RuleFieldAvgScore     = "avg_score"
	RuleFieldLessonsDone  = "lessons_done"
	RuleFieldLessonsTotal = "lessons_total"
	RuleFieldCompletion   = "completion"
)

var ruleFields = map[string]bool{
	RuleFieldAvgScore:     true,
	RuleFieldLessonsDone:  true,
	RuleFieldLessonsTotal: true,
	RuleFieldCompletion:   true,
}

var ruleOps = map[string]bool{
	"lt": true, "lte": true, "gt": true, "gte": true, "eq": true,
}

// Validate rejects malformed condition trees at write time so evaluation
// never sees an unknown field or operator.
func (c *RuleCondition) Validate() error {
	composite := len(c.All) > 0 || len(c.Any) > 0
	comparison := c.Field != "" || c.Op != ""

	switch {
	case composite && comparison:
		return fmt.Errorf("condition mixes comparison and all/any composite")
	case len(c.All) > 0 && len(c.Any) > 0:
		return fmt.Errorf("condition sets both all and any")
	case composite:
		for i := range c.All {
			if err := c.All[i].Validate(); err != nil {
				return err
			}
		}
		for i := range c.Any {
			if err := c.Any[i].Validate(); err != nil {
				return err
			}
		}
		return nil
	default:
		if !ruleFields[c.Field] {
			return fmt.Errorf("condition field %q is not one of avg_score, lessons_done, lessons_total, completion", c.Field)
		}
		if !ruleOps[c.Op] {
			return fmt.Errorf("condition op %q is not one of lt, lte, gt, gte, eq", c.Op)
		}
		return nil
	}
}

// Eval runs the condition against a progress row. Evaluation is pure, so
// identical inputs always yield identical results.
func (c *RuleCondition) Eval(p *Progress) bool {
	if len(c.All) > 0 {
		for i := range c.All {
			if !c.All[i].Eval(p) {
				return false
			}
		}
		return true
	}
	if len(c.Any) > 0 {
		for i := range c.Any {
			if c.Any[i].Eval(p) {
				return true
			}
		}
		return false
	}

	var field float64
	switch c.Field {
	case RuleFieldAvgScore:
		field = p.AvgScore
	case RuleFieldLessonsDone:
		field = float64(p.LessonsDone)
	case RuleFieldLessonsTotal:
		field = float64(p.LessonsTotal)
	case RuleFieldCompletion:
		field = p.CompletionRatio()
	default:
		return false
	}

	switch c.Op {
	case "lt":
		return field < c.Value
	case "lte":
		return field <= c.Value
	case "gt":
		return field > c.Value
	case "gte":
		return field >= c.Value
	case "eq":
		return field == c.Value
	default:
		return false
	}
}

// ParseRules decodes and validates a rules document.
func ParseRules(doc []byte) ([]RecommendationRule, error) {
	var rules []RecommendationRule
	if err := json.Unmarshal(doc, &rules); err != nil {
		return nil, fmt.Errorf("rules document is not a JSON list: %w", err)
	}
	for i := range rules {
		if err := rules[i].When.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if rules[i].Then.Recommend == "" {
			return nil, fmt.Errorf("rule %d: action is missing a recommend target", i)
		}
	}
	return rules, nil
}
