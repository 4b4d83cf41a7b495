package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules_AcceptsValidDocument(t *testing.T) {
	rules, err := ParseRules([]byte(`[
		{"when":{"field":"avg_score","op":"lt","value":50},"then":{"recommend":"drills"}},
		{"when":{"any":[
			{"field":"completion","op":"gte","value":0.8},
			{"field":"lessons_done","op":"eq","value":0}
		]},"then":{"recommend":"check-in","note":"extremes"}}
	]`))
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "drills", rules[0].Then.Recommend)
}

func TestParseRules_Rejections(t *testing.T) {
	cases := map[string]string{
		"not a list":        `{"when":{}}`,
		"unknown field":     `[{"when":{"field":"height","op":"lt","value":1},"then":{"recommend":"x"}}]`,
		"unknown op":        `[{"when":{"field":"avg_score","op":"near","value":1},"then":{"recommend":"x"}}]`,
		"mixed node":        `[{"when":{"field":"avg_score","op":"lt","value":1,"any":[{"field":"completion","op":"lt","value":1}]},"then":{"recommend":"x"}}]`,
		"both all and any":  `[{"when":{"all":[{"field":"avg_score","op":"lt","value":1}],"any":[{"field":"completion","op":"lt","value":1}]},"then":{"recommend":"x"}}]`,
		"missing recommend": `[{"when":{"field":"avg_score","op":"lt","value":1},"then":{}}]`,
	}
	for name, doc := range cases {
		_, err := ParseRules([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestRuleCondition_EvalComparisons(t *testing.T) {
	p := &Progress{LessonsTotal: 10, LessonsDone: 5, AvgScore: 72.5}

	cases := []struct {
		cond RuleCondition
		want bool
	}{
		{RuleCondition{Field: RuleFieldAvgScore, Op: "lt", Value: 80}, true},
		{RuleCondition{Field: RuleFieldAvgScore, Op: "gte", Value: 72.5}, true},
		{RuleCondition{Field: RuleFieldAvgScore, Op: "gt", Value: 72.5}, false},
		{RuleCondition{Field: RuleFieldLessonsDone, Op: "eq", Value: 5}, true},
		{RuleCondition{Field: RuleFieldLessonsTotal, Op: "lte", Value: 9}, false},
		{RuleCondition{Field: RuleFieldCompletion, Op: "eq", Value: 0.5}, true},
	}
	for i, tc := range cases {
		assert.Equal(t, tc.want, tc.cond.Eval(p), "case %d", i)
	}
}

func TestRuleCondition_EvalComposites(t *testing.T) {
	p := &Progress{LessonsTotal: 4, LessonsDone: 4, AvgScore: 90}

	all := RuleCondition{All: []RuleCondition{
		{Field: RuleFieldCompletion, Op: "eq", Value: 1},
		{Field: RuleFieldAvgScore, Op: "gte", Value: 85},
	}}
	assert.True(t, all.Eval(p))

	any := RuleCondition{Any: []RuleCondition{
		{Field: RuleFieldAvgScore, Op: "lt", Value: 10},
		{Field: RuleFieldLessonsDone, Op: "eq", Value: 4},
	}}
	assert.True(t, any.Eval(p))

	all.All[1].Value = 95
	assert.False(t, all.Eval(p))
}

func TestRuleCondition_ZeroTotalCompletion(t *testing.T) {
	p := &Progress{LessonsTotal: 0, LessonsDone: 0}
	cond := RuleCondition{Field: RuleFieldCompletion, Op: "eq", Value: 0}
	assert.True(t, cond.Eval(p))
}
