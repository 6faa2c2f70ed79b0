package misconception

import (
	"slices"
	"strings"
)

// RuleKey addresses a rule by question category and tag. Keys are
// normalized with NewRuleKey so lookups are case-insensitive.
type RuleKey struct {
	Category string
	Tag      string
}

// NewRuleKey builds a normalized key.
func NewRuleKey(category, tag string) RuleKey {
	return RuleKey{Category: normalize(category), Tag: normalize(tag)}
}

// AnswerKey addresses a misconception explanation by tag and the text of
// the wrong option the learner picked. The option text is matched exactly
// after trimming.
type AnswerKey struct {
	Tag        string
	OptionText string
}

// NewAnswerKey builds a normalized key.
func NewAnswerKey(tag, optionText string) AnswerKey {
	return AnswerKey{Tag: normalize(tag), OptionText: strings.TrimSpace(optionText)}
}

// Rules holds the static lookup tables used to explain answers. A Rules
// value is never modified by analysis and may be shared across goroutines.
type Rules struct {
	Suggestions   map[RuleKey]string
	Explanations  map[AnswerKey]string
	KeyPoints     map[RuleKey][]string
	RelatedTopics map[RuleKey][]string
}

// NewRules returns empty tables.
func NewRules() *Rules {
	return &Rules{
		Suggestions:   make(map[RuleKey]string),
		Explanations:  make(map[AnswerKey]string),
		KeyPoints:     make(map[RuleKey][]string),
		RelatedTopics: make(map[RuleKey][]string),
	}
}

// Suggestion returns the suggestion of the first tag, in order, with a rule
// for category.
func (r *Rules) Suggestion(category string, tags []string) (string, bool) {
	for _, tag := range tags {
		if s, ok := r.Suggestions[NewRuleKey(category, tag)]; ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// Explanation returns the explanation of the first tag, in order, with a
// rule for the chosen option text.
func (r *Rules) Explanation(tags []string, optionText string) (string, bool) {
	for _, tag := range tags {
		if s, ok := r.Explanations[NewAnswerKey(tag, optionText)]; ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// KeyPointsFor returns a copy of the first non-empty key point list found
// by walking tags in order.
func (r *Rules) KeyPointsFor(category string, tags []string) ([]string, bool) {
	for _, tag := range tags {
		if pts := r.KeyPoints[NewRuleKey(category, tag)]; len(pts) > 0 {
			return slices.Clone(pts), true
		}
	}
	return nil, false
}

// RelatedTopicsFor returns the union of related topics across all tags,
// without duplicates, in first-seen order.
func (r *Rules) RelatedTopicsFor(category string, tags []string) []string {
	seen := make(map[string]struct{})
	topics := []string{}
	for _, tag := range tags {
		for _, t := range r.RelatedTopics[NewRuleKey(category, tag)] {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			topics = append(topics, t)
		}
	}
	return topics
}

// Merge returns new tables holding r's rules overridden by other's.
// Neither input is modified.
func (r *Rules) Merge(other *Rules) *Rules {
	out := r.Clone()
	if other == nil {
		return out
	}
	for k, v := range other.Suggestions {
		out.Suggestions[k] = v
	}
	for k, v := range other.Explanations {
		out.Explanations[k] = v
	}
	for k, v := range other.KeyPoints {
		out.KeyPoints[k] = slices.Clone(v)
	}
	for k, v := range other.RelatedTopics {
		out.RelatedTopics[k] = slices.Clone(v)
	}
	return out
}

// Clone deep-copies the tables.
func (r *Rules) Clone() *Rules {
	out := NewRules()
	for k, v := range r.Suggestions {
		out.Suggestions[k] = v
	}
	for k, v := range r.Explanations {
		out.Explanations[k] = v
	}
	for k, v := range r.KeyPoints {
		out.KeyPoints[k] = slices.Clone(v)
	}
	for k, v := range r.RelatedTopics {
		out.RelatedTopics[k] = slices.Clone(v)
	}
	return out
}

// Len returns the total number of rules across all tables.
func (r *Rules) Len() int {
	return len(r.Suggestions) + len(r.Explanations) + len(r.KeyPoints) + len(r.RelatedTopics)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
