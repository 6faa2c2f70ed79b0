package misconception

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// RuleFile is the YAML representation of rule tables.
//
//	suggestions:
//	  - category: neuroscience
//	    tag: neurons
//	    text: Review the basic functions of neurons.
//	explanations:
//	  - tag: neurons
//	    option: To filter blood
//	    text: Blood filtration is done by the kidneys.
//	key_points:
//	  - category: neuroscience
//	    tag: neurons
//	    items: [Neurons transmit signals]
//	related_topics:
//	  - category: neuroscience
//	    tag: neurons
//	    items: [Synaptic Transmission]
type RuleFile struct {
	Suggestions   []TextRule `yaml:"suggestions,omitempty"`
	Explanations  []TextRule `yaml:"explanations,omitempty"`
	KeyPoints     []ListRule `yaml:"key_points,omitempty"`
	RelatedTopics []ListRule `yaml:"related_topics,omitempty"`
}

// TextRule maps a key to a single text.
type TextRule struct {
	Category string `yaml:"category,omitempty"`
	Tag      string `yaml:"tag"`
	Option   string `yaml:"option,omitempty"`
	Text     string `yaml:"text"`
}

// ListRule maps a key to a list of strings.
type ListRule struct {
	Category string   `yaml:"category"`
	Tag      string   `yaml:"tag"`
	Items    []string `yaml:"items"`
}

// ParseRules decodes a YAML rule file into tables.
func ParseRules(r io.Reader) (*Rules, error) {
	var f RuleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return f.Rules()
}

// LoadRules reads a YAML rule file and overlays it on the default tables.
func LoadRules(path string) (*Rules, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer fh.Close()

	overlay, err := ParseRules(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return DefaultRules().Merge(overlay), nil
}

// Rules converts the file form into lookup tables.
func (f *RuleFile) Rules() (*Rules, error) {
	r := NewRules()
	for i, s := range f.Suggestions {
		if s.Category == "" || s.Tag == "" || s.Text == "" {
			return nil, fmt.Errorf("suggestions[%d]: category, tag and text are required", i)
		}
		r.Suggestions[NewRuleKey(s.Category, s.Tag)] = s.Text
	}
	for i, e := range f.Explanations {
		if e.Tag == "" || e.Option == "" || e.Text == "" {
			return nil, fmt.Errorf("explanations[%d]: tag, option and text are required", i)
		}
		r.Explanations[NewAnswerKey(e.Tag, e.Option)] = e.Text
	}
	for i, k := range f.KeyPoints {
		if k.Category == "" || k.Tag == "" {
			return nil, fmt.Errorf("key_points[%d]: category and tag are required", i)
		}
		r.KeyPoints[NewRuleKey(k.Category, k.Tag)] = slices.Clone(k.Items)
	}
	for i, t := range f.RelatedTopics {
		if t.Category == "" || t.Tag == "" {
			return nil, fmt.Errorf("related_topics[%d]: category and tag are required", i)
		}
		r.RelatedTopics[NewRuleKey(t.Category, t.Tag)] = slices.Clone(t.Items)
	}
	return r, nil
}

// File converts tables to their file form, sorted by key.
func (r *Rules) File() *RuleFile {
	f := &RuleFile{}
	for k, v := range r.Suggestions {
		f.Suggestions = append(f.Suggestions, TextRule{Category: k.Category, Tag: k.Tag, Text: v})
	}
	for k, v := range r.Explanations {
		f.Explanations = append(f.Explanations, TextRule{Tag: k.Tag, Option: k.OptionText, Text: v})
	}
	for k, v := range r.KeyPoints {
		f.KeyPoints = append(f.KeyPoints, ListRule{Category: k.Category, Tag: k.Tag, Items: slices.Clone(v)})
	}
	for k, v := range r.RelatedTopics {
		f.RelatedTopics = append(f.RelatedTopics, ListRule{Category: k.Category, Tag: k.Tag, Items: slices.Clone(v)})
	}

	textCmp := func(a, b TextRule) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Tag, b.Tag), cmp.Compare(a.Option, b.Option))
	}
	listCmp := func(a, b ListRule) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Tag, b.Tag))
	}
	slices.SortFunc(f.Suggestions, textCmp)
	slices.SortFunc(f.Explanations, textCmp)
	slices.SortFunc(f.KeyPoints, listCmp)
	slices.SortFunc(f.RelatedTopics, listCmp)
	return f
}

// WriteYAML encodes the tables as a rule file.
func (r *Rules) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.File()); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	return enc.Close()
}
