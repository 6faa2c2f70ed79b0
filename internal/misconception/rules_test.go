package misconception

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_SuggestionFirstTagWins(t *testing.T) {
	r := DefaultRules()

	s, ok := r.Suggestion("NEUROSCIENCE", []string{"unknown", "Brain", "neurons"})
	require.True(t, ok)
	assert.Equal(t, "Focus on brain anatomy and the functions of different regions.", s)

	_, ok = r.Suggestion("chemistry", []string{"neurons"})
	assert.False(t, ok)
}

func TestRules_ExplanationByOptionText(t *testing.T) {
	r := DefaultRules()

	s, ok := r.Explanation([]string{"Brain Anatomy"}, " Thalamus ")
	require.True(t, ok)
	assert.Contains(t, s, "relay station")

	_, ok = r.Explanation([]string{"brain anatomy"}, "Hippocampus")
	assert.False(t, ok)
}

func TestRules_KeyPointsCopied(t *testing.T) {
	r := DefaultRules()
	pts, ok := r.KeyPointsFor("neuroscience", []string{"neurons"})
	require.True(t, ok)
	pts[0] = "changed"

	again, _ := r.KeyPointsFor("neuroscience", []string{"neurons"})
	assert.Equal(t, "Neurons are specialized cells for signal transmission", again[0])
}

func TestRules_MergeLeavesInputsAlone(t *testing.T) {
	base := DefaultRules()
	overlay := NewRules()
	overlay.Suggestions[NewRuleKey("neuroscience", "neurons")] = "override"

	merged := base.Merge(overlay)
	s, _ := merged.Suggestion("neuroscience", []string{"neurons"})
	assert.Equal(t, "override", s)

	s, _ = base.Suggestion("neuroscience", []string{"neurons"})
	assert.NotEqual(t, "override", s)
}

const overlayYAML = `
suggestions:
  - category: Psychology
    tag: learning
    text: Revisit the main learning theories.
explanations:
  - tag: learning
    option: Freud
    text: Freud worked on psychoanalysis, not conditioning.
key_points:
  - category: psychology
    tag: learning
    items:
      - Conditioning pairs stimuli
related_topics:
  - category: psychology
    tag: learning
    items: [Operant Conditioning]
`

func TestParseRules(t *testing.T) {
	r, err := ParseRules(strings.NewReader(overlayYAML))
	require.NoError(t, err)
	assert.Equal(t, 4, r.Len())

	s, ok := r.Suggestion("psychology", []string{"Learning"})
	require.True(t, ok)
	assert.Equal(t, "Revisit the main learning theories.", s)
	assert.Equal(t, []string{"Operant Conditioning"}, r.RelatedTopicsFor("Psychology", []string{"learning"}))
}

func TestParseRules_Invalid(t *testing.T) {
	_, err := ParseRules(strings.NewReader("suggestions:\n  - tag: x\n    text: y\n"))
	assert.Error(t, err)

	_, err = ParseRules(strings.NewReader("unknown_section: []\n"))
	assert.Error(t, err)
}

func TestParseRules_Empty(t *testing.T) {
	r, err := ParseRules(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestLoadRules_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlayYAML), 0o644))

	r, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultRules().Len()+4, r.Len())
}

func TestRules_YAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultRules().WriteYAML(&buf))

	back, err := ParseRules(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), back)
}
