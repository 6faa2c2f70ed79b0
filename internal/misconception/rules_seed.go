package misconception

// seedSuggestions are corrective suggestions for wrong answers, by
// category and tag. "brain anatomy" shares its text with "brain" so it
// lines up with the key point and related topic tables.
var seedSuggestions = []struct {
	category, tag, text string
}{
	{"neuroscience", "neurons", "Review the basic functions of neurons, focusing on signal transmission."},
	{"neuroscience", "brain", "Focus on brain anatomy and the functions of different regions."},
	{"neuroscience", "brain anatomy", "Focus on brain anatomy and the functions of different regions."},
}

// seedExplanations explain why a specific wrong option is wrong, by tag and
// option text.
var seedExplanations = []struct {
	tag, option, text string
}{
	{"neurons", "To produce hormones", "Neurons primarily transmit signals; hormone production is mainly done by endocrine cells."},
	{"neurons", "To filter blood", "Blood filtration is done by the kidneys; neurons are specialized for signal transmission."},
	{"neurons", "To store memories", "While neurons are involved in memory, their primary function is signal transmission."},
	{"brain anatomy", "Cerebellum", "The cerebellum is primarily involved in motor control and balance."},
	{"brain anatomy", "Medulla", "The medulla controls automatic functions like breathing and heart rate."},
	{"brain anatomy", "Thalamus", "The thalamus is a relay station for sensory and motor signals."},
}

var seedKeyPoints = []struct {
	category, tag string
	points        []string
}{
	{"neuroscience", "neurons", []string{
		"Neurons are specialized cells for signal transmission",
		"They have distinct structural components (dendrites, axon, cell body)",
		"They communicate through electrical and chemical signals",
	}},
	{"neuroscience", "brain anatomy", []string{
		"Different brain regions have specialized functions",
		"Brain regions work together in networks",
		"Structure relates directly to function",
	}},
}

var seedRelatedTopics = []struct {
	category, tag string
	topics        []string
}{
	{"neuroscience", "neurons", []string{"Neurotransmitters", "Action Potentials", "Synaptic Transmission"}},
	{"neuroscience", "brain anatomy", []string{"Neural Circuits", "Brain Development", "Neuroplasticity"}},
}

// DefaultRules returns a fresh copy of the built-in rule tables.
func DefaultRules() *Rules {
	r := NewRules()
	for _, s := range seedSuggestions {
		r.Suggestions[NewRuleKey(s.category, s.tag)] = s.text
	}
	for _, e := range seedExplanations {
		r.Explanations[NewAnswerKey(e.tag, e.option)] = e.text
	}
	for _, k := range seedKeyPoints {
		r.KeyPoints[NewRuleKey(k.category, k.tag)] = append([]string(nil), k.points...)
	}
	for _, t := range seedRelatedTopics {
		r.RelatedTopics[NewRuleKey(t.category, t.tag)] = append([]string(nil), t.topics...)
	}
	return r
}
