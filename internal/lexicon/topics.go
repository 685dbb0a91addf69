package lexicon

// Topics are conversation subjects surfaced as context for the personas.
var Topics = []Group{
	{Name: "work_stress", Phrases: []string{"work", "job", "boss", "career", "workplace"}},
	{Name: "relationships", Phrases: []string{"relationship", "partner", "boyfriend", "girlfriend", "marriage"}},
	{Name: "family", Phrases: []string{"family", "parents", "mother", "father", "siblings"}},
	{Name: "health", Phrases: []string{"health", "sick", "illness", "medical", "doctor"}},
	{Name: "finances", Phrases: []string{"money", "financial", "debt", "bills", "salary"}},
	{Name: "social", Phrases: []string{"friends", "social", "lonely", "isolated", "people"}},
	{Name: "self_esteem", Phrases: []string{"confidence", "self-worth", "worthless", "failure", "success"}},
}

// Communication style cues.
var (
	FormalCues       = []string{"please", "thank you", "would", "could", "might"}
	CasualCues       = []string{"hey", "yeah", "gonna", "wanna", "kinda"}
	OpennessCues     = []string{"feel", "feeling", "emotions", "sad", "happy", "angry", "anxious", "worried"}
	SpecificHelpCues = []string{"how do i", "what should", "can you help"}
	PracticalCues    = []string{"what should i do", "how can i", "what steps"}
	SupportCues      = []string{"feeling", "struggling", "hard time"}
	InformationCues  = []string{"what is", "why does", "explain"}
)
