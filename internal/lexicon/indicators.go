package lexicon

// Indicator categories for the mental state aggregator. A category counts
// once when any of its terms appears.
var (
	DepressionIndicators = []Group{
		{Name: "hopelessness", Phrases: []string{"hopeless", "no point", "give up", "nothing matters", "no future"}},
		{Name: "worthlessness", Phrases: []string{"worthless", "useless", "failure", "not good enough", "waste of space"}},
		{Name: "fatigue", Phrases: []string{"tired", "exhausted", "drained", "no energy", "worn out"}},
		{Name: "loss_of_interest", Phrases: []string{"don't care", "nothing interests", "bored", "apathetic"}},
		{Name: "sleep_disturbance", Phrases: []string{"can't sleep", "insomnia", "sleeping too much", "awake all night", "nightmares"}},
		{Name: "appetite_change", Phrases: []string{"not eating", "no appetite", "overeating", "eating too much", "lost weight"}},
		{Name: "concentration_difficulty", Phrases: []string{"can't focus", "can't concentrate", "distracted", "foggy", "forgetful"}},
	}

	AnxietyIndicators = []Group{
		{Name: "worry", Phrases: []string{"worried", "anxious", "concerned", "afraid", "scared"}},
		{Name: "restlessness", Phrases: []string{"restless", "can't sit still", "agitated", "fidgety"}},
		{Name: "tension", Phrases: []string{"tense", "on edge", "wound up", "keyed up"}},
		{Name: "fear", Phrases: []string{"fear", "terrified", "frightened", "dread"}},
		{Name: "panic", Phrases: []string{"panic", "can't breathe", "heart racing", "heart pounding"}},
		{Name: "avoidance", Phrases: []string{"avoid", "hiding from", "staying away", "cancel plans"}},
		{Name: "physical_symptoms", Phrases: []string{"shaking", "sweating", "nauseous", "dizzy", "chest tight"}},
		{Name: "racing_thoughts", Phrases: []string{"racing thoughts", "mind racing", "can't stop thinking", "overthinking"}},
	}

	StressIndicators = []Group{
		{Name: "overwhelm", Phrases: []string{"overwhelmed", "too much", "can't handle", "drowning"}},
		{Name: "pressure", Phrases: []string{"pressure", "stressed", "burden", "weight on shoulders"}},
		{Name: "irritability", Phrases: []string{"irritable", "irritated", "snapping at", "short-tempered"}},
		{Name: "muscle_tension", Phrases: []string{"muscle tension", "stiff neck", "sore shoulders", "clenched jaw"}},
		{Name: "headaches", Phrases: []string{"headache", "migraine"}},
		{Name: "difficulty_relaxing", Phrases: []string{"can't relax", "can't unwind", "never rest", "can't switch off"}},
		{Name: "time_pressure", Phrases: []string{"deadline", "no time", "running out of time", "behind schedule"}},
	}

	// WarningSigns are high-severity categories; each adds 0.2 to every risk.
	WarningSigns = []Group{
		{Name: "self_harm", Phrases: []string{"hurt myself", "self harm", "cut myself", "harm myself"}},
		{Name: "suicidal_ideation", Phrases: []string{"kill myself", "end it all", "not worth living", "better off dead"}},
		{Name: "substance_abuse", Phrases: []string{"drinking too much", "using drugs", "getting high", "numbing"}},
		{Name: "social_isolation", Phrases: []string{"no one cares", "all alone", "nobody understands", "isolated"}},
	}

	// PositiveIndicators each take 0.1 off every risk.
	PositiveIndicators = []Group{
		{Name: "gratitude", Phrases: []string{"grateful", "thankful", "appreciate", "blessed"}},
		{Name: "hope", Phrases: []string{"hopeful", "optimistic", "looking forward", "excited"}},
		{Name: "achievement", Phrases: []string{"accomplished", "proud", "success", "achieved"}},
		{Name: "connection", Phrases: []string{"friends", "family", "loved ones", "support"}},
		{Name: "growth", Phrases: []string{"learning", "growing", "improving", "better"}},
	}
)
