package lexicon

// CrisisTier is a severity band of the crisis lexicon.
type CrisisTier struct {
	Name    string
	Weight  int
	Phrases []string
}

// CrisisTiers is evaluated in this order. A phrase may appear in several
// tiers and then counts in each.
var CrisisTiers = []CrisisTier{
	{
		Name:   "immediate_danger",
		Weight: 10,
		Phrases: []string{
			"kill myself", "end my life", "take my own life", "suicide plan",
			"going to kill myself", "have a plan to die", "overdose on",
			"jump off", "goodbye forever",
		},
	},
	{
		Name:   "severe_ideation",
		Weight: 9,
		Phrases: []string{
			"want to die", "better off dead", "no reason to live", "wish i was dead",
			"wish i were dead", "suicidal", "end it all", "nobody would miss me",
			"not worth living",
		},
	},
	{
		Name:   "self_harm",
		Weight: 8,
		Phrases: []string{
			"cut myself", "hurt myself", "harm myself", "self-harm", "self harm",
			"burn myself", "hitting myself",
		},
	},
	{
		Name:   "moderate_risk",
		Weight: 6,
		Phrases: []string{
			"hopeless", "worthless", "can't go on", "no way out", "trapped",
			"burden to everyone", "can't take it anymore",
		},
	},
	{
		Name:   "low_risk",
		Weight: 3,
		Phrases: []string{
			"depressed", "lonely", "empty inside", "numb", "exhausted",
			"overwhelmed", "can't cope",
		},
	},
}

// ProtectiveFactors each lower the crisis total by ProtectiveFactorWeight.
// Must not contain "hope", which would match inside "hopeless".
var ProtectiveFactors = []string{
	"my family", "my kids", "my children", "therapist", "counselor",
	"want to get better", "reasons to live", "support system", "my friends",
	"getting help",
}

// ProtectiveFactorWeight is subtracted per matched protective phrase.
const ProtectiveFactorWeight = 2
