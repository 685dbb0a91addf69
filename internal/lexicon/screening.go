package lexicon

// ScreeningClusters are symptom clusters in tie-break order:
// depression, anxiety, ptsd, stress.
var ScreeningClusters = []Group{
	{Name: "depression", Phrases: []string{
		"sad", "depressed", "hopeless", "empty", "worthless", "no energy",
		"can't sleep", "sleeping too much", "no appetite", "lost interest",
		"guilty", "can't concentrate", "tired all the time", "crying", "numb",
	}},
	{Name: "anxiety", Phrases: []string{
		"anxious", "worried", "nervous", "panic", "on edge", "restless",
		"can't relax", "racing heart", "fear", "dread", "overthinking", "tense",
		"what if",
	}},
	{Name: "ptsd", Phrases: []string{
		"flashback", "nightmare", "trauma", "triggered", "hypervigilant", "jumpy",
		"intrusive", "reliving", "avoid reminders", "startled", "detached",
		"accident", "abuse",
	}},
	{Name: "stress", Phrases: []string{
		"stressed", "overwhelmed", "pressure", "deadline", "too much", "burnout",
		"burned out", "exhausted", "irritable", "no time", "overworked", "headache",
	}},
}
