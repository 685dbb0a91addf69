package lexicon

// Distortions are cognitive distortion patterns used by the CBT persona.
var Distortions = []Group{
	{Name: "all_or_nothing", Phrases: []string{"always", "never", "completely ruined", "totally ruined", "everything is"}},
	{Name: "catastrophizing", Phrases: []string{"worst", "disaster", "end of the world", "can't survive", "ruined"}},
	{Name: "mind_reading", Phrases: []string{"they think", "everyone thinks", "they must think", "he thinks i", "she thinks i"}},
	{Name: "fortune_telling", Phrases: []string{"will never", "going to fail", "going to go wrong", "bound to"}},
	{Name: "overgeneralization", Phrases: []string{"everyone", "nobody", "no one", "every time", "nothing ever"}},
	{Name: "should_statements", Phrases: []string{"should", "must", "have to", "ought to"}},
	{Name: "labeling", Phrases: []string{"i'm a failure", "i'm stupid", "i'm an idiot", "i'm a loser", "i'm worthless"}},
	{Name: "personalization", Phrases: []string{"my fault", "because of me", "i caused", "i'm to blame"}},
	{Name: "emotional_reasoning", Phrases: []string{"i feel like a", "i feel stupid", "feel like i'm", "so it must be"}},
}
