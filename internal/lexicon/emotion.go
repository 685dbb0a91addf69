package lexicon

type Valence int

const (
	Negative Valence = -1
	Neutral  Valence = 0
	Positive Valence = 1
)

// EmotionCategory groups keywords naming one emotion.
type EmotionCategory struct {
	Name     string
	Valence  Valence
	Keywords []string
}

// Emotions is iterated in this order; dominant emotion ties go to the
// earlier category.
var Emotions = []EmotionCategory{
	{"joy", Positive, []string{"happy", "joy", "great", "wonderful", "excited", "delighted", "glad", "cheerful"}},
	{"gratitude", Positive, []string{"grateful", "thankful", "appreciate", "blessed"}},
	{"hope", Positive, []string{"hopeful", "optimistic", "looking forward", "better tomorrow"}},
	{"sadness", Negative, []string{"sad", "unhappy", "crying", "heartbroken", "miserable", "feeling down", "depressed", "grief"}},
	{"anger", Negative, []string{"angry", "furious", "annoyed", "irritated", "outraged", "resentful"}},
	{"fear", Negative, []string{"afraid", "scared", "terrified", "frightened", "fearful"}},
	{"anxiety", Negative, []string{"anxious", "worried", "nervous", "panicky", "uneasy", "on edge"}},
	{"loneliness", Negative, []string{"lonely", "alone", "no one to talk to", "left out"}},
	{"isolation", Negative, []string{"isolated", "cut off", "withdrawn", "disconnected", "nobody understands"}},
	{"shame", Negative, []string{"ashamed", "embarrassed", "humiliated"}},
	{"guilt", Negative, []string{"guilty", "my fault", "regret"}},
	{"frustration", Negative, []string{"frustrated", "stuck", "fed up"}},
}

// Intensifiers are matched against whole words.
var (
	StrongIntensifiers   = []string{"extremely", "incredibly", "absolutely", "completely", "totally", "unbearably"}
	ModerateIntensifiers = []string{"very", "really", "quite", "pretty", "so"}
)

// RegulationGroups is evidence that the writer is regulating their emotions.
var RegulationGroups = []Group{
	{Name: "self_awareness", Phrases: []string{"i notice", "i realize", "i recognize", "i'm aware", "i am aware", "i understand"}},
	{Name: "coping", Phrases: []string{"deep breath", "take a breath", "go for a walk", "meditate", "journal", "exercise", "calm myself", "breathing"}},
	{Name: "reflection", Phrases: []string{"i think", "looking back", "i've learned", "i learned", "on reflection", "i wonder"}},
	{Name: "help_seeking", Phrases: []string{"talk to someone", "reach out", "ask for help", "therapist", "counselor", "support"}},
}
