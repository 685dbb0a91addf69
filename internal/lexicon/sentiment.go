package lexicon

var (
	PositiveWords = []string{"happy", "good", "great", "wonderful", "excited", "joy", "love"}
	NegativeWords = []string{"sad", "bad", "terrible", "anxious", "worried", "depressed", "angry"}
)

const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// Sentiment scores reported for each label.
const (
	PositiveScore = 0.7
	NegativeScore = 0.3
	NeutralScore  = 0.5
)
