package recommend

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Match thresholds and list sizes.
const (
	GroupThreshold  = 0.6
	MentorThreshold = 0.7
	maxGroups       = 5
	maxMentors      = 3
	maxEvents       = 10
)

// Demographics describe the user for group matching. Zero values mean unknown.
type Demographics struct {
	Age    int    `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// GroupPreferences default to any size and semi-anonymous privacy.
type GroupPreferences struct {
	GroupSize    string `json:"group_size_preference,omitempty"`
	PrivacyLevel string `json:"privacy_level,omitempty"`
}

type SupportGroup struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	FocusAreas  []string `json:"focus_areas"`
	Schedule    string   `json:"meeting_schedule"`
	Format      string   `json:"format"`
	Size        string   `json:"size"`
	Facilitator string   `json:"facilitator_type"`
	AgeMin      int      `json:"age_min"`
	AgeMax      int      `json:"age_max"`
	Gender      string   `json:"gender"`
	Description string   `json:"description"`
	Privacy     string   `json:"privacy_level"`
}

type GroupMatch struct {
	SupportGroup
	MatchScore float64  `json:"match_score"`
	Reasons    []string `json:"match_reasons"`
}

type PeerMentor struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Specialties     []string `json:"specialties"`
	RecoveryStage   string   `json:"recovery_stage"`
	ExperienceYears int      `json:"experience_years"`
	Gender          string   `json:"gender"`
	Days            []string `json:"days"`
	Times           []string `json:"times"`
	Styles          []string `json:"communication_style"`
	Bio             string   `json:"bio"`
	Languages       []string `json:"languages"`
	Rating          float64  `json:"rating"`
	ActiveMentees   int      `json:"active_mentees"`
	MaxMentees      int      `json:"max_mentees"`
}

type MentorMatch struct {
	PeerMentor
	CompatibilityScore float64  `json:"compatibility_score"`
	Reasons            []string `json:"why_good_match"`
}

type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Duration    string    `json:"duration"`
	Format      string    `json:"format"`
	Location    string    `json:"location,omitempty"`
	Audience    []string  `json:"target_audience"`
	Topics      []string  `json:"topics"`
	Facilitator string    `json:"facilitator"`
	Capacity    int       `json:"capacity"`
	Registered  int       `json:"registered"`
	Cost        string    `json:"cost"`
}

type CommunityActivity struct {
	Type           string   `json:"type"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	TimeCommitment string   `json:"time_commitment"`
	Benefits       []string `json:"benefits"`
}

// Matcher matches users with support groups, peer mentors and events.
type Matcher struct {
	groups  []SupportGroup
	mentors []PeerMentor
	events  []Event
	now     func() time.Time
}

// NewMatcher builds the catalog. Event dates are laid out relative to now()
// at construction; now is also the clock for the upcoming-event filter.
func NewMatcher(now func() time.Time) *Matcher {
	if now == nil {
		now = time.Now
	}
	base := now()
	day := 24 * time.Hour

	return &Matcher{
		now: now,
		groups: []SupportGroup{
			{
				ID: "depression_support_1", Name: "Depression Support Circle",
				FocusAreas: []string{"depression", "mood_disorders", "low_energy"},
				Schedule:   "Weekly, Wednesdays 7PM EST", Format: "virtual", Size: "small", Facilitator: "peer_led",
				AgeMin: 18, AgeMax: 65, Gender: "mixed", Privacy: "anonymous",
				Description: "Safe space for sharing experiences with depression and supporting each other",
			},
			{
				ID: "anxiety_warriors", Name: "Anxiety Warriors",
				FocusAreas: []string{"anxiety", "panic_disorders", "social_anxiety"},
				Schedule:   "Bi-weekly, Saturdays 2PM EST", Format: "virtual", Size: "medium", Facilitator: "professional_led",
				AgeMin: 22, AgeMax: 45, Gender: "mixed", Privacy: "semi_anonymous",
				Description: "Learn coping strategies and connect with others managing anxiety",
			},
			{
				ID: "mens_mental_health", Name: "Men's Mental Health Alliance",
				FocusAreas: []string{"male_specific_issues", "emotional_expression", "stress"},
				Schedule:   "Weekly, Tuesdays 8PM EST", Format: "virtual", Size: "small", Facilitator: "peer_led",
				AgeMin: 25, AgeMax: 55, Gender: "male_only", Privacy: "confidential",
				Description: "Brotherhood for men breaking the silence around mental health",
			},
			{
				ID: "young_adults_support", Name: "Young Adults Navigating Life",
				FocusAreas: []string{"life_transitions", "career_stress", "relationships"},
				Schedule:   "Weekly, Sundays 6PM EST", Format: "virtual", Size: "medium", Facilitator: "professional_led",
				AgeMin: 18, AgeMax: 30, Gender: "mixed", Privacy: "semi_anonymous",
				Description: "Support for young adults facing life's challenges",
			},
			{
				ID: "mindfulness_circle", Name: "Mindfulness & Meditation Circle",
				FocusAreas: []string{"mindfulness", "stress_reduction", "spiritual_growth"},
				Schedule:   "Daily, Various times", Format: "virtual", Size: "large", Facilitator: "rotating_leadership",
				AgeMin: 18, AgeMax: 80, Gender: "mixed", Privacy: "open",
				Description: "Practice mindfulness together and share spiritual insights",
			},
		},
		mentors: []PeerMentor{
			{
				ID: "mentor_1", Name: "Alex M.",
				Specialties:   []string{"depression_recovery", "life_transitions", "career_change"},
				RecoveryStage: "stable_recovery", ExperienceYears: 3, Gender: "male",
				Days: []string{"Monday", "Wednesday", "Friday"}, Times: []string{"evening"},
				Styles:    []string{"supportive", "practical", "goal_oriented"},
				Bio:       "Overcame severe depression, now helps others navigate similar challenges",
				Languages: []string{"English"}, Rating: 4.8, ActiveMentees: 3, MaxMentees: 5,
			},
			{
				ID: "mentor_2", Name: "Sarah K.",
				Specialties:   []string{"anxiety_management", "social_anxiety", "workplace_stress"},
				RecoveryStage: "thriving", ExperienceYears: 5, Gender: "female",
				Days: []string{"Tuesday", "Thursday", "Saturday"}, Times: []string{"morning", "afternoon"},
				Styles:    []string{"empathetic", "analytical", "encouraging"},
				Bio:       "Former anxiety sufferer, now successful professional helping others",
				Languages: []string{"English", "Spanish"}, Rating: 4.9, ActiveMentees: 4, MaxMentees: 6,
			},
			{
				ID: "mentor_3", Name: "Marcus J.",
				Specialties:   []string{"male_mental_health", "emotional_expression", "relationship_issues"},
				RecoveryStage: "stable_recovery", ExperienceYears: 2, Gender: "male",
				Days: []string{"Monday", "Thursday", "Sunday"}, Times: []string{"evening"},
				Styles:    []string{"direct", "honest", "brotherhood_focused"},
				Bio:       "Breaking stigma around men's mental health, one conversation at a time",
				Languages: []string{"English"}, Rating: 4.7, ActiveMentees: 2, MaxMentees: 4,
			},
		},
		events: []Event{
			{
				ID: "event_1", Name: "Mental Health Awareness Workshop", Type: "educational",
				Date: base.Add(3 * day), Duration: "2 hours", Format: "virtual",
				Audience:    []string{"general", "newly_diagnosed"},
				Topics:      []string{"understanding_mental_health", "self_care", "resources"},
				Facilitator: "Dr. Jennifer Smith, Licensed Therapist", Capacity: 100, Registered: 45, Cost: "free",
			},
			{
				ID: "event_2", Name: "Mindfulness & Nature Walk", Type: "wellness_activity",
				Date: base.Add(5 * day), Duration: "1.5 hours", Format: "in_person", Location: "Central Park, NYC",
				Audience:    []string{"anxiety", "stress", "mindfulness_seekers"},
				Topics:      []string{"mindful_walking", "nature_therapy", "stress_reduction"},
				Facilitator: "Community Volunteers", Capacity: 20, Registered: 12, Cost: "free",
			},
			{
				ID: "event_3", Name: "Men's Mental Health Panel", Type: "discussion_panel",
				Date: base.Add(7 * day), Duration: "90 minutes", Format: "virtual",
				Audience:    []string{"male", "men_supporters"},
				Topics:      []string{"masculinity_myths", "emotional_expression", "seeking_help"},
				Facilitator: "Panel of Experts and Advocates", Capacity: 200, Registered: 78, Cost: "free",
			},
			{
				ID: "event_4", Name: "Creative Expression Therapy Session", Type: "therapeutic_activity",
				Date: base.Add(10 * day), Duration: "2 hours", Format: "virtual",
				Audience:    []string{"depression", "creative_seekers", "alternative_therapy"},
				Topics:      []string{"art_therapy", "music_therapy", "creative_expression"},
				Facilitator: "Licensed Art Therapist", Capacity: 30, Registered: 18, Cost: "$10",
			},
		},
	}
}

// MatchGroups scores every group on struggle overlap (40%), demographics
// (25%), size (15%), schedule (10%) and privacy (10%), keeps those at or
// above GroupThreshold and returns the best five. Ties keep catalog order.
func (m *Matcher) MatchGroups(struggles []string, demo Demographics, prefs GroupPreferences) []GroupMatch {
	out := []GroupMatch{}
	for _, g := range m.groups {
		score := groupScore(g, struggles, demo, prefs)
		if score < GroupThreshold {
			continue
		}
		out = append(out, GroupMatch{SupportGroup: g, MatchScore: score, Reasons: groupReasons(g, struggles)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	return head(out, maxGroups)
}

func groupScore(g SupportGroup, struggles []string, demo Demographics, prefs GroupPreferences) float64 {
	var score float64
	if len(g.FocusAreas) > 0 {
		score += 0.4 * float64(len(overlap(g.FocusAreas, struggles))) / float64(len(g.FocusAreas))
	}
	score += 0.25 * demographicScore(g, demo)

	size := 0.7
	if prefs.GroupSize == "" || prefs.GroupSize == "any" || prefs.GroupSize == g.Size {
		size = 1
	}
	score += 0.15 * size

	// no availability data yet; assume a reasonable fit
	score += 0.10 * 0.8

	privacy := prefs.PrivacyLevel
	if privacy == "" {
		privacy = "semi_anonymous"
	}
	if privacy == g.Privacy {
		score += 0.10
	} else {
		score += 0.10 * 0.8
	}
	return min(1, score)
}

// demographicScore weighs age, gender and location equally.
func demographicScore(g SupportGroup, demo Demographics) float64 {
	const w = 1.0 / 3
	var score float64

	switch {
	case demo.Age == 0:
		score += w * 0.8
	case demo.Age >= g.AgeMin && demo.Age <= g.AgeMax:
		score += w
	default:
		score += w * 0.5
	}

	if g.Gender == "mixed" || demo.Gender == g.Gender {
		score += w
	} else {
		score += w * 0.3
	}

	score += w * 0.9
	return min(1, score)
}

func groupReasons(g SupportGroup, struggles []string) []string {
	var reasons []string
	if shared := overlap(g.FocusAreas, struggles); len(shared) > 0 {
		reasons = append(reasons, "Focuses on your areas of concern: "+strings.Join(shared, ", "))
	}

	switch g.Facilitator {
	case "professional_led":
		reasons = append(reasons, "Led by mental health professionals")
	case "peer_led":
		reasons = append(reasons, "Peer-led environment for authentic sharing")
	}

	switch g.Size {
	case "small":
		reasons = append(reasons, "Intimate setting for deeper connections")
	case "medium":
		reasons = append(reasons, "Balanced group size for diverse perspectives")
	case "large":
		reasons = append(reasons, "Larger community with varied experiences")
	}

	switch {
	case strings.Contains(g.Schedule, "Weekly"):
		reasons = append(reasons, "Regular weekly meetings for consistent support")
	case strings.Contains(g.Schedule, "Daily"):
		reasons = append(reasons, "Daily sessions available for intensive support")
	}
	return reasons
}

var stageFit = map[string]map[string]float64{
	"beginning": {"stable_recovery": 1.0, "thriving": 0.9},
	"progress":  {"stable_recovery": 0.9, "thriving": 1.0},
	"stable":    {"thriving": 1.0, "stable_recovery": 0.8},
}

// MatchMentors scores mentors with free capacity on specialty overlap (50%),
// recovery stage fit (20%), experience (15%), rating (10%) and availability
// (5%), keeps those at or above MentorThreshold and returns the best three.
func (m *Matcher) MatchMentors(struggles []string, recoveryStage string) []MentorMatch {
	out := []MentorMatch{}
	for _, p := range m.mentors {
		if p.ActiveMentees >= p.MaxMentees {
			continue
		}
		score := mentorScore(p, struggles, recoveryStage)
		if score < MentorThreshold {
			continue
		}
		out = append(out, MentorMatch{PeerMentor: p, CompatibilityScore: score, Reasons: mentorReasons(p, struggles)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompatibilityScore > out[j].CompatibilityScore })
	return head(out, maxMentors)
}

func mentorScore(p PeerMentor, struggles []string, stage string) float64 {
	var score float64
	if len(p.Specialties) > 0 {
		score += 0.5 * float64(len(overlap(p.Specialties, struggles))) / float64(len(p.Specialties))
	}

	fit, ok := stageFit[stage][p.RecoveryStage]
	if !ok {
		fit = 0.7
	}
	score += 0.2 * fit
	score += 0.15 * min(1, float64(p.ExperienceYears)/5)
	score += 0.10 * p.Rating / 5
	score += 0.05 * 0.9
	return min(1, score)
}

func mentorReasons(p PeerMentor, struggles []string) []string {
	var reasons []string
	if shared := overlap(p.Specialties, struggles); len(shared) > 0 {
		reasons = append(reasons, "Specializes in: "+strings.Join(shared, ", "))
	}
	if p.ExperienceYears >= 3 {
		reasons = append(reasons, fmt.Sprintf("%d years of peer support experience", p.ExperienceYears))
	}
	if p.Rating >= 4.5 {
		reasons = append(reasons, fmt.Sprintf("Highly rated by previous mentees (%.1f/5.0)", p.Rating))
	}
	switch p.RecoveryStage {
	case "thriving":
		reasons = append(reasons, "Successfully thriving in recovery, inspiring success story")
	case "stable_recovery":
		reasons = append(reasons, "Stable in recovery with fresh perspective on challenges")
	}
	if len(p.Styles) > 0 {
		reasons = append(reasons, "Communication style: "+strings.Join(p.Styles, ", "))
	}
	return reasons
}

// UpcomingEvents returns future events, soonest first. With interests set,
// only events whose audience includes one of them are kept.
func (m *Matcher) UpcomingEvents(interests []string) []Event {
	now := m.now()
	out := []Event{}
	for _, e := range m.events {
		if !e.Date.After(now) {
			continue
		}
		if len(interests) > 0 && len(overlap(e.Audience, interests)) == 0 {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return head(out, maxEvents)
}

// ActivitiesForMood suggests community activities for a mood word such as
// "lonely", "anxious" or "hopeless".
func ActivitiesForMood(mood string) []CommunityActivity {
	out := []CommunityActivity{}
	switch mood {
	case "lonely", "isolated":
		out = append(out,
			CommunityActivity{
				Type: "support_group", Name: "Drop-in Support Circle",
				Description: "Connect with others who understand", TimeCommitment: "1 hour",
				Benefits: []string{"social_connection", "shared_understanding", "reduced_isolation"},
			},
			CommunityActivity{
				Type: "buddy_system", Name: "Accountability Partner Matching",
				Description: "Get matched with someone for mutual support", TimeCommitment: "30 minutes weekly",
				Benefits: []string{"consistent_check_ins", "mutual_accountability", "friendship"},
			})
	case "anxious", "stressed":
		out = append(out, CommunityActivity{
			Type: "wellness_group", Name: "Group Meditation Session",
			Description: "Practice mindfulness with others", TimeCommitment: "45 minutes",
			Benefits: []string{"stress_reduction", "mindfulness", "group_energy"},
		})
	case "hopeless", "depressed":
		out = append(out, CommunityActivity{
			Type: "peer_support", Name: "Hope Sharing Circle",
			Description: "Hear stories of recovery and resilience", TimeCommitment: "90 minutes",
			Benefits: []string{"hope_restoration", "inspiration", "proof_of_possibility"},
		})
	}
	return out
}

// MoodFromEmotion maps a dominant emotion to the mood words
// ActivitiesForMood understands. Unmapped emotions return "".
func MoodFromEmotion(emotion string) string {
	switch emotion {
	case "loneliness":
		return "lonely"
	case "isolation":
		return "isolated"
	case "anxiety", "fear":
		return "anxious"
	case "frustration":
		return "stressed"
	case "sadness", "shame", "guilt":
		return "depressed"
	}
	return ""
}

var struggleVocabulary = map[string][]string{
	"depression":             {"depression", "mood_disorders", "depression_recovery", "low_energy"},
	"anxiety":                {"anxiety", "panic_disorders", "social_anxiety", "anxiety_management"},
	"stress":                 {"stress", "stress_reduction", "workplace_stress", "career_stress", "mindfulness"},
	"low_energy":             {"low_energy"},
	"motivation_issues":      {"life_transitions", "career_change"},
	"social_isolation":       {"relationships", "relationship_issues", "emotional_expression"},
	"general_support_needed": {"mindfulness", "life_transitions"},
}

// ExpandStruggles translates struggle labels into the focus-area and
// specialty vocabulary of the catalog. Unknown labels pass through.
func ExpandStruggles(struggles []string) []string {
	var out []string
	for _, s := range struggles {
		terms, ok := struggleVocabulary[s]
		if !ok {
			terms = []string{s}
		}
		for _, t := range terms {
			if !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// Suggestions is the community part of a chat reply.
type Suggestions struct {
	SupportGroups []GroupMatch        `json:"support_groups"`
	PeerMentors   []MentorMatch       `json:"peer_mentors"`
	Events        []Event             `json:"events"`
	Activities    []CommunityActivity `json:"activities"`
}

// Request gathers what Suggest needs.
type Request struct {
	Struggles     []string         `json:"struggles"`
	Demographics  Demographics     `json:"demographics"`
	Preferences   GroupPreferences `json:"preferences"`
	RecoveryStage string           `json:"recovery_stage"`
	Mood          string           `json:"mood,omitempty"`
}

// Suggest runs every community matcher for req.
func (m *Matcher) Suggest(req Request) Suggestions {
	terms := ExpandStruggles(req.Struggles)
	return Suggestions{
		SupportGroups: m.MatchGroups(terms, req.Demographics, req.Preferences),
		PeerMentors:   m.MatchMentors(terms, req.RecoveryStage),
		Events:        m.UpcomingEvents(append(slices.Clone(req.Struggles), terms...)),
		Activities:    ActivitiesForMood(req.Mood),
	}
}

// overlap returns the items of base also present in other, in base order.
func overlap(base, other []string) []string {
	var out []string
	for _, b := range base {
		if slices.Contains(other, b) {
			out = append(out, b)
		}
	}
	return out
}
