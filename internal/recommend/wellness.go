// Package recommend matches users with wellness activities and community
// support. Every catalog is fixed at construction and read-only afterwards.
package recommend

import (
	"fmt"
	"slices"
	"sort"

	"github.com/PabloGalante/farum-support/internal/domain"
)

// Activity is one wellness suggestion.
type Activity struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Minutes      int      `json:"minutes,omitempty"`
	Duration     string   `json:"duration"`
	Instructions string   `json:"instructions,omitempty"`
	Type         string   `json:"type,omitempty"`
	Tradition    string   `json:"tradition,omitempty"`
	Budget       string   `json:"budget,omitempty"`
	Benefits     []string `json:"benefits,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`

	// StressRelief is the catalog rating; Effectiveness is computed per user.
	StressRelief  float64 `json:"-"`
	Effectiveness float64 `json:"effectiveness_score,omitempty"`
}

// Activity categories.
const (
	CategoryMindfulness = "mindfulness"
	CategoryPhysical    = "physical"
	CategorySpiritual   = "spiritual"
	CategoryNutrition   = "nutrition"
	CategoryTravel      = "travel"
	CategoryCoping      = "emergency_coping"
)

// Preferences tune the wellness catalog to a user. Zero values fall back
// to beginner-friendly defaults.
type Preferences struct {
	MindfulnessExperience string   `json:"mindfulness_experience"`
	AvailableMinutes      int      `json:"available_time"`
	FitnessLevel          string   `json:"fitness_level"`
	Traditions            []string `json:"traditions"`
	SpiritualTypes        []string `json:"spiritual_types"`
	Budget                string   `json:"budget"`
}

func (p Preferences) withDefaults() Preferences {
	if p.MindfulnessExperience == "" {
		p.MindfulnessExperience = "beginner"
	}
	if p.AvailableMinutes <= 0 {
		p.AvailableMinutes = 15
	}
	if p.FitnessLevel == "" {
		p.FitnessLevel = "moderate"
	}
	if len(p.Traditions) == 0 {
		p.Traditions = []string{"Universal"}
	}
	if len(p.SpiritualTypes) == 0 {
		p.SpiritualTypes = []string{"meditation", "prayer"}
	}
	if p.Budget == "" {
		p.Budget = "low"
	}
	return p
}

func minutes(n int) string { return fmt.Sprintf("%d minutes", n) }

// Wellness recommends self-care activities.
type Wellness struct {
	mindfulness map[string][]Activity
	physical    map[string][]Activity
	spiritual   map[string][]Activity
	nutrition   map[string][]Activity
	travel      map[string][]Activity
}

func NewWellness() *Wellness {
	mind := func(name string, mins int, instr string, relief float64) Activity {
		return Activity{Name: name, Category: CategoryMindfulness, Minutes: mins, Duration: minutes(mins), Instructions: instr, StressRelief: relief}
	}
	phys := func(name string, mins int, typ string, benefits ...string) Activity {
		return Activity{Name: name, Category: CategoryPhysical, Minutes: mins, Duration: minutes(mins), Type: typ, Benefits: benefits}
	}
	spirit := func(name string, mins int, tradition string, benefits ...string) Activity {
		return Activity{Name: name, Category: CategorySpiritual, Minutes: mins, Duration: minutes(mins), Tradition: tradition, Benefits: benefits}
	}
	meal := func(name string, mins int, ingredients, benefits []string) Activity {
		return Activity{Name: name, Category: CategoryNutrition, Minutes: mins, Duration: minutes(mins), Ingredients: ingredients, Benefits: benefits}
	}
	trip := func(dest, typ, dur, budget string, benefits ...string) Activity {
		return Activity{Name: dest, Category: CategoryTravel, Type: typ, Duration: dur, Budget: budget, Benefits: benefits}
	}

	return &Wellness{
		mindfulness: map[string][]Activity{
			"beginner": {
				mind("Deep Breathing Exercise", 5, "Breathe in for 4 counts, hold for 4, exhale for 6. Repeat 10 times.", 0.7),
				mind("Body Scan Meditation", 10, "Focus on each part of your body from toes to head, releasing tension.", 0.8),
			},
			"intermediate": {
				mind("Mindful Walking", 15, "Walk slowly, focusing on each step and your surroundings.", 0.8),
				mind("Loving-Kindness Meditation", 20, "Send loving thoughts to yourself, loved ones, then all beings.", 0),
			},
			"advanced": {
				mind("Vipassana Meditation", 30, "Observe thoughts and sensations without judgment.", 0),
			},
		},
		physical: map[string][]Activity{
			"low_energy": {
				phys("Gentle Yoga Flow", 15, "yoga", "flexibility", "stress_relief", "mindfulness"),
				phys("Tai Chi Basics", 20, "movement", "balance", "calm", "focus"),
			},
			"moderate_energy": {
				phys("Hatha Yoga Session", 30, "yoga", "strength", "flexibility", "mental_clarity"),
				phys("Nature Walk", 25, "outdoor", "vitamin_d", "fresh_air", "mood_boost"),
			},
			"high_energy": {
				phys("Power Yoga Flow", 45, "yoga", "strength", "endurance", "confidence"),
				phys("Dance Therapy", 30, "movement", "joy", "expression", "cardio"),
			},
		},
		spiritual: map[string][]Activity{
			"meditation": {
				spirit("Centering Prayer", 20, "Christian", "inner_peace", "spiritual_connection"),
				spirit("Buddhist Meditation", 30, "Buddhist", "mindfulness", "compassion", "wisdom"),
			},
			"prayer": {
				spirit("Gratitude Prayer", 10, "Universal", "gratitude", "hope", "perspective"),
				spirit("Contemplative Reading", 15, "Various", "wisdom", "comfort", "guidance"),
			},
			"worship": {
				spirit("Virtual Service Participation", 60, "Various", "community", "worship", "inspiration"),
				spirit("Sacred Music Listening", 30, "Various", "peace", "upliftment", "transcendence"),
			},
		},
		nutrition: map[string][]Activity{
			"mood_boosting": {
				meal("Omega-3 Rich Breakfast", 15, []string{"salmon", "avocado", "walnuts", "spinach"}, []string{"brain_health", "mood_stability"}),
				meal("Antioxidant Berry Bowl", 5, []string{"blueberries", "strawberries", "yogurt", "honey"}, []string{"energy", "cognitive_function"}),
			},
			"stress_reducing": {
				meal("Herbal Tea Blend", 5, []string{"chamomile", "lavender", "lemon_balm"}, []string{"relaxation", "better_sleep"}),
				meal("Magnesium-Rich Dinner", 30, []string{"dark_chocolate", "almonds", "spinach", "quinoa"}, []string{"muscle_relaxation", "anxiety_reduction"}),
			},
		},
		travel: map[string][]Activity{
			"local": {
				trip("Local Nature Park", "nature_therapy", "4 hours", "low", "fresh_air", "exercise", "perspective"),
				trip("Botanical Garden", "mindful_exploration", "3 hours", "low", "beauty", "calm", "inspiration"),
			},
			"regional": {
				trip("Mountain Retreat", "wilderness_therapy", "2 days", "moderate", "solitude", "reflection", "adventure"),
				trip("Beach Getaway", "water_therapy", "3 days", "moderate", "relaxation", "vitamin_d", "sound_therapy"),
			},
			"distant": {
				trip("Meditation Retreat", "spiritual_journey", "7 days", "high", "deep_healing", "spiritual_growth", "community"),
				trip("Cultural Immersion", "perspective_therapy", "10 days", "high", "new_perspectives", "growth", "adventure"),
			},
		},
	}
}

// Mindfulness returns up to three exercises at the user's experience level
// that fit their available time, most effective first for this stress level.
func (w *Wellness) Mindfulness(stress float64, prefs Preferences) []Activity {
	prefs = prefs.withDefaults()
	catalog, ok := w.mindfulness[prefs.MindfulnessExperience]
	if !ok {
		catalog = w.mindfulness["beginner"]
	}

	var out []Activity
	for _, a := range catalog {
		if a.Minutes > prefs.AvailableMinutes {
			continue
		}
		a.Effectiveness = effectiveness(a.StressRelief, stress)
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Effectiveness > out[j].Effectiveness })
	return head(out, 3)
}

// effectiveness scales a relief rating by how much the user needs it.
// Unrated activities count as 0.5.
func effectiveness(relief, level float64) float64 {
	if relief == 0 {
		relief = 0.5
	}
	switch {
	case level > 0.8:
		relief *= 1.2
	case level < 0.3:
		relief *= 0.8
	}
	return min(1, relief)
}

// Physical returns activities for the energy band. Beginners get half the
// usual duration, never under ten minutes.
func (w *Wellness) Physical(energy float64, fitness string) []Activity {
	band := "high_energy"
	switch {
	case energy < 0.3:
		band = "low_energy"
	case energy < 0.7:
		band = "moderate_energy"
	}

	out := slices.Clone(w.physical[band])
	if fitness == "beginner" {
		for i := range out {
			out[i].Minutes = max(10, out[i].Minutes/2)
			out[i].Duration = minutes(out[i].Minutes)
		}
	}
	return out
}

// Spiritual returns up to four practices of the preferred types whose
// tradition the user shares. Universal practices always qualify, and
// preferring "Various" accepts every tradition.
func (w *Wellness) Spiritual(prefs Preferences) []Activity {
	prefs = prefs.withDefaults()
	var out []Activity
	for _, typ := range prefs.SpiritualTypes {
		for _, a := range w.spiritual[typ] {
			if a.Tradition == "Universal" || slices.Contains(prefs.Traditions, a.Tradition) || slices.Contains(prefs.Traditions, "Various") {
				out = append(out, a)
			}
		}
	}
	return head(out, 4)
}

// Nutrition favours mood-boosting meals when mood is low.
func (w *Wellness) Nutrition(mood float64) []Activity {
	if mood < 0.4 {
		return head(slices.Clone(w.nutrition["mood_boosting"]), 2)
	}
	return head(slices.Clone(w.nutrition["stress_reducing"]), 2)
}

var budgetReach = map[string][]string{
	"low":      {"local"},
	"moderate": {"local", "regional"},
	"high":     {"local", "regional", "distant"},
}

// Travel returns trips the budget reaches, nearest first.
func (w *Wellness) Travel(budget string) []Activity {
	reach, ok := budgetReach[budget]
	if !ok {
		reach = budgetReach["low"]
	}
	var out []Activity
	for _, r := range reach {
		out = append(out, w.travel[r]...)
	}
	return out
}

// EmergencyCoping lists techniques that work within minutes.
func EmergencyCoping() []Activity {
	return []Activity{
		{
			Name:          "5-4-3-2-1 Grounding Technique",
			Category:      CategoryCoping,
			Minutes:       3,
			Duration:      minutes(3),
			Instructions:  "Name 5 things you see, 4 you can touch, 3 you hear, 2 you smell, 1 you taste",
			Effectiveness: 0.9,
		},
		{
			Name:          "Box Breathing",
			Category:      CategoryCoping,
			Minutes:       2,
			Duration:      minutes(2),
			Instructions:  "Breathe in 4, hold 4, out 4, hold 4. Repeat.",
			Effectiveness: 0.9,
		},
		{
			Name:          "Progressive Muscle Relaxation",
			Category:      CategoryCoping,
			Minutes:       10,
			Duration:      minutes(10),
			Instructions:  "Tense and release each muscle group for 5 seconds",
			Effectiveness: 0.6,
		},
	}
}

// Schedule is a daily wellness plan.
type Schedule struct {
	Morning   []Activity `json:"morning"`
	Afternoon []Activity `json:"afternoon"`
	Evening   []Activity `json:"evening"`
}

// DailySchedule plans movement for low-energy mornings, mindfulness for
// stressed afternoons and a spiritual practice every evening.
func (w *Wellness) DailySchedule(state domain.MentalStateSnapshot, prefs Preferences) Schedule {
	prefs = prefs.withDefaults()
	s := Schedule{Morning: []Activity{}, Afternoon: []Activity{}, Evening: []Activity{}}

	if state.EnergyLevel < 0.4 {
		s.Morning = head(w.Physical(0.3, prefs.FitnessLevel), 1)
	}
	if state.StressIndicators > 0.6 {
		s.Afternoon = head(w.Mindfulness(state.StressIndicators, prefs), 1)
	}
	s.Evening = head(w.Spiritual(prefs), 1)
	return s
}

// Suggest assembles the short list attached to a chat reply: a coping
// technique when intervention priority is high, then the best mindfulness
// exercise, a movement option for the current energy and a meal for the
// current mood.
func (w *Wellness) Suggest(state domain.MentalStateSnapshot, prefs Preferences) []Activity {
	prefs = prefs.withDefaults()
	var out []Activity
	if state.InterventionPriority == domain.PriorityHigh {
		out = append(out, EmergencyCoping()[0])
	}
	out = append(out, head(w.Mindfulness(state.StressIndicators, prefs), 1)...)
	out = append(out, head(w.Physical(state.EnergyLevel, prefs.FitnessLevel), 1)...)
	out = append(out, head(w.Nutrition(state.MoodIndicators), 1)...)
	return out
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	if s == nil {
		return []T{}
	}
	return s
}
