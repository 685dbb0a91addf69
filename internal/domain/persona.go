package domain

// PersonaConfig is a named counseling role rendered into a prompt.
// Loaded once at startup and read concurrently without locking.
type PersonaConfig struct {
	Name            string   `yaml:"name" json:"name"`
	Role            string   `yaml:"role" json:"role"`
	Goal            string   `yaml:"goal" json:"goal"`
	Backstory       string   `yaml:"backstory" json:"backstory"`
	PromptTemplate  string   `yaml:"prompt_template" json:"prompt_template"`
	Specializations []string `yaml:"specializations" json:"specializations"`
}
