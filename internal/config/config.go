package config

import (
	"encoding/json"
	"log"
	"os"
)

// Definition describes one of the eight fixed consideration fields.
type Definition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Requirements holds the submission thresholds.
type Requirements struct {
	MinCompletedConsiderations int `json:"min_completed_considerations"`
	MinWordsPerConsideration   int `json:"min_words_per_consideration"`
}

// Config is loaded once at startup and read-only afterwards.
type Config struct {
	Considerations []Definition `json:"considerations"`
	Requirements   Requirements `json:"submission_requirements"`
}

// Default returns the built-in consideration set used when no config file
// is present.
func Default() *Config {
	return &Config{
		Considerations: []Definition{
			{ID: "problem_definition", Title: "Problem Definition", Description: "Clearly define the problem you're solving"},
			{ID: "target_market", Title: "Target Market", Description: "Identify your ideal customers"},
			{ID: "solution_approach", Title: "Solution Approach", Description: "Outline your proposed solution"},
			{ID: "competitive_analysis", Title: "Competitive Analysis", Description: "Analyze competitors"},
			{ID: "business_model", Title: "Business Model", Description: "Define how you'll make money"},
			{ID: "technical_feasibility", Title: "Technical Feasibility", Description: "Assess technical requirements"},
			{ID: "team_structure", Title: "Team Structure", Description: "Define roles needed"},
			{ID: "growth_strategy", Title: "Growth Strategy", Description: "Plan for scaling"},
		},
		Requirements: Requirements{
			MinCompletedConsiderations: 6,
			MinWordsPerConsideration:   100,
		},
	}
}

// Load reads the configuration file at path. A missing or unparseable file
// falls back to the default set.
func Load(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("reading config %s: %v", path, err)
		}
		return Default()
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("parsing config %s: %v", path, err)
		return Default()
	}
	if len(cfg.Considerations) == 0 {
		return Default()
	}
	if cfg.Requirements.MinCompletedConsiderations == 0 {
		cfg.Requirements.MinCompletedConsiderations = 6
	}
	if cfg.Requirements.MinWordsPerConsideration == 0 {
		cfg.Requirements.MinWordsPerConsideration = 100
	}
	return &cfg
}

// IsValidField reports whether id names a configured consideration.
func (c *Config) IsValidField(id string) bool {
	for _, def := range c.Considerations {
		if def.ID == id {
			return true
		}
	}
	return false
}

// FieldIDs returns the configured consideration ids in their fixed order.
func (c *Config) FieldIDs() []string {
	ids := make([]string, 0, len(c.Considerations))
	for _, def := range c.Considerations {
		ids = append(ids, def.ID)
	}
	return ids
}
