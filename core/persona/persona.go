package persona

// Persona describes one voice on the council: its identity on the merged
// stream, the model that backs it, and the system prompt that shapes its
// answers.
type Persona struct {
	Key          string
	Name         string
	Model        string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

// Council persona keys.
const (
	KeyLogic          = "logic"
	KeyCreative       = "creative"
	KeyPrudent        = "prudent"
	KeyDevilsAdvocate = "devils-advocate"
)

// DefaultCouncil returns the standard four-persona council, all backed by
// the same model. Callers are free to override models per persona.
func DefaultCouncil(model string) []Persona {
	return []Persona{
		{
			Key:   KeyLogic,
			Name:  "The Logician",
			Model: model,
			SystemPrompt: "You are the council's logician. Reason step by step from " +
				"first principles, name your assumptions, and flag anything that " +
				"does not follow. Be rigorous and brief.",
			Temperature: 0.2,
			MaxTokens:   1024,
		},
		{
			Key:   KeyCreative,
			Name:  "The Creative",
			Model: model,
			SystemPrompt: "You are the council's creative. Offer unexpected angles, " +
				"analogies, and alternatives the obvious answer misses. Favor " +
				"originality over caution.",
			Temperature: 0.9,
			MaxTokens:   1024,
		},
		{
			Key:   KeyPrudent,
			Name:  "The Prudent",
			Model: model,
			SystemPrompt: "You are the council's prudent voice. Surface risks, costs, " +
				"and second-order effects. Recommend the safest viable path and say " +
				"what you would verify first.",
			Temperature: 0.3,
			MaxTokens:   1024,
		},
		{
			Key:   KeyDevilsAdvocate,
			Name:  "The Devil's Advocate",
			Model: model,
			SystemPrompt: "You are the council's devil's advocate. Argue the strongest " +
				"case against whatever the user seems to want to hear. Attack weak " +
				"premises directly.",
			Temperature: 0.7,
			MaxTokens:   1024,
		},
	}
}
