package models

// AppConfig holds the admin-editable application settings. It is persisted
// in its own local storage slot and passed around explicitly; there is no
// implicit global.
type AppConfig struct {
	AppName        string `json:"appName"`
	SuccessMessage string `json:"successMessage"`

	// Per-category overrides for the analyzer prompt. Empty means use the
	// built-in prompt.
	SlipPrompt string `json:"slipPrompt,omitempty"`
	JokePrompt string `json:"jokePrompt,omitempty"`

	// bcrypt hash gating the config commands. Empty means no gate yet.
	AdminPasswordHash string `json:"adminPasswordHash,omitempty"`
}

// DefaultAppConfig returns the settings a fresh install starts with.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		AppName:        "أرشيف الكلجات",
		SuccessMessage: "تم التوثيق بنجاح! 🎉",
	}
}
