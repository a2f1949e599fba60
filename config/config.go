package config

// Config structure
type Config struct {
	LLMProvider string `json:"llmProvider"` // "OpenAI" or "OpenAI-Compatible"
	APIKey      string `json:"apiKey"`
	BaseURL     string `json:"baseUrl"`
	ModelName   string `json:"modelName"`
	MaxTokens   int    `json:"maxTokens"`

	DarkMode     bool   `json:"darkMode"`
	Language     string `json:"language"`
	DataCacheDir string `json:"dataCacheDir"`
	DetailedLog  bool   `json:"detailedLog"`

	// ExportTimeoutSeconds bounds the whole deck-rendering step.
	// 0 means the 60 second default.
	ExportTimeoutSeconds int `json:"exportTimeoutSeconds"`

	// KeepHistory controls whether successful exports are recorded in the
	// local history database.
	KeepHistory bool `json:"keepHistory"`
}

// DefaultExportTimeoutSeconds is applied when ExportTimeoutSeconds is unset.
const DefaultExportTimeoutSeconds = 60

// EffectiveExportTimeoutSeconds returns the configured export timeout with
// the default applied.
func (c Config) EffectiveExportTimeoutSeconds() int {
	if c.ExportTimeoutSeconds <= 0 {
		return DefaultExportTimeoutSeconds
	}
	return c.ExportTimeoutSeconds
}
