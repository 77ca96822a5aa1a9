package models

// Provider identifies one of the supported upstream AI providers.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderDeepLX Provider = "deeplx"
)

// DefaultIndustry is the industry value that selects the generic
// translation instruction; anything else gets domain-specific phrasing
// appended to the system instruction.
const DefaultIndustry = "General"

// KnownModels maps each provider to its known model identifiers. The core
// does not validate the pairing (passing a mismatched model is undefined
// behavior at the provider); clients use this catalog to constrain choices.
var KnownModels = map[Provider][]string{
	ProviderGemini: {
		"gemini-2.5-flash",
		"gemini-2.5-pro",
		"gemini-2.0-flash",
	},
	ProviderOpenAI: {
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4.1",
		"gpt-4.1-mini",
	},
	ProviderDeepLX: {
		"deeplx",
	},
}

// ProviderCredentials is the flat record of provider credentials and
// endpoints. It is replaced wholesale on update (last write wins) and is
// never validated field-by-field; a missing credential only surfaces when
// an adapter that needs it is invoked.
type ProviderCredentials struct {
	GeminiAPIKey  string `json:"gemini_api_key,omitempty"`
	GeminiBaseURL string `json:"gemini_base_url,omitempty"`
	OpenAIAPIKey  string `json:"openai_api_key,omitempty"`
	OpenAIBaseURL string `json:"openai_base_url,omitempty"`
	DeepLXURL     string `json:"deeplx_url,omitempty"`
	TavilyAPIKey  string `json:"tavily_api_key,omitempty"`
	BraveAPIKey   string `json:"brave_api_key,omitempty"`
}

// Masked returns a copy safe for API responses: secrets reduced to a
// fixed placeholder, endpoints left readable.
func (c ProviderCredentials) Masked() ProviderCredentials {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	return ProviderCredentials{
		GeminiAPIKey:  mask(c.GeminiAPIKey),
		GeminiBaseURL: c.GeminiBaseURL,
		OpenAIAPIKey:  mask(c.OpenAIAPIKey),
		OpenAIBaseURL: c.OpenAIBaseURL,
		DeepLXURL:     c.DeepLXURL,
		TavilyAPIKey:  mask(c.TavilyAPIKey),
		BraveAPIKey:   mask(c.BraveAPIKey),
	}
}
