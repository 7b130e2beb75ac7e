package domain

import "strings"

// Placeholder values shipped in sample configuration. A credential equal to
// one of these is treated as not configured.
const (
	ZenRowsKeyPlaceholder = "PASTE_YOUR_ZENROWS_API_KEY_HERE"
	GeminiKeyPlaceholder  = "PASTE_YOUR_GEMINI_API_KEY_HERE"
	OpenAIKeyPlaceholder  = "PASTE_YOUR_OPENAI_API_KEY_HERE"
)

// Capability describes whether an external service has a usable credential.
// It is either Unavailable or Configured(credential), resolved once at
// startup so stage logic never compares against placeholder strings.
type Capability struct {
	credential string
	configured bool
}

// Unavailable returns a capability with no credential.
func Unavailable() Capability {
	return Capability{}
}

// Configured returns a capability holding the given credential.
// An empty or whitespace-only credential yields Unavailable.
func Configured(credential string) Capability {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return Unavailable()
	}
	return Capability{credential: credential, configured: true}
}

// ResolveCapability builds a capability from a raw value, treating the
// empty string and any of the given placeholders as not configured.
func ResolveCapability(value string, placeholders ...string) Capability {
	value = strings.TrimSpace(value)
	for _, p := range placeholders {
		if value == p {
			return Unavailable()
		}
	}
	return Configured(value)
}

// IsConfigured returns true if a credential is present.
func (c Capability) IsConfigured() bool {
	return c.configured
}

// Credential returns the credential and whether it is configured.
func (c Capability) Credential() (string, bool) {
	return c.credential, c.configured
}

// Masked returns a display-safe form of the credential.
func (c Capability) Masked() string {
	if !c.configured {
		return "(not configured)"
	}
	if len(c.credential) <= 8 {
		return "****"
	}
	return c.credential[:4] + "****" + c.credential[len(c.credential)-4:]
}

// String returns "configured" or "unavailable". It never prints the secret.
func (c Capability) String() string {
	if c.configured {
		return "configured"
	}
	return "unavailable"
}
