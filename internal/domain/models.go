// Package domain contains the core domain types for the translate proxy.
package domain

// APIName is the fixed tag attached to every successful response.
const APIName = "Satisfiyworld-Translate"

// Params is a normalized translation request extracted from an inbound call.
type Params struct {
	Text           string
	TargetLanguage string
}

// UpstreamRequest is the fixed body shape sent to the translation service.
type UpstreamRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

// SuccessResponse is the body returned when the upstream call succeeded.
// TranslatedText stays nullable: a failed extraction is not an error, the
// raw upstream payload is attached for diagnostics instead.
type SuccessResponse struct {
	Success        bool    `json:"success"`
	OriginalText   string  `json:"originalText"`
	TranslatedText *string `json:"translatedText"`
	TargetLanguage string  `json:"targetLanguage"`
	API            string  `json:"api"`
	Raw            any     `json:"raw"`
}

// ErrorResponse is the body returned on every failure path.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Body    string `json:"body,omitempty"`
	Details string `json:"details,omitempty"`
}
