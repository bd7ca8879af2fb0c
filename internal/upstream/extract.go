package upstream

// extractTranslatedText probes the parsed upstream body for a translated
// string. The service's response shape is not pinned down, so candidate
// paths are tried in order and the first non-empty string wins:
//
//  1. translatedText
//  2. translation
//  3. result
//  4. [0].translatedText (body is a list)
//  5. translations[0].text
//
// A miss is not an error; the caller reports a nil translation alongside
// the raw body.
func extractTranslatedText(data any) *string {
	switch v := data.(type) {
	case map[string]any:
		for _, key := range []string{"translatedText", "translation", "result"} {
			if s, ok := nonEmptyString(v[key]); ok {
				return &s
			}
		}
		if list, ok := v["translations"].([]any); ok && len(list) > 0 {
			if first, ok := list[0].(map[string]any); ok {
				if s, ok := nonEmptyString(first["text"]); ok {
					return &s
				}
			}
		}
	case []any:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]any); ok {
				if s, ok := nonEmptyString(first["translatedText"]); ok {
					return &s
				}
			}
		}
	}

	return nil
}

func nonEmptyString(value any) (string, bool) {
	s, ok := value.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
