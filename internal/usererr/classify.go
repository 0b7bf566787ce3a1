package usererr

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/language"
)

// Messages holds the localized user-facing strings for one display language.
type Messages struct {
	Generic string
}

// Supported display languages; the first entry is the fallback, matching the
// original product's Korean audience.
var supported = []language.Tag{language.Korean, language.English}

var matcher = language.NewMatcher(supported)

var messagesByTag = map[language.Tag]Messages{
	language.Korean:  {Generic: "죄송합니다. 서버에서 응답을 처리하지 못했습니다."},
	language.English: {Generic: "Sorry, the server could not process the response."},
}

// ForLanguage resolves the message set for a BCP 47 language string such as
// "ko" or "en-US". Unknown or unparseable values fall back to Korean.
func ForLanguage(lang string) Messages {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return messagesByTag[supported[0]]
	}
	_, idx, _ := matcher.Match(tag)
	return messagesByTag[supported[idx]]
}

// Classify converts an error into a message fit for display. When the error
// text embeds a JSON object with a "detail" field (the backend's error body
// shape), that detail is extracted; everything else yields the generic
// message. Classify never fails.
func Classify(err error, msgs Messages) string {
	if msgs.Generic == "" {
		msgs = messagesByTag[supported[0]]
	}
	if err == nil {
		return msgs.Generic
	}
	message := err.Error()
	start := strings.Index(message, "{")
	if start < 0 {
		return msgs.Generic
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if jsonErr := json.Unmarshal([]byte(message[start:]), &payload); jsonErr != nil {
		return msgs.Generic
	}
	if strings.TrimSpace(payload.Detail) == "" {
		return msgs.Generic
	}
	return payload.Detail
}
