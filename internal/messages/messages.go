// Package messages holds the user-facing strings of the sheet in English and
// Polish, and maps language tags onto the supported set.
package messages

import (
	"fmt"

	"github.com/specialistvlad/gridsheet/internal/value"
	"golang.org/x/text/language"
)

// Language selects a message table.
type Language uint8

const (
	English Language = iota
	Polish
)

const numLanguages = 2

var (
	supported = []language.Tag{language.English, language.Polish}
	matcher   = language.NewMatcher(supported)
)

// ParseLanguage matches any BCP 47 tag (`pl`, `pl-PL`, `en-GB`, ...) to a
// supported language.
func ParseLanguage(raw string) (Language, error) {
	tag, err := language.Parse(raw)
	if err != nil {
		return English, fmt.Errorf("invalid language %q: %w", raw, err)
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return English, fmt.Errorf("unsupported language %q", raw)
	}
	return Language(index), nil
}

// String returns the language's base tag.
func (l Language) String() string {
	return l.Tag().String()
}

// Tag returns the BCP 47 tag of the language.
func (l Language) Tag() language.Tag {
	if int(l) < len(supported) {
		return supported[l]
	}
	return language.Und
}

// Next returns the language that follows l in the toggle order.
func (l Language) Next() Language {
	return (l + 1) % numLanguages
}

var errorTexts = [numLanguages][value.NumErrorCodes]string{
	English: {
		"INCORRECT FORMULA!", "TOO MANY ARGUMENTS!", "TOO FEW ARGUMENTS!",
		"INCORRECT ARGUMENT!", "TOO FEW ARGUMENTS!", "DIVISION BY ZERO!",
		"OUT OF BOUNDS!", "INFINITE CYCLE!", "NO SUCH FUNCTION!",
	},
	Polish: {
		"BLEDNA FORMULA!", "ZA DUZO ARGUMENTOW!", "ZA MALO ARGUMENTOW!",
		"NIEPOPRAWNY ARGUMENT!", "ZA MALO ARGUMENTOW!", "DZIELENIE PRZEZ ZERO!",
		"WYJSCIE POZA ZAKRES!", "NIESKONCZONY CYKL!", "NIEISTNIEJACA FUNKCJA!",
	},
}

// Error returns the text a cell displays for an error code.
func Error(l Language, code value.ErrorCode) string {
	if int(l) >= numLanguages || !code.Valid() {
		return errorTexts[English][value.ErrGeneral]
	}
	return errorTexts[l][code]
}

// Key identifies a piece of interface text.
type Key uint8

const (
	LabelFormula Key = iota
	LabelValue
	SavePrompt
	SaveCancel
	SaveQuit
	SaveConfirm
	BadFileName
	numKeys
)

var uiTexts = [numLanguages][numKeys]string{
	English: {
		"Formula", "Value",
		"Save as:", "^Q to cancel", "^Q to quit",
		"^S or ENTER to save", "Incorrect file name.",
	},
	Polish: {
		"Formula", "Wartosc",
		"Zapisz jako:", "^Q by anulowac", "^Q by wyjsc",
		"^S lub ENTER by zapisac", "Niepoprawna nazwa pliku.",
	},
}

// Text returns a piece of interface text.
func Text(l Language, k Key) string {
	if int(l) >= numLanguages || k >= numKeys {
		return ""
	}
	return uiTexts[l][k]
}
