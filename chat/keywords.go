package chat

import (
	"fmt"
	"strings"
	"unicode"
)

// ExitKeywords are the lowercase tokens that end the chat loop.
var ExitKeywords = []string{"çıx", "exit", "quit"}

// IsExitKeyword reports whether input, once trimmed, is one of ExitKeywords
// in any letter case. Both the default and the Azerbaijani/Turkish lowercase
// mappings are tried, so "ÇIX" matches "çıx" and "EXIT" matches "exit".
func IsExitKeyword(input string) bool {
	s := strings.TrimSpace(input)
	if s == "" {
		return false
	}

	candidates := [...]string{
		strings.ToLower(s),
		strings.ToLowerSpecial(unicode.TurkishCase, s),
	}
	for _, c := range candidates {
		for _, kw := range ExitKeywords {
			if c == kw {
				return true
			}
		}
	}
	return false
}

func quotedKeywords() string {
	quoted := make([]string, len(ExitKeywords))
	for i, kw := range ExitKeywords {
		quoted[i] = fmt.Sprintf("'%s'", kw)
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " və ya " + quoted[len(quoted)-1]
}
