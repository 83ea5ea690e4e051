package summary

import "strings"

const DefaultLeakageThreshold = 5

// LanguageLeakageChecker decides whether generated text still carries words of
// the source language.
type LanguageLeakageChecker interface {
	Leaks(text string) bool
}

var englishFunctionWords = []string{
	" the ", " and ", " of ", " to ", " in ",
	" is ", " that ", " it ", " for ", " on ",
}

// EnglishWordChecker counts distinct common English function words. It is a
// heuristic: quoted English names push the count up, and the threshold is
// absolute so long outputs trip it more easily.
type EnglishWordChecker struct {
	Threshold int
}

func NewEnglishWordChecker(threshold int) *EnglishWordChecker {
	if threshold <= 0 {
		threshold = DefaultLeakageThreshold
	}
	return &EnglishWordChecker{Threshold: threshold}
}

func (c *EnglishWordChecker) Leaks(text string) bool {
	threshold := c.Threshold
	if threshold <= 0 {
		threshold = DefaultLeakageThreshold
	}
	return CountEnglishMarkers(text) >= threshold
}

// CountEnglishMarkers returns how many of the function words occur in text as
// space padded substrings.
func CountEnglishMarkers(text string) int {
	padded := " " + strings.ToLower(text) + " "
	count := 0
	for _, word := range englishFunctionWords {
		if strings.Contains(padded, word) {
			count++
		}
	}
	return count
}
