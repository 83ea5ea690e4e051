package summary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage(" hindi ")
	require.NoError(t, err)
	require.Equal(t, Hindi, lang)

	lang, err = ParseLanguage("URDU")
	require.NoError(t, err)
	require.Equal(t, Urdu, lang)

	_, err = ParseLanguage("French")
	require.Error(t, err)
	_, err = ParseLanguage("")
	require.Error(t, err)
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	require.Equal(t, []Language{English, Hindi, Bengali, Urdu}, langs)
	langs[0] = "Klingon"
	require.Equal(t, English, SupportedLanguages()[0])
}

func TestIsEnglish(t *testing.T) {
	require.True(t, English.IsEnglish())
	require.True(t, Language("english").IsEnglish())
	require.False(t, Bengali.IsEnglish())
}
