package summary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountEnglishMarkers(t *testing.T) {
	require.Equal(t, 3, CountEnglishMarkers(" the cat and the dog of "))
	require.Equal(t, 0, CountEnglishMarkers(""))
	require.Equal(t, 1, CountEnglishMarkers("The"))
	require.Equal(t, 0, CountEnglishMarkers("theory andrew often"))
}

func TestEnglishWordChecker_Threshold(t *testing.T) {
	checker := NewEnglishWordChecker(5)

	require.False(t, checker.Leaks(" the cat and the dog of "))
	require.False(t, checker.Leaks("the and of to"))
	require.True(t, checker.Leaks("the and of to in"))

	paragraph := "The court held that the appeal is dismissed and the order of the lower court stands. It is final for both parties on record."
	require.True(t, checker.Leaks(paragraph))
}

func TestEnglishWordChecker_CaseInsensitive(t *testing.T) {
	checker := NewEnglishWordChecker(5)
	require.True(t, checker.Leaks("THE AND OF TO IN"))
}

func TestEnglishWordChecker_TargetScriptDoesNotLeak(t *testing.T) {
	checker := NewEnglishWordChecker(5)
	require.False(t, checker.Leaks("- अदालत ने अपील खारिज कर दी।\n- निचली अदालत का आदेश बरकरार है।\n- दोनों पक्ष अपना खर्च उठाएंगे।"))
}

func TestNewEnglishWordChecker_DefaultThreshold(t *testing.T) {
	require.Equal(t, DefaultLeakageThreshold, NewEnglishWordChecker(0).Threshold)
	require.True(t, (&EnglishWordChecker{}).Leaks("the and of to in"))
}

func TestEnglishWordChecker_ImplementsChecker(t *testing.T) {
	var _ LanguageLeakageChecker = NewEnglishWordChecker(5)
}
