package judge

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackWithoutCredentialNeverFails(t *testing.T) {
	j := New("", "", "")

	in := Input{
		Term:             "API",
		Team1Name:        "Team Alpha",
		Team2Name:        "Team Beta",
		Team1Explanation: "a box that answers questions",
		Team2Explanation: "a robot menu",
	}
	for i := 0; i < 10; i++ {
		assert.NotEmpty(t, j.Feedback(context.Background(), in))
	}
}

func TestFallbackLinesRotate(t *testing.T) {
	j := New("", "", "")

	seen := map[string]bool{}
	for i := 0; i < len(fallbackLines); i++ {
		seen[j.Feedback(context.Background(), Input{})] = true
	}
	assert.Len(t, seen, len(fallbackLines), "each filler line should get a turn")
}

func TestPromptContainsRoundMaterial(t *testing.T) {
	p := prompt(Input{
		Term:             "Sharding",
		Team1Name:        "Wizards",
		Team2Name:        "Goblins",
		Team1Explanation: "cutting the pizza",
		Team2Explanation: "many small boxes",
	})

	for _, want := range []string{"Sharding", "Wizards", "Goblins", "cutting the pizza", "many small boxes"} {
		assert.True(t, strings.Contains(p, want), "prompt missing %q", want)
	}
}

func TestNewDefaultsModel(t *testing.T) {
	j := New("", "", "")
	assert.Equal(t, DefaultModel, j.model)
}
