package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomTermByDifficulty(t *testing.T) {
	for i := 0; i < 50; i++ {
		term := RandomTermByDifficulty(DifficultyHard)
		assert.Equal(t, DifficultyHard, term.Difficulty)
		assert.NotEmpty(t, term.En)
	}
}

func TestRandomTermByDifficultyUnknownBucketFallsBack(t *testing.T) {
	term := RandomTermByDifficulty("impossible")
	assert.NotEmpty(t, term.En)
}

func TestValidDifficulty(t *testing.T) {
	assert.True(t, ValidDifficulty(DifficultyEasy))
	assert.True(t, ValidDifficulty(DifficultyMedium))
	assert.True(t, ValidDifficulty(DifficultyHard))
	assert.False(t, ValidDifficulty("nightmare"))
	assert.False(t, ValidDifficulty(""))
}
