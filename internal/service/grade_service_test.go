package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		score  float64
		letter string
	}{
		{100, "A"},
		{90, "A"},
		{89.99, "B"},
		{80, "B"},
		{79.5, "C"},
		{70, "C"},
		{69.99, "D"},
		{50, "D"},
		{0, "D"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.letter, LetterGrade(tt.score), "score %.2f", tt.score)
	}
}
