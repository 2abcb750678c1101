package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanResumeText(t *testing.T) {
	input := "  John Doe  \n\n\n  Senior Developer \n\n  Python, Go  \n"
	assert.Equal(t, "John Doe\nSenior Developer\nPython, Go", CleanResumeText(input))

	assert.Equal(t, "", CleanResumeText("   \n \n  "))
}
