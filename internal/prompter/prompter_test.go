package prompter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got, err := New(strings.NewReader(tt.input), &out).Confirm("Sure?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Sure? [y/N]")
		})
	}
}

func TestTextPrompter_PromptDefault(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("\ncustom\n"), &out)

	got, err := p.Prompt("Name?", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)

	got, err = p.Prompt("Name?", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "custom", got)
}

func TestTextPrompter_Select(t *testing.T) {
	opts := []Option{{Label: "Attach", Value: "attach"}, {Label: "Replace", Value: "replace"}}

	var out bytes.Buffer
	got, err := New(strings.NewReader("9\n2\n"), &out).Select("What now?", opts)
	require.NoError(t, err)
	assert.Equal(t, "replace", got)
	assert.Contains(t, out.String(), `Invalid choice "9"`)

	got, err = New(strings.NewReader("\n"), &out).Select("What now?", opts)
	require.NoError(t, err)
	assert.Equal(t, "attach", got)
}

func TestTextPrompter_EOF(t *testing.T) {
	_, err := New(strings.NewReader(""), &bytes.Buffer{}).Confirm("Sure?")
	assert.ErrorIs(t, err, ErrAborted)
}

func TestMockPrompter_RejectsUnknownOption(t *testing.T) {
	m := &MockPrompter{Selects: []string{"nope"}}
	_, err := m.Select("Which?", Options("a", "b"))
	assert.Error(t, err)
}
