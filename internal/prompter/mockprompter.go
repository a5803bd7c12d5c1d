package prompter

import "fmt"

// MockPrompter replays scripted answers in order and records the questions.
type MockPrompter struct {
	Confirms []bool
	Prompts  []string
	Selects  []string
	Err      error

	Questions []string

	ci, pi, si int
}

func (m *MockPrompter) Confirm(q string) (bool, error) {
	m.Questions = append(m.Questions, q)
	if m.Err != nil {
		return false, m.Err
	}
	if m.ci >= len(m.Confirms) {
		return false, fmt.Errorf("unexpected Confirm call: %s", q)
	}
	res := m.Confirms[m.ci]
	m.ci++
	return res, nil
}

// Prompt returns the scripted answer, or def when the script holds "".
func (m *MockPrompter) Prompt(q, def string) (string, error) {
	m.Questions = append(m.Questions, q)
	if m.Err != nil {
		return "", m.Err
	}
	if m.pi >= len(m.Prompts) {
		return "", fmt.Errorf("unexpected Prompt call: %s", q)
	}
	res := m.Prompts[m.pi]
	m.pi++
	if res == "" {
		return def, nil
	}
	return res, nil
}

func (m *MockPrompter) Select(q string, options []Option) (string, error) {
	m.Questions = append(m.Questions, q)
	if m.Err != nil {
		return "", m.Err
	}
	if m.si >= len(m.Selects) {
		return "", fmt.Errorf("unexpected Select call: %s", q)
	}
	res := m.Selects[m.si]
	m.si++
	for _, o := range options {
		if o.Value == res {
			return res, nil
		}
	}
	return "", fmt.Errorf("scripted answer %q is not an option of %q", res, q)
}
