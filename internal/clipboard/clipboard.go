// Package clipboard abstracts the system clipboard so the reference builder
// can be exercised without one.
package clipboard

import "github.com/atotto/clipboard"

// Writer copies text to a clipboard.
type Writer interface {
	Write(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// Write copies text to the system clipboard.
func (System) Write(text string) error {
	return clipboard.WriteAll(text)
}

// Memory records the last written text. Used in tests and when the
// clipboard side effect is suppressed.
type Memory struct {
	Text    string
	Written bool
	Err     error
}

// Write stores text, or fails with the configured error.
func (m *Memory) Write(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	m.Written = true
	return nil
}
