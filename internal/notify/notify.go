// Package notify carries user-facing notices to whichever surface invoked
// the command: stderr for the CLI, recorded messages for MCP tool results.
package notify

import (
	"fmt"
	"os"
)

// Level classifies a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier surfaces user-facing notices.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// Stderr prints notices to standard error, keeping stdout free for the
// reference itself.
type Stderr struct{}

func (Stderr) Info(msg string)  { fmt.Fprintln(os.Stderr, msg) }
func (Stderr) Warn(msg string)  { fmt.Fprintln(os.Stderr, "warning: "+msg) }
func (Stderr) Error(msg string) { fmt.Fprintln(os.Stderr, "error: "+msg) }

// Notice is a single recorded notice.
type Notice struct {
	Level   Level
	Message string
}

// Recorder captures notices in order so tool handlers can include them in
// their results.
type Recorder struct {
	Notices []Notice
}

func (r *Recorder) Info(msg string)  { r.record(LevelInfo, msg) }
func (r *Recorder) Warn(msg string)  { r.record(LevelWarning, msg) }
func (r *Recorder) Error(msg string) { r.record(LevelError, msg) }

func (r *Recorder) record(level Level, msg string) {
	r.Notices = append(r.Notices, Notice{Level: level, Message: msg})
}

// Last returns the most recent notice, if any.
func (r *Recorder) Last() (Notice, bool) {
	if len(r.Notices) == 0 {
		return Notice{}, false
	}
	return r.Notices[len(r.Notices)-1], true
}
