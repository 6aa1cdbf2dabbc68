package logger

import (
	"errors"
	"strings"

	"github.com/localrivet/textsummary/internal/errortypes"
)

// maxStackFrames limits how much of an error's stack is attached to a log line.
const maxStackFrames = 3

// LogError logs err on the default logger with its structured context.
func LogError(err error) {
	defaultLogger.LogError(err)
}

// LogError logs err with its type, fields and the top of its stack when it
// is an errortypes.AppError, and as a plain message otherwise.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	var appErr *errortypes.AppError
	if !errors.As(err, &appErr) {
		l.Error("Unstructured error: %v", err)
		return
	}

	fields := make(map[string]interface{}, len(appErr.Fields)+2)
	for k, v := range appErr.Fields {
		fields[k] = v
	}
	fields["error_type"] = string(appErr.Type)
	if stack := topFrames(appErr.StackInfo, maxStackFrames); stack != "" {
		fields["stack"] = stack
	}

	l.WithFields(fields).Error("%s", appErr.Error())
}

// topFrames joins the first n non-empty lines of a captured stack.
func topFrames(stack string, n int) string {
	frames := make([]string, 0, n)
	for _, line := range strings.Split(stack, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		frames = append(frames, line)
		if len(frames) == n {
			break
		}
	}
	return strings.Join(frames, " > ")
}
