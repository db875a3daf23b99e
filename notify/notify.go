// Package notify is the client's user-facing notification surface, the
// headless counterpart of the dashboard's dismissible toasts.
package notify

import "github.com/rs/zerolog/log"

// Notifier receives user-visible notifications. UI frontends route these to
// toasts; the CLI logs them.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

var _ Notifier = LogNotifier{}

// LogNotifier writes notifications to the zerolog global logger.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) {
	log.Info().Str("notification", "success").Msg(msg)
}

func (LogNotifier) Error(msg string) {
	log.Warn().Str("notification", "error").Msg(msg)
}
