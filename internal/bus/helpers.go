package bus

import (
	"github.com/wagoodman/go-partybus"

	"github.com/acldrift/acldrift/event"
)

func Report(report string) {
	if len(report) == 0 {
		return
	}
	Publish(partybus.Event{
		Type:  event.CLIReport,
		Value: report,
	})
}

func Notify(message string) {
	Publish(partybus.Event{
		Type:  event.CLINotification,
		Value: message,
	})
}

// Warn surfaces a recoverable problem (skipped baseline row, unreachable
// resource) to whoever is listening on the bus.
func Warn(message string) {
	Publish(partybus.Event{
		Type:  event.CLIWarning,
		Value: message,
	})
}
