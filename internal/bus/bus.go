// Package bus holds the singleton event bus that the audit engine publishes
// progress and warning events onto. The CLI wires a concrete bus at startup;
// without one, publishing is a no-op so library use stays silent.
package bus

import "github.com/wagoodman/go-partybus"

var publisher partybus.Publisher

// Set installs the bus publisher for the process.
func Set(p partybus.Publisher) {
	publisher = p
}

func Get() partybus.Publisher {
	return publisher
}

// Publish puts an event on the bus, dropping it when no bus is set.
func Publish(e partybus.Event) {
	if publisher != nil {
		publisher.Publish(e)
	}
}
