package event

import "github.com/wagoodman/go-partybus"

const (
	typePrefix    = "acldrift"
	cliTypePrefix = typePrefix + "-cli"

	// CLIReport is a partybus event that occurs when the cli is ready to generate a report
	CLIReport partybus.EventType = cliTypePrefix + "-report"

	// CLINotification is a partybus event that occurs when auxiliary information is ready for presentation to stderr
	CLINotification partybus.EventType = cliTypePrefix + "-notification"

	// CLIWarning is a partybus event that occurs when a recoverable problem (skipped row or resource) should be surfaced to stderr
	CLIWarning partybus.EventType = cliTypePrefix + "-warning"
)
