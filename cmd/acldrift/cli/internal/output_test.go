package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagoodman/go-partybus"

	"github.com/acldrift/acldrift/audit"
	"github.com/acldrift/acldrift/event"
	"github.com/acldrift/acldrift/internal/bus"
)

func captureBus(t *testing.T) *partybus.Subscription {
	t.Helper()
	b := partybus.NewBus()
	bus.Set(b)
	t.Cleanup(func() { bus.Set(nil) })
	return b.Subscribe()
}

func drainBus(t *testing.T, sub *partybus.Subscription) []partybus.Event {
	t.Helper()
	require.NoError(t, sub.Unsubscribe())
	events := make([]partybus.Event, 0)
	for e := range sub.Events() {
		events = append(events, e)
	}
	return events
}

func driftedResponse() *audit.RunResponse {
	result := audit.NewRunResponse([]string{"acldrift", "audit"}, audit.DefaultPolicy())
	result.AddTarget(audit.TargetResult{
		Resource: `D:\Shares\Finance`,
		Status:   audit.StatusDrift,
		Owner:    audit.OwnerResult{Observed: `BUILTIN\Administrators`},
		Summary:  audit.TargetSummary{Compliant: 1, LiveOnly: 1},
		Findings: []audit.Finding{
			{Classification: audit.Compliant, Identity: `CORP\finance`, Rights: "Modify", Effect: audit.Allow},
			{Classification: audit.LiveOnly, Identity: `CORP\contractor`, Rights: "FullControl", Effect: audit.Allow},
		},
	})
	result.AddTarget(audit.TargetResult{
		Resource: `D:\Shares\HR`,
		Status:   audit.StatusCompliant,
		Owner:    audit.OwnerResult{Observed: `CORP\hradmin`},
		Summary:  audit.TargetSummary{Compliant: 1},
		Findings: []audit.Finding{
			{Classification: audit.Compliant, Identity: `CORP\hr`, Rights: "Read", Effect: audit.Allow},
		},
	})
	return result
}

func Test_OutputTable_PublishesRenderedReport(t *testing.T) {
	sub := captureBus(t)

	require.NoError(t, NewOutput().OutputTable(driftedResponse()))

	events := drainBus(t, sub)
	require.Len(t, events, 1)
	assert.Equal(t, event.CLIReport, events[0].Type)

	report, ok := events[0].Value.(string)
	require.True(t, ok)
	assert.Contains(t, report, `Folder: D:\Shares\Finance`)
	assert.Contains(t, report, `Folder: D:\Shares\HR`)
	assert.Contains(t, report, `CORP\contractor`)
	assert.Contains(t, report, "Audit Summary:")
	assert.Contains(t, report, "Folders audited:   2")
}

func Test_OutputSummaryOnly_PublishesSummaryReport(t *testing.T) {
	sub := captureBus(t)

	require.NoError(t, NewOutput().OutputSummaryOnly(driftedResponse()))

	events := drainBus(t, sub)
	require.Len(t, events, 1)
	assert.Equal(t, event.CLIReport, events[0].Type)

	report, ok := events[0].Value.(string)
	require.True(t, ok)
	assert.Contains(t, report, "Audit Summary:")
	assert.Contains(t, report, "Non-compliant folders:")
	assert.Contains(t, report, `D:\Shares\Finance: drift`)
	assert.NotContains(t, report, "Folder:")
}

func Test_OutputQuiet_ReportsNonCompliantCount(t *testing.T) {
	sub := captureBus(t)

	require.NoError(t, NewOutput().OutputQuiet(driftedResponse()))

	events := drainBus(t, sub)
	require.Len(t, events, 1)
	assert.Equal(t, event.CLIReport, events[0].Type)
	assert.Equal(t, "1\n", events[0].Value)
}

func Test_OutputQuiet_SilentWhenCompliant(t *testing.T) {
	sub := captureBus(t)

	result := audit.NewRunResponse([]string{"acldrift", "audit"}, audit.DefaultPolicy())
	result.AddTarget(audit.TargetResult{Resource: `D:\Shares\HR`, Status: audit.StatusCompliant})

	require.NoError(t, NewOutput().OutputQuiet(result))

	assert.Empty(t, drainBus(t, sub))
}
