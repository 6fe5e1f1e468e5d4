package events

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// RegisterLoggingHandlers subscribes a logging handler for every wheel event
// type, so published events always leave a trace in the logs even when no
// other subscriber cares about them.
func RegisterLoggingHandlers(bus *Bus) {
	bus.Subscribe(EventTypeEntriesAdded, logEntriesAdded)
	bus.Subscribe(EventTypeEntryRenamed, logEntryRenamed)
	bus.Subscribe(EventTypeEntryDeactivated, logEntryDeactivated)
	bus.Subscribe(EventTypeDrawPerformed, logDrawPerformed)
	bus.Subscribe(EventTypeAccountProvisioned, logAccountProvisioned)
}

func logEntriesAdded(ctx context.Context, event Event) {
	e, ok := event.(EntriesAddedEvent)
	if !ok {
		return
	}
	log.WithFields(log.Fields{
		"labels":          e.Labels,
		"addedBy":         e.AddedBy,
		"accountsCreated": e.AccountsCreated,
	}).Info("Entries added to the wheel")
}

func logEntryRenamed(ctx context.Context, event Event) {
	e, ok := event.(EntryRenamedEvent)
	if !ok {
		return
	}
	log.WithFields(log.Fields{
		"entryId":  e.EntryID,
		"oldLabel": e.OldLabel,
		"newLabel": e.NewLabel,
	}).Info("Entry renamed")
}

func logEntryDeactivated(ctx context.Context, event Event) {
	e, ok := event.(EntryDeactivatedEvent)
	if !ok {
		return
	}
	log.WithFields(log.Fields{
		"entryId": e.EntryID,
		"label":   e.Label,
	}).Info("Entry deactivated")
}

func logDrawPerformed(ctx context.Context, event Event) {
	e, ok := event.(DrawPerformedEvent)
	if !ok {
		return
	}
	log.WithFields(log.Fields{
		"drawId":      e.DrawID,
		"entryId":     e.EntryID,
		"resultLabel": e.ResultLabel,
		"cycleIndex":  e.CycleIndex,
		"drawnBy":     e.DrawnBy,
	}).Info("Draw performed")
}

func logAccountProvisioned(ctx context.Context, event Event) {
	e, ok := event.(AccountProvisionedEvent)
	if !ok {
		return
	}
	log.WithFields(log.Fields{
		"accountId": e.AccountID,
		"email":     e.Email,
	}).Info("Account provisioned")
}
