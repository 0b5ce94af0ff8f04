// Package usersink bridges activity events into a go-users activity log.
package usersink

import (
	"context"

	"github.com/google/uuid"

	"github.com/JasirTK/shopifysmartpromo/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
)

// Sink is the subset of the go-users activity logger the hook needs.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook maps activity events onto go-users activity records.
type Hook struct {
	Sink Sink
}

var _ activity.Hook = Hook{}

// Notify converts and forwards the event. Events without a verb or without a
// configured sink are dropped silently.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil || !evt.Valid() {
		return nil
	}
	record := types.ActivityRecord{
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
	}
	if id, err := uuid.Parse(evt.ActorID); err == nil {
		record.ActorID = id
	}
	if id, err := uuid.Parse(evt.UserID); err == nil {
		record.UserID = id
	}
	if id, err := uuid.Parse(evt.TenantID); err == nil {
		record.TenantID = id
	}
	data := make(map[string]any, len(evt.Metadata)+2)
	for k, v := range evt.Metadata {
		data[k] = v
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = append([]string(nil), evt.Recipients...)
	}
	if len(data) > 0 {
		record.Data = data
	}
	return h.Sink.Log(ctx, record)
}
