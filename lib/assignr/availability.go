package assignr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"
)

// AllDay is the window reported for a whole-day availability entry.
const AllDay = "ALL DAY"

// Availability lists a referee's availability in the window. A 404
// means the referee declared nothing and yields an empty result, other
// failures are logged and also yield an empty result. An entry without
// the all_day flag stops the walk, keeping the slots gathered so far.
func (c *Client) Availability(ctx context.Context, userID string, start, end time.Time) ([]AvailabilitySlot, error) {
	ctx, span := tracer.Start(ctx, "client:Availability")
	defer span.End()

	params := searchParams(start, end)
	params["user_id"] = userID

	var envelope availabilityEnvelope
	status, err := c.get(ctx, fmt.Sprintf("users/%s/availability", userID), params, &envelope)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch availability")
		return nil, err
	}

	if status == 404 {
		slog.WarnContext(ctx, "user has no availability", "user", userID)
		return nil, nil
	}
	if status != 200 {
		slog.ErrorContext(ctx, "failed to get availability", "status", status, "user", userID)
		span.SetStatus(codes.Error, "availability request failed")
		return nil, nil
	}

	var slots []AvailabilitySlot
	for _, entry := range envelope.Embedded.Availability {
		if entry.AllDay == nil {
			slog.ErrorContext(ctx, "key missing from availability payload", "key", "all_day", "user", userID)
			return slots, nil
		}
		window := fmt.Sprintf("%s - %s", entry.StartTime, entry.EndTime)
		if *entry.AllDay == "true" {
			window = AllDay
		}
		slots = append(slots, AvailabilitySlot{
			Date:   entry.Date,
			Window: window,
		})
	}
	return slots, nil
}
