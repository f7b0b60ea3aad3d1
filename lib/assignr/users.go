package assignr

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
)

func contactFromUser(user userResource) Contact {
	return Contact{
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		EmailAddresses: user.EmailAddresses,
	}
}

// LoadDirectory rebuilds the client's referee and assignor directories
// from the site's users. Users flagged as both appear in both. The
// directories back the game record joins, so this should run before
// any of the game operations.
func (c *Client) LoadDirectory(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:LoadDirectory")
	defer span.End()

	c.referees = map[int64]Contact{}
	c.assignors = map[int64]Contact{}

	if err := c.ensureSite(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve site")
		return err
	}

	var envelope usersEnvelope
	return paginate(ctx, c, c.sitePath("sites/%d/users"), nil, &envelope,
		func(e *usersEnvelope) int { return e.Page.Pages },
		func(e *usersEnvelope) {
			for _, user := range e.Embedded.Users {
				if user.Official {
					c.referees[user.ID] = contactFromUser(user)
				}
				if user.Assignor {
					c.assignors[user.ID] = contactFromUser(user)
				}
			}
		})
}

// RefereeInformation fetches a single user through the absolute link
// other payloads hand out. A failing request is logged and yields a
// zero record.
func (c *Client) RefereeInformation(ctx context.Context, href string) (RefereeInfo, error) {
	ctx, span := tracer.Start(ctx, "client:RefereeInformation")
	defer span.End()

	var user userResource
	status, err := c.get(ctx, href, nil, &user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch user")
		return RefereeInfo{}, err
	}
	if status != 200 {
		slog.ErrorContext(ctx, "failed to get referee information",
			"status", status, "href", href)
		return RefereeInfo{}, nil
	}
	return RefereeInfo{
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		EmailAddresses: user.EmailAddresses,
		Official:       bool(user.Official),
		Assignor:       bool(user.Assignor),
		Manager:        bool(user.Manager),
		Active:         bool(user.Active),
	}, nil
}

// ActiveAssignors lists the site's active assignors with their primary
// email address. Assignors without an address on file keep an empty
// one.
func (c *Client) ActiveAssignors(ctx context.Context) ([]Assignor, error) {
	ctx, span := tracer.Start(ctx, "client:ActiveAssignors")
	defer span.End()

	if err := c.ensureSite(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve site")
		return nil, err
	}

	var assignors []Assignor
	var envelope usersEnvelope
	err := paginate(ctx, c, c.sitePath("sites/%d/users"), nil, &envelope,
		func(e *usersEnvelope) int { return e.Page.Pages },
		func(e *usersEnvelope) {
			for _, user := range e.Embedded.Users {
				if !user.Assignor || !user.Active {
					continue
				}
				email := ""
				if len(user.EmailAddresses) > 0 {
					email = user.EmailAddresses[0]
				} else {
					slog.DebugContext(ctx, "assignor has no email address", "user", user.ID)
				}
				assignors = append(assignors, Assignor{
					FirstName: user.FirstName,
					LastName:  user.LastName,
					Email:     email,
				})
			}
		})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return assignors, nil
}
