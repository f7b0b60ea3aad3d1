package assignr

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"
)

// officialsFromAssignments resolves a game's assignments against the
// referee directory. Every assignment is reported, the contact fields
// stay zero when the official is absent or unknown.
func (c *Client) officialsFromAssignments(ctx context.Context, assignments []assignmentResource) []GameOfficial {
	officials := make([]GameOfficial, 0, len(assignments))
	for _, assignment := range assignments {
		official := GameOfficial{
			Accepted: bool(assignment.Accepted),
			Position: assignment.Position,
		}
		if assignment.Embedded.Official != nil {
			id := assignment.Embedded.Official.ID
			contact, ok := c.referees[id]
			if !ok {
				slog.WarnContext(ctx, "official not in site directory", "official", id)
			}
			official.FirstName = contact.FirstName
			official.LastName = contact.LastName
			official.EmailAddresses = contact.EmailAddresses
		}
		officials = append(officials, official)
	}
	return officials
}

// gameInfo normalizes one game payload. A payload missing a required
// field, or referencing an assignor outside the directory, degrades to
// a record carrying only the game id.
func (c *Client) gameInfo(ctx context.Context, resource gameResource) Game {
	if field := resource.missingField(); field != "" {
		slog.ErrorContext(ctx, "key missing from game payload", "key", field, "game", resource.ID)
		return Game{ID: resource.ID}
	}

	assignor, ok := c.assignors[resource.Embedded.Assignor.ID]
	if !ok {
		slog.ErrorContext(ctx, "assignor not in site directory",
			"assignor", resource.Embedded.Assignor.ID, "game", resource.ID)
		return Game{ID: resource.ID}
	}

	return Game{
		ID:        resource.ID,
		Date:      *resource.Date,
		Time:      *resource.Time,
		StartTime: *resource.StartTime,
		HomeTeam:  *resource.HomeTeam,
		AwayTeam:  *resource.AwayTeam,
		AgeGroup:  *resource.AgeGroup,
		League:    *resource.League,
		Venue:     resource.Embedded.Venue.Name,
		SubVenue:  resource.SubVenue,
		Gender:    *resource.Gender,
		GameType:  *resource.GameType,
		Cancelled: bool(*resource.Cancelled),
		Referees:  c.officialsFromAssignments(ctx, resource.Embedded.Assignments),
		Assignor:  assignor,
	}
}

// GamesByType collects the window's games of one game type, keyed by
// game id. The report matching fields start unset.
func (c *Client) GamesByType(ctx context.Context, start, end time.Time, gameType string) (map[int64]Game, error) {
	ctx, span := tracer.Start(ctx, "client:GamesByType")
	defer span.End()

	if err := c.ensureSite(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve site")
		return nil, err
	}

	games := map[int64]Game{}
	params := searchParams(start, end)
	params["limit"] = "50"

	var envelope gamesEnvelope
	err := paginate(ctx, c, c.sitePath("sites/%d/games"), params, &envelope,
		func(e *gamesEnvelope) int { return e.Page.Pages },
		func(e *gamesEnvelope) {
			for _, resource := range e.Embedded.Games {
				if resource.GameType == nil || *resource.GameType != gameType {
					continue
				}
				games[resource.ID] = c.gameInfo(ctx, resource)
			}
		})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return games, nil
}

// LeagueGames collects the window's games for one league. Unlike
// GamesByType this reads a single page, league slates are small.
func (c *Client) LeagueGames(ctx context.Context, league string, start, end time.Time) ([]Game, error) {
	ctx, span := tracer.Start(ctx, "client:LeagueGames")
	defer span.End()

	if err := c.ensureSite(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve site")
		return nil, err
	}

	var envelope gamesEnvelope
	status, err := c.get(ctx, c.sitePath("sites/%d/games"), searchParams(start, end), &envelope)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch games")
		return nil, err
	}
	if status != 200 {
		slog.ErrorContext(ctx, "failed to get games", "status", status)
		return nil, nil
	}

	var games []Game
	for _, resource := range envelope.Embedded.Games {
		if resource.League == nil || *resource.League != league {
			continue
		}
		games = append(games, c.gameInfo(ctx, resource))
	}
	return games, nil
}
