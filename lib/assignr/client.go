// Package assignr is a client for the Assignr scheduling service. It
// authenticates lazily with client credentials, walks the service's
// paginated HAL payloads and normalizes them into flat records, and it
// degrades instead of failing when the service returns unusable data:
// transport errors propagate, everything else is logged and turns into
// partial or empty results.
package assignr

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"refassist-backend/lib/restyutil"
	"refassist-backend/lib/timeutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const (
	searchStartParam = "search[start_date]"
	searchEndParam   = "search[end_date]"

	// game report form template, 108 is the legacy form
	reportTemplateID = 1002
)

type Options struct {
	ClientID     string
	ClientSecret string
	Scope        string
	BaseURL      string
	AuthURL      string
}

type Client struct {
	http *resty.Client
	opts Options

	token  string
	siteID int64

	referees  map[int64]Contact
	assignors map[int64]Contact
}

func NewClient(opts Options) *Client {
	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{
		http:      client,
		opts:      opts,
		referees:  map[int64]Contact{},
		assignors: map[int64]Contact{},
	}
}

// authenticate exchanges the client credentials for a bearer token. A
// response without a token is logged and leaves the client
// unauthenticated so later requests surface as status failures.
func (c *Client) authenticate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:authenticate")
	defer span.End()

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	_, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     c.opts.ClientID,
			"client_secret": c.opts.ClientSecret,
			"scope":         c.opts.Scope,
			"grant_type":    "client_credentials",
		}).
		SetResult(&payload).
		Post(c.opts.AuthURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make auth request")
		return err
	}

	if payload.AccessToken == "" {
		slog.ErrorContext(ctx, "token not found in auth response")
		span.SetStatus(codes.Error, "token not found")
	}
	c.token = payload.AccessToken
	return nil
}

// get makes an authenticated request, authenticating first when no
// token is held. endpoint may be an absolute URL, as handed out in the
// service's pagination links, or a path under the base URL. The
// response body is decoded into out on a 200.
func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, out any) (int, error) {
	if c.token == "" {
		if err := c.authenticate(ctx); err != nil {
			return 0, err
		}
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader("accept", "application/json").
		SetAuthToken(c.token).
		SetQueryParams(params)
	if out != nil {
		req.SetResult(out)
	}
	res, err := req.Get(endpoint)
	if err != nil {
		return 0, err
	}
	return res.StatusCode(), nil
}

// ensureSite resolves the account's site id once, taking the first
// site of the account. On failure the id stays unset and the endpoints
// built from it return 404s, which the callers degrade on.
func (c *Client) ensureSite(ctx context.Context) error {
	if c.siteID != 0 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "client:ensureSite")
	defer span.End()

	var payload sitesEnvelope
	status, err := c.get(ctx, "sites", nil, &payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch sites")
		return err
	}
	if status != 200 {
		slog.ErrorContext(ctx, "failed to look up site", "status", status)
		span.SetStatus(codes.Error, "site lookup failed")
		return nil
	}
	if len(payload.Embedded.Sites) == 0 {
		slog.ErrorContext(ctx, "site id not found")
		span.SetStatus(codes.Error, "site id not found")
		return nil
	}
	c.siteID = payload.Embedded.Sites[0].ID
	return nil
}

func (c *Client) sitePath(format string) string {
	return fmt.Sprintf(format, c.siteID)
}

// paginate walks pages 1..N of endpoint in order, re-decoding into
// envelope and calling process per page. It stops early on a non-200,
// logging it and keeping what was already gathered. pages reads the
// page count from the last decoded envelope.
func paginate[T any](
	ctx context.Context,
	c *Client,
	endpoint string,
	params map[string]string,
	envelope *T,
	pages func(*T) int,
	process func(*T),
) error {
	page := 1
	for {
		if params == nil {
			params = map[string]string{}
		}
		params["page"] = strconv.Itoa(page)

		status, err := c.get(ctx, endpoint, params, envelope)
		if err != nil {
			return err
		}
		if status != 200 {
			slog.ErrorContext(ctx, "request failed during pagination",
				"endpoint", endpoint, "page", page, "status", status)
			return nil
		}

		process(envelope)

		if page >= pages(envelope) {
			return nil
		}
		page++
		var zero T
		*envelope = zero
	}
}

func searchParams(start, end time.Time) map[string]string {
	return map[string]string{
		searchStartParam: timeutil.FormatUpstream(start),
		searchEndParam:   timeutil.FormatUpstream(end),
	}
}
