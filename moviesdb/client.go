package moviesdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// DefaultHost is the documented RapidAPI host for the MoviesDatabase API.
const DefaultHost = "moviesdatabase.p.rapidapi.com"

// Client is the facade over the documented movies API: one method per
// endpoint family, each validating its parameters against the endpoint
// catalog before dispatch and running every attempt through the retry loop.
// A Client is safe for concurrent use; concurrent calls share nothing but
// the optional RateLimiter.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	timeout    time.Duration
	backoff    BackoffPolicy
	limiter    RateLimiter
	clock      Clock
	observer   Observer
	logger     zerolog.Logger
}

// New creates a client for the given credentials.
func New(creds Credentials, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if creds == nil || creds.APIKey() == "" {
		return nil, fmt.Errorf("moviesdb: API key is required")
	}
	if creds.APIHost() == "" {
		return nil, fmt.Errorf("moviesdb: API host is required")
	}

	client := &Client{
		baseURL:    "https://" + creds.APIHost(),
		creds:      creds,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		backoff:    DefaultBackoff(),
		clock:      realClock{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// getEnvelope runs one logical request: reserve budget, attempt, and on a
// retryable failure wait out the backoff delay and attempt again. The loop
// is the state machine Attempt -> Success | retryable failure -> wait ->
// Attempt | terminal failure. Each attempt gets a fresh timeout.
func (c *Client) getEnvelope(ctx context.Context, ep Endpoint, path string, query url.Values) (*Envelope, error) {
	start := c.clock.Now()
	attempts := 0
	finalStatus := 0
	defer func() {
		if c.observer != nil {
			c.observer.Observe(Outcome{
				Endpoint:    ep,
				Attempts:    attempts,
				FinalStatus: finalStatus,
				Elapsed:     c.clock.Now().Sub(start),
			})
		}
	}()

	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Reserve(ctx, 1); err != nil {
				return nil, fmt.Errorf("reserving rate-limit budget: %w", err)
			}
		}

		status, body, err := c.roundTrip(ctx, path, query)
		attempts++
		finalStatus = status

		var failure *Error
		switch {
		case err != nil:
			if !errors.As(err, &failure) || !errors.Is(failure.Kind, ErrTimeout) {
				return nil, err
			}
			failure.Endpoint = string(ep)

		case status >= 200 && status < 300:
			env, perr := parseEnvelope(body)
			if perr != nil {
				annotate(perr, ep, status)
				return nil, perr
			}
			return env, nil

		case status == http.StatusTooManyRequests:
			failure = &Error{Kind: ErrRateLimited, Endpoint: string(ep), Status: status}

		case status >= 500:
			failure = &Error{Kind: ErrServer, Endpoint: string(ep), Status: status}

		default:
			// Remaining 4xx: surface the provider's error envelope when the
			// body carries one, otherwise the body shape itself is the
			// problem.
			if _, perr := parseEnvelope(body); perr != nil {
				annotate(perr, ep, status)
				return nil, perr
			}
			return nil, &Error{
				Kind:     ErrMalformedResponse,
				Endpoint: string(ep),
				Status:   status,
				Message:  "unexpected status for a results envelope",
			}
		}

		delay, ok := c.backoff.NextDelay(attempt, status)
		if !ok {
			return nil, &Error{
				Kind:     ErrRetryBudgetExhausted,
				Endpoint: string(ep),
				Status:   status,
				Err:      failure,
			}
		}

		c.logger.Debug().
			Str("endpoint", string(ep)).
			Int("attempt", attempt+1).
			Int("status", status).
			Dur("delay", delay).
			Msg("Retrying request")

		if err := c.clock.Sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func annotate(err error, ep Endpoint, status int) {
	var e *Error
	if errors.As(err, &e) {
		e.Endpoint = string(ep)
		e.Status = status
	}
}

// one runs a single-object endpoint end to end.
func one[T item](ctx context.Context, c *Client, ep Endpoint, path string, q Query) (*T, error) {
	d := endpoints[ep]
	values, err := validateQuery(d, q)
	if err != nil {
		return nil, err
	}
	env, err := c.getEnvelope(ctx, ep, path, values)
	if err != nil {
		return nil, err
	}
	return decodeOne[T](env)
}

// TitleByID fetches one title. The info query parameter selects the field
// projection.
func (c *Client) TitleByID(ctx context.Context, id string, q Query) (*Title, error) {
	if err := validateTitleID(id); err != nil {
		return nil, err
	}
	d := endpoints[EndpointTitleByID]
	return one[Title](ctx, c, EndpointTitleByID, fmt.Sprintf(d.path, url.PathEscape(id)), q)
}

// Ratings fetches the vote aggregate for one title.
func (c *Client) Ratings(ctx context.Context, id string) (*Rating, error) {
	if err := validateTitleID(id); err != nil {
		return nil, err
	}
	d := endpoints[EndpointRatings]
	return one[Rating](ctx, c, EndpointRatings, fmt.Sprintf(d.path, url.PathEscape(id)), nil)
}

// EpisodeByID fetches one episode as a title record.
func (c *Client) EpisodeByID(ctx context.Context, id string, q Query) (*Title, error) {
	if err := validateTitleID(id); err != nil {
		return nil, err
	}
	d := endpoints[EndpointEpisodeByID]
	return one[Title](ctx, c, EndpointEpisodeByID, fmt.Sprintf(d.path, url.PathEscape(id)), q)
}

// ActorByID fetches one person record.
func (c *Client) ActorByID(ctx context.Context, id string) (*Actor, error) {
	if err := validateActorID(id); err != nil {
		return nil, err
	}
	d := endpoints[EndpointActorByID]
	return one[Actor](ctx, c, EndpointActorByID, fmt.Sprintf(d.path, url.PathEscape(id)), nil)
}

// Seasons returns the number of seasons of a series.
func (c *Client) Seasons(ctx context.Context, id string) (int, error) {
	if err := validateTitleID(id); err != nil {
		return 0, err
	}
	d := endpoints[EndpointSeasons]
	env, err := c.getEnvelope(ctx, EndpointSeasons, fmt.Sprintf(d.path, url.PathEscape(id)), nil)
	if err != nil {
		return 0, err
	}

	var n int
	if err := json.Unmarshal(env.Results, &n); err != nil {
		return 0, &Error{
			Kind: ErrMalformedResponse,
			Err:  fmt.Errorf("decoding season count: %w", err),
		}
	}
	return n, nil
}

// Titles iterates the main title listing.
func (c *Client) Titles(q Query) *Iter[Title] {
	return newIter[Title](c, EndpointTitles, endpoints[EndpointTitles].path, q)
}

// Upcoming iterates titles not yet released.
func (c *Client) Upcoming(q Query) *Iter[Title] {
	return newIter[Title](c, EndpointUpcoming, endpoints[EndpointUpcoming].path, q)
}

// SearchByKeyword iterates titles matching a keyword.
func (c *Client) SearchByKeyword(keyword string, q Query) *Iter[Title] {
	if keyword == "" {
		return errIter[Title](invalidParam("keyword", "must not be empty"))
	}
	d := endpoints[EndpointSearchKeyword]
	return newIter[Title](c, EndpointSearchKeyword, fmt.Sprintf(d.path, url.PathEscape(keyword)), q)
}

// SearchByTitle iterates titles whose name contains title; set exact=true in
// q for exact matching.
func (c *Client) SearchByTitle(title string, q Query) *Iter[Title] {
	if title == "" {
		return errIter[Title](invalidParam("title", "must not be empty"))
	}
	d := endpoints[EndpointSearchTitle]
	return newIter[Title](c, EndpointSearchTitle, fmt.Sprintf(d.path, url.PathEscape(title)), q)
}

// SearchByAKA iterates titles by alternative name. Matching upstream is
// exact and case sensitive.
func (c *Client) SearchByAKA(aka string, q Query) *Iter[Title] {
	if aka == "" {
		return errIter[Title](invalidParam("aka", "must not be empty"))
	}
	d := endpoints[EndpointSearchAKA]
	return newIter[Title](c, EndpointSearchAKA, fmt.Sprintf(d.path, url.PathEscape(aka)), q)
}

// SeriesEpisodes iterates the lightweight episode records of a series.
func (c *Client) SeriesEpisodes(id string, q Query) *Iter[Episode] {
	if err := validateTitleID(id); err != nil {
		return errIter[Episode](err)
	}
	d := endpoints[EndpointSeriesEpisodes]
	return newIter[Episode](c, EndpointSeriesEpisodes, fmt.Sprintf(d.path, url.PathEscape(id)), q)
}

// SeasonEpisodes iterates the episodes of one season of a series.
func (c *Client) SeasonEpisodes(id string, season int, q Query) *Iter[Episode] {
	if err := validateTitleID(id); err != nil {
		return errIter[Episode](err)
	}
	if season < 1 {
		return errIter[Episode](invalidParam("season", "must be >= 1"))
	}
	d := endpoints[EndpointSeasonEpisodes]
	return newIter[Episode](c, EndpointSeasonEpisodes, fmt.Sprintf(d.path, url.PathEscape(id), season), q)
}

// Actors iterates the person listing.
func (c *Client) Actors(q Query) *Iter[Actor] {
	return newIter[Actor](c, EndpointActors, endpoints[EndpointActors].path, q)
}

// TitleTypes returns the documented titleType values from the utility
// endpoint.
func (c *Client) TitleTypes(ctx context.Context) ([]string, error) {
	return c.utilStrings(ctx, EndpointTitleTypes)
}

// GenreList returns the documented genre values from the utility endpoint.
func (c *Client) GenreList(ctx context.Context) ([]string, error) {
	return c.utilStrings(ctx, EndpointGenres)
}

// ListNames returns the documented curated list names from the utility
// endpoint.
func (c *Client) ListNames(ctx context.Context) ([]string, error) {
	return c.utilStrings(ctx, EndpointLists)
}

// utilStrings fetches a utility endpoint whose results is a sequence of
// strings. The genres sequence leads with a JSON null upstream; nulls are
// skipped.
func (c *Client) utilStrings(ctx context.Context, ep Endpoint) ([]string, error) {
	env, err := c.getEnvelope(ctx, ep, endpoints[ep].path, nil)
	if err != nil {
		return nil, err
	}

	var raw []*string
	if err := json.Unmarshal(env.Results, &raw); err != nil {
		return nil, &Error{
			Kind: ErrMalformedResponse,
			Err:  fmt.Errorf("decoding string results: %w", err),
		}
	}

	values := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != nil {
			values = append(values, *s)
		}
	}
	return values, nil
}
