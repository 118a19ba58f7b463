// Package moviesdb provides a typed, resilient client for the
// MoviesDatabase REST API on RapidAPI.
//
// # Architecture
//
// The package is organized into a few layered components:
//
//   - Endpoint catalog: a static descriptor table carrying each documented
//     endpoint's path template and allowed query parameters
//   - Transport: one HTTP attempt with authentication headers and a
//     per-attempt timeout
//   - BackoffPolicy: a pure exponential retry schedule for 429/5xx/timeout
//   - Envelope validation: parses the results/error envelope and classifies
//     provider errors
//   - Iter: pull-based pagination, one request per consumed page
//   - Client: the facade composing the above, one method per endpoint family
//
// # Usage
//
// Create a client with your RapidAPI credentials:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := moviesdb.New(
//		moviesdb.StaticCredentials{Key: "your-key", Host: moviesdb.DefaultHost},
//		logger,
//		moviesdb.WithTimeout(15*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	it := client.Titles(moviesdb.Query{"genre": "Drama", "limit": "50"})
//	for it.Next(ctx) {
//		for _, title := range it.Items() {
//			fmt.Println(title.ID)
//		}
//	}
//	if err := it.Err(); err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
// Every failure wraps one of the package's kind sentinels, so callers can
// tell invalid input from an unavailable service from a provider business
// error:
//
//	if errors.Is(err, moviesdb.ErrInvalidParameter) {
//		// fix the call
//	}
//	var apiErr *moviesdb.Error
//	if errors.As(err, &apiErr) && errors.Is(apiErr.Kind, moviesdb.ErrAPI) {
//		// provider code/message in apiErr.Code, apiErr.Message
//	}
//
// Rate-limited (429), server (5xx) and timed-out attempts are retried with
// exponential backoff; everything else surfaces immediately.
//
// # Thread Safety
//
// A Client is safe for concurrent use. Each call owns its retry state and
// pagination cursor; the only shared collaborator is an optional
// RateLimiter, which several clients may hold to split one upstream quota.
package moviesdb
