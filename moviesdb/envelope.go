package moviesdb

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

func rawPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

// parseEnvelope decodes body into the documented envelope and classifies it.
// A body carrying the provider's error branch becomes ErrAPI with code,
// message and details untouched; anything that is structurally neither
// branch becomes ErrMalformedResponse.
func parseEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &Error{
			Kind: ErrMalformedResponse,
			Err:  fmt.Errorf("decoding envelope: %w", err),
		}
	}

	hasResults := rawPresent(env.Results)
	switch {
	case env.Fault != nil && hasResults:
		return nil, &Error{
			Kind:    ErrMalformedResponse,
			Message: "envelope carries both results and error",
		}
	case env.Fault != nil:
		return nil, &Error{
			Kind:    ErrAPI,
			Code:    env.Fault.Code,
			Message: env.Fault.Message,
			Details: env.Fault.Details,
		}
	case !hasResults:
		return nil, &Error{
			Kind:    ErrMalformedResponse,
			Message: "envelope carries neither results nor error",
		}
	}
	return &env, nil
}

// item is satisfied by every decoded result element; key returns the
// record's upstream id.
type item interface {
	key() string
}

// decodeItems decodes the results sequence. Each element must carry its id;
// unknown or missing optional fields pass through untouched so absence
// stays observable to callers.
func decodeItems[T item](env *Envelope) ([]T, error) {
	var items []T
	if err := json.Unmarshal(env.Results, &items); err != nil {
		return nil, &Error{
			Kind: ErrMalformedResponse,
			Err:  fmt.Errorf("decoding results: %w", err),
		}
	}
	for i, it := range items {
		if it.key() == "" {
			return nil, &Error{
				Kind:    ErrMalformedResponse,
				Message: fmt.Sprintf("results[%d] has no id", i),
			}
		}
	}
	return items, nil
}

// decodeOne decodes a single-object results branch. Some endpoints wrap the
// object in a one-element sequence; both shapes are accepted.
func decodeOne[T item](env *Envelope) (*T, error) {
	raw := bytes.TrimSpace(env.Results)
	if len(raw) > 0 && raw[0] == '[' {
		items, err := decodeItems[T](env)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, &Error{
				Kind:    ErrMalformedResponse,
				Message: "results sequence is empty",
			}
		}
		return &items[0], nil
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &Error{
			Kind: ErrMalformedResponse,
			Err:  fmt.Errorf("decoding result: %w", err),
		}
	}
	if v.key() == "" {
		return nil, &Error{
			Kind:    ErrMalformedResponse,
			Message: "result has no id",
		}
	}
	return &v, nil
}
