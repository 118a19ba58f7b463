package moviesdb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope(t *testing.T) {
	t.Run("results branch", func(t *testing.T) {
		env, err := parseEnvelope([]byte(`{"page":1,"next":"/titles?page=2","entries":10,"results":[{"id":"tt1"}]}`))
		require.NoError(t, err)
		require.NotNil(t, env.Page)
		assert.Equal(t, 1, *env.Page)
		assert.Equal(t, "/titles?page=2", env.Next)
		require.NotNil(t, env.Entries)
		assert.Equal(t, 10, *env.Entries)
	})

	t.Run("error branch is surfaced verbatim", func(t *testing.T) {
		_, err := parseEnvelope([]byte(`{"error":{"code":"INVALID_PARAMETER","message":"bad id","details":"tt-what"}}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrAPI))

		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "INVALID_PARAMETER", apiErr.Code)
		assert.Equal(t, "bad id", apiErr.Message)
		assert.Equal(t, "tt-what", apiErr.Details)
	})

	t.Run("neither branch", func(t *testing.T) {
		_, err := parseEnvelope([]byte(`{"unexpected":true}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedResponse))
	})

	t.Run("null results", func(t *testing.T) {
		_, err := parseEnvelope([]byte(`{"results":null}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedResponse))
	})

	t.Run("both branches", func(t *testing.T) {
		_, err := parseEnvelope([]byte(`{"results":[],"error":{"code":"X","message":"y"}}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedResponse))
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseEnvelope([]byte(`<html>backend blew up</html>`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedResponse))
	})
}

func TestDecodeItems(t *testing.T) {
	t.Run("optional fields stay absent", func(t *testing.T) {
		env, err := parseEnvelope([]byte(`{"results":[{"id":"tt1","titleText":{"text":"Example"}},{"id":"tt2"}]}`))
		require.NoError(t, err)

		titles, err := decodeItems[Title](env)
		require.NoError(t, err)
		require.Len(t, titles, 2)

		require.NotNil(t, titles[0].TitleText)
		assert.Equal(t, "Example", titles[0].TitleText.Text)
		assert.Nil(t, titles[0].ReleaseDate, "absent field must stay nil")
		assert.Nil(t, titles[1].TitleText, "absent field must stay nil")
	})

	t.Run("item without id", func(t *testing.T) {
		env, err := parseEnvelope([]byte(`{"results":[{"titleText":{"text":"Nameless"}}]}`))
		require.NoError(t, err)

		_, err = decodeItems[Title](env)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedResponse))
	})
}

func TestDecodeOne(t *testing.T) {
	t.Run("object results", func(t *testing.T) {
		env, err := parseEnvelope([]byte(`{"results":{"tconst":"tt1","averageRating":7.5,"numVotes":120}}`))
		require.NoError(t, err)

		rating, err := decodeOne[Rating](env)
		require.NoError(t, err)
		assert.Equal(t, "tt1", rating.TitleID)
		assert.InDelta(t, 7.5, rating.AverageRating, 0.001)
		assert.Equal(t, 120, rating.NumVotes)
	})

	t.Run("single-element sequence", func(t *testing.T) {
		env, err := parseEnvelope([]byte(`{"results":[{"nconst":"nm1","primaryName":"Someone"}]}`))
		require.NoError(t, err)

		actor, err := decodeOne[Actor](env)
		require.NoError(t, err)
		assert.Equal(t, "nm1", actor.ID)
		assert.Equal(t, "Someone", actor.PrimaryName)
	})

	t.Run("empty sequence", func(t *testing.T) {
		env, err := parseEnvelope([]byte(`{"results":[]}`))
		require.NoError(t, err)

		_, err = decodeOne[Title](env)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedResponse))
	})
}
