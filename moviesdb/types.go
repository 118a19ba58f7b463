package moviesdb

import "encoding/json"

// Text is a wrapped display string as the API returns it.
type Text struct {
	Text string `json:"text"`
}

// Image describes a title's primary image. Caption may be absent.
type Image struct {
	ID      string `json:"id,omitempty"`
	URL     string `json:"url"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Caption *struct {
		PlainText string `json:"plainText"`
	} `json:"caption,omitempty"`
}

// TitleType describes the kind of title (movie, tvSeries, ...).
type TitleType struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	IsSeries  bool   `json:"isSeries"`
	IsEpisode bool   `json:"isEpisode"`
}

// ReleaseDate is a partial calendar date; any component may be absent.
type ReleaseDate struct {
	Day   *int `json:"day"`
	Month *int `json:"month"`
	Year  *int `json:"year"`
}

// YearRange covers single-year titles and series with an end year.
type YearRange struct {
	Year    *int `json:"year"`
	EndYear *int `json:"endYear"`
}

// Title is one title item. Only ID is guaranteed; every other field depends
// on the requested info level and on how complete the upstream record is.
// Absent fields stay nil so callers can tell "missing" from "zero".
type Title struct {
	ID                string       `json:"id"`
	TitleText         *Text        `json:"titleText"`
	OriginalTitleText *Text        `json:"originalTitleText"`
	PrimaryImage      *Image       `json:"primaryImage"`
	TitleType         *TitleType   `json:"titleType"`
	ReleaseDate       *ReleaseDate `json:"releaseDate"`
	ReleaseYear       *YearRange   `json:"releaseYear"`
	Position          *int         `json:"position"`
}

func (t Title) key() string { return t.ID }

// Rating is the vote aggregate for one title.
type Rating struct {
	TitleID       string  `json:"tconst"`
	AverageRating float64 `json:"averageRating"`
	NumVotes      int     `json:"numVotes"`
}

func (r Rating) key() string { return r.TitleID }

// Episode is the lightweight episode record returned by the series
// endpoints.
type Episode struct {
	ID            string `json:"tconst"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
}

func (e Episode) key() string { return e.ID }

// Actor is one person record. As with Title, only the id is guaranteed.
type Actor struct {
	ID                string `json:"nconst"`
	PrimaryName       string `json:"primaryName"`
	BirthYear         *int   `json:"birthYear"`
	DeathYear         *int   `json:"deathYear"`
	PrimaryProfession string `json:"primaryProfession"`
	KnownForTitles    string `json:"knownForTitles"`
}

func (a Actor) key() string { return a.ID }

// Fault is the provider's error envelope, propagated verbatim.
type Fault struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// Envelope is the top-level response object: exactly one of Results or
// Fault is present. Page, Next and Entries only appear on paginated
// endpoints; Next is an opaque continuation marker and is never parsed.
type Envelope struct {
	Results json.RawMessage `json:"results"`
	Page    *int            `json:"page"`
	Next    string          `json:"next"`
	Entries *int            `json:"entries"`
	Fault   *Fault          `json:"error"`
}
