package moviesdb

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
)

// Query holds caller-supplied query parameters for one call. Every name must
// be in the endpoint's allowed set and every value inside its documented
// domain; violations fail with ErrInvalidParameter before any request is
// issued.
type Query map[string]string

var (
	titleIDPattern = regexp.MustCompile(`^tt\d+$`)
	actorIDPattern = regexp.MustCompile(`^nm\d+$`)
)

// Genres lists the documented genre values. They are case sensitive and
// capitalized; "action" is rejected where "Action" passes.
var Genres = []string{
	"Action", "Adult", "Adventure", "Animation", "Biography", "Comedy",
	"Crime", "Documentary", "Drama", "Family", "Fantasy", "Film-Noir",
	"Game-Show", "History", "Horror", "Music", "Musical", "Mystery", "News",
	"Reality-TV", "Romance", "Sci-Fi", "Short", "Sport", "Talk-Show",
	"Thriller", "War", "Western",
}

// TitleTypes lists the documented titleType values.
var TitleTypes = []string{
	"movie", "musicVideo", "podcastEpisode", "podcastSeries", "short",
	"tvEpisode", "tvMiniSeries", "tvMovie", "tvPilot", "tvSeries",
	"tvShort", "tvSpecial", "video", "videoGame",
}

// InfoLevels lists the documented info projections. mini_info guarantees
// titleText, id, primaryImage, titleType and releaseDate on each item.
var InfoLevels = []string{
	"mini_info", "base_info", "image", "creators_directors_writers",
	"revenue_budget", "extendedCast", "rating", "awards",
}

// Lists names the documented curated lists accepted by the list parameter.
var Lists = []string{
	"most_pop_movies", "most_pop_series", "top_boxoffice_200",
	"top_boxoffice_last_weekend_10", "top_rated_250",
	"top_rated_english_250", "top_rated_lowest_100", "top_rated_series_250",
	"titles",
}

func oneOf(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// validateTitleID checks the documented IMDb title id format (tt + digits).
func validateTitleID(id string) error {
	if !titleIDPattern.MatchString(id) {
		return invalidParam("id", fmt.Sprintf("%q is not a valid title id (want tt + digits)", id))
	}
	return nil
}

// validateActorID checks the documented IMDb person id format (nm + digits).
func validateActorID(id string) error {
	if !actorIDPattern.MatchString(id) {
		return invalidParam("id", fmt.Sprintf("%q is not a valid actor id (want nm + digits)", id))
	}
	return nil
}

// paramCheckers maps each known query parameter to its value-domain check.
var paramCheckers = map[string]func(string) error{
	"genre": func(v string) error {
		if !oneOf(Genres, v) {
			return invalidParam("genre", fmt.Sprintf("%q is not a documented genre (values are capitalized and case sensitive)", v))
		}
		return nil
	},
	"titleType": func(v string) error {
		if !oneOf(TitleTypes, v) {
			return invalidParam("titleType", fmt.Sprintf("%q is not a documented title type", v))
		}
		return nil
	},
	"info": func(v string) error {
		if !oneOf(InfoLevels, v) {
			return invalidParam("info", fmt.Sprintf("%q is not a documented info level", v))
		}
		return nil
	},
	"list": func(v string) error {
		if !oneOf(Lists, v) {
			return invalidParam("list", fmt.Sprintf("%q is not a documented list", v))
		}
		return nil
	},
	"sort": func(v string) error {
		if v != "year.incr" && v != "year.decr" {
			return invalidParam("sort", fmt.Sprintf("%q is not valid (want year.incr or year.decr)", v))
		}
		return nil
	},
	"limit": func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 50 {
			return invalidParam("limit", fmt.Sprintf("%q is outside [1,50]", v))
		}
		return nil
	},
	"page": func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return invalidParam("page", fmt.Sprintf("%q must be an integer >= 1", v))
		}
		return nil
	},
	"year":      checkYear("year"),
	"startYear": checkYear("startYear"),
	"endYear":   checkYear("endYear"),
	"exact": func(v string) error {
		if v != "true" && v != "false" {
			return invalidParam("exact", fmt.Sprintf("%q must be true or false", v))
		}
		return nil
	},
}

func checkYear(name string) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1800 || n > 3000 {
			return invalidParam(name, fmt.Sprintf("%q is not a plausible year", v))
		}
		return nil
	}
}

// validateQuery checks q against the descriptor's allowed parameter set and
// each value's domain, returning ready-to-send url.Values.
func validateQuery(d descriptor, q Query) (url.Values, error) {
	values := url.Values{}
	for name, value := range q {
		if !d.allows(name) {
			return nil, invalidParam(name, "not accepted by this endpoint")
		}
		if check, ok := paramCheckers[name]; ok {
			if err := check(value); err != nil {
				return nil, err
			}
		}
		values.Set(name, value)
	}
	return values, nil
}
