package moviesdb

// Endpoint identifies one documented endpoint family.
type Endpoint string

// Documented endpoint families.
const (
	EndpointTitles         Endpoint = "titles"
	EndpointTitleByID      Endpoint = "title_by_id"
	EndpointRatings        Endpoint = "ratings"
	EndpointUpcoming       Endpoint = "upcoming"
	EndpointSeriesEpisodes Endpoint = "series_episodes"
	EndpointSeasons        Endpoint = "seasons"
	EndpointSeasonEpisodes Endpoint = "season_episodes"
	EndpointEpisodeByID    Endpoint = "episode_by_id"
	EndpointSearchKeyword  Endpoint = "search_keyword"
	EndpointSearchTitle    Endpoint = "search_title"
	EndpointSearchAKA      Endpoint = "search_aka"
	EndpointActors         Endpoint = "actors"
	EndpointActorByID      Endpoint = "actor_by_id"
	EndpointTitleTypes     Endpoint = "title_types"
	EndpointGenres         Endpoint = "genres"
	EndpointLists          Endpoint = "lists"
)

// descriptor is the immutable contract of one endpoint: path template,
// pagination behavior and the allowed query parameter set. All documented
// endpoints are HTTPS GET.
type descriptor struct {
	// path is a fmt template; one %s per path parameter.
	path      string
	paginated bool
	// params names every query parameter the endpoint accepts. Values are
	// checked against their domain in params.go.
	params []string
}

func (d descriptor) allows(name string) bool {
	for _, p := range d.params {
		if p == name {
			return true
		}
	}
	return false
}

var listParams = []string{"limit", "page", "info", "sort"}

// endpoints is the static catalog. This table is the single place where the
// path and parameter contracts can drift from the upstream documentation.
var endpoints = map[Endpoint]descriptor{
	EndpointTitles: {
		path:      "/titles",
		paginated: true,
		params: append([]string{
			"genre", "titleType", "year", "startYear", "endYear", "list",
		}, listParams...),
	},
	EndpointTitleByID: {
		path:   "/titles/%s",
		params: []string{"info"},
	},
	EndpointRatings: {
		path: "/titles/%s/ratings",
	},
	EndpointUpcoming: {
		path:      "/titles/x/upcoming",
		paginated: true,
		params: append([]string{
			"genre", "titleType", "year", "startYear", "endYear",
		}, listParams...),
	},
	EndpointSeriesEpisodes: {
		path:      "/titles/series/%s",
		paginated: true,
		params:    []string{"limit", "page", "sort"},
	},
	EndpointSeasons: {
		path: "/titles/seasons/%s",
	},
	EndpointSeasonEpisodes: {
		path:      "/titles/series/%s/%d",
		paginated: true,
		params:    []string{"limit", "page", "sort"},
	},
	EndpointEpisodeByID: {
		path:   "/titles/episode/%s",
		params: []string{"info"},
	},
	EndpointSearchKeyword: {
		path:      "/titles/search/keyword/%s",
		paginated: true,
		params: append([]string{
			"genre", "titleType", "year", "startYear", "endYear",
		}, listParams...),
	},
	EndpointSearchTitle: {
		path:      "/titles/search/title/%s",
		paginated: true,
		params: append([]string{
			"exact", "genre", "titleType", "year", "startYear", "endYear",
		}, listParams...),
	},
	EndpointSearchAKA: {
		path:      "/titles/x/akas/%s",
		paginated: true,
		params:    listParams,
	},
	EndpointActors: {
		path:      "/actors",
		paginated: true,
		params:    []string{"limit", "page"},
	},
	EndpointActorByID: {
		path: "/actors/%s",
	},
	EndpointTitleTypes: {
		path: "/title/utils/titleType",
	},
	EndpointGenres: {
		path: "/title/utils/genres",
	},
	EndpointLists: {
		path: "/title/utils/lists",
	},
}
