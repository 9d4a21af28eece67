package catalog

// Entry is one row of an OMDb search page.
type Entry struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// SearchResponse is the body of an "s=" query. Response is "True" or "False";
// on "False" the Error field explains why (e.g. "Movie not found!").
type SearchResponse struct {
	Search       []Entry `json:"Search"`
	TotalResults string  `json:"totalResults,omitempty"`
	Response     string  `json:"Response"`
	Error        string  `json:"Error,omitempty"`
}

// Detail is the body of an "i=" query.
type Detail struct {
	ImdbID   string `json:"imdbID"`
	Title    string `json:"Title"`
	Year     string `json:"Year,omitempty"`
	Rated    string `json:"Rated,omitempty"`
	Released string `json:"Released,omitempty"`
	Runtime  string `json:"Runtime,omitempty"`
	Genre    string `json:"Genre,omitempty"`
	Director string `json:"Director,omitempty"`
	Writer   string `json:"Writer,omitempty"`
	Actors   string `json:"Actors,omitempty"`
	Plot     string `json:"Plot,omitempty"`
	Language string `json:"Language,omitempty"`
	Poster   string `json:"Poster,omitempty"`
	Response string `json:"Response,omitempty"`
	Error    string `json:"Error,omitempty"`
}

const responseTrue = "True"

func (r *SearchResponse) OK() bool { return r.Response == responseTrue }

func (d *Detail) OK() bool { return d.Response == responseTrue }

// NotFoundDetail is what a detail page shows when the lookup failed.
func NotFoundDetail(imdbID string) *Detail {
	return &Detail{
		ImdbID: imdbID,
		Title:  "Not found",
		Plot:   "No data available",
	}
}
