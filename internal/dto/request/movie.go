package request

// MovieListQuery carries the list filters. At most one mode applies, checked
// in the order Query, TopRated, Genre; none of them means discovery.
type MovieListQuery struct {
	Query    string
	TopRated bool
	Genre    string
	Page     int
}
