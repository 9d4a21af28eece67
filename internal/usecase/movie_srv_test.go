package usecase

import (
	"context"
	"testing"
	"time"

	"movie-review/internal/data/catalog"
	"movie-review/internal/data/entity"
	"movie-review/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discoveryParams(genre string, page string) map[string]string {
	return map[string]string{"s": genre, "type": "movie", "page": page}
}

func TestBuildMovieList_SearchModeWins(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("Search", mock.Anything, map[string]string{"s": "heat", "page": "2"}).
		Return(found(entry("tt1", "Heat")), true).Once()

	svc := newTestMovieService(t, newMemStore(), cat, &seqRand{})
	movies := svc.BuildMovieList(context.Background(), request.MovieListQuery{
		Query:    "heat",
		TopRated: true,
		Genre:    "Comedy",
		Page:     2,
	}, nil)

	require.Len(t, movies, 1)
	assert.Equal(t, "tt1", movies[0].ImdbID)
	cat.AssertExpectations(t)
}

func TestBuildMovieList_TopRatedThenGenre(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("Search", mock.Anything, map[string]string{"s": "top rated", "page": "1"}).
		Return(found(entry("tt2", "Top")), true).Once()
	cat.On("Search", mock.Anything, map[string]string{"s": "Comedy", "page": "3"}).
		Return(found(entry("tt3", "Funny")), true).Once()

	svc := newTestMovieService(t, newMemStore(), cat, &seqRand{})

	top := svc.BuildMovieList(context.Background(), request.MovieListQuery{TopRated: true, Genre: "Comedy"}, nil)
	require.Len(t, top, 1)
	assert.Equal(t, "tt2", top[0].ImdbID)

	genre := svc.BuildMovieList(context.Background(), request.MovieListQuery{Genre: "Comedy", Page: 3}, nil)
	require.Len(t, genre, 1)
	assert.Equal(t, "tt3", genre[0].ImdbID)

	cat.AssertExpectations(t)
}

func TestBuildMovieList_DedupeKeepsFirstPositionLastValue(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("Search", mock.Anything, mock.Anything).Return(found(
		entry("tt1", "first"),
		entry("tt2", "other"),
		entry("tt1", "second"),
		entry("tt3", "third"),
		entry("tt2", "other again"),
	), true)

	svc := newTestMovieService(t, newMemStore(), cat, &seqRand{})
	movies := svc.BuildMovieList(context.Background(), request.MovieListQuery{Query: "x"}, nil)

	require.Len(t, movies, 3)
	assert.Equal(t, "tt1", movies[0].ImdbID)
	assert.Equal(t, "second", movies[0].Title)
	assert.Equal(t, "tt2", movies[1].ImdbID)
	assert.Equal(t, "other again", movies[1].Title)
	assert.Equal(t, "tt3", movies[2].ImdbID)
}

func TestBuildMovieList_DiscoveryDedupesAcrossGenres(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("Search", mock.Anything, mock.Anything).Return(found(entry("tt9", "Everywhere")), true)

	svc := newTestMovieService(t, newMemStore(), cat, &seqRand{})
	movies := svc.BuildMovieList(context.Background(), request.MovieListQuery{}, nil)

	require.Len(t, movies, 1)
	assert.Equal(t, "tt9", movies[0].ImdbID)
	cat.AssertNumberOfCalls(t, "Search", len(sixGenres))
}

func TestBuildMovieList_StatsRestrictedToBatch(t *testing.T) {
	store := newMemStore()
	author := uuid.New()
	store.addReview(author, "tt1", 7)
	store.addReview(author, "tt1", 8)
	store.addReview(author, "tt1", 8)
	store.addReview(author, "tt4", 2)

	cat := new(mockCatalog)
	cat.On("Search", mock.Anything, mock.Anything).Return(found(entry("tt1", "a"), entry("tt2", "b")), true)

	svc := newTestMovieService(t, store, cat, &seqRand{})
	movies := svc.BuildMovieList(context.Background(), request.MovieListQuery{Query: "x"}, nil)

	require.Len(t, movies, 2)
	assert.Equal(t, int64(3), movies[0].ReviewCount)
	assert.Equal(t, 7.7, movies[0].AverageRating)
	assert.Equal(t, int64(0), movies[1].ReviewCount)
	assert.Equal(t, 0.0, movies[1].AverageRating)
}

func TestBuildMovieList_AnonymousHasNoViewerFlags(t *testing.T) {
	store := newMemStore()
	someone := uuid.New()
	store.addReview(someone, "tt1", 9)
	_, err := memFavorites{store}.Toggle(context.Background(), &entity.Favorite{UserID: someone, MovieID: "tt1"})
	require.NoError(t, err)

	cat := new(mockCatalog)
	cat.On("Search", mock.Anything, mock.Anything).Return(found(entry("tt1", "a")), true)

	svc := newTestMovieService(t, store, cat, &seqRand{})
	movies := svc.BuildMovieList(context.Background(), request.MovieListQuery{Query: "x"}, nil)

	require.Len(t, movies, 1)
	assert.False(t, movies[0].IsFavorite)
	assert.False(t, movies[0].UserHasReviewed)
	assert.Equal(t, int64(1), movies[0].ReviewCount)
	assert.Zero(t, store.viewerQueries)
}

func TestBuildMovieList_ViewerFlags(t *testing.T) {
	store := newMemStore()
	viewer := uuid.New()
	store.addReview(viewer, "tt1", 6)
	_, err := memFavorites{store}.Toggle(context.Background(), &entity.Favorite{UserID: viewer, MovieID: "tt2"})
	require.NoError(t, err)
	_, err = memFavorites{store}.Toggle(context.Background(), &entity.Favorite{UserID: uuid.New(), MovieID: "tt1"})
	require.NoError(t, err)

	cat := new(mockCatalog)
	cat.On("Search", mock.Anything, mock.Anything).Return(found(entry("tt1", "a"), entry("tt2", "b")), true)

	svc := newTestMovieService(t, store, cat, &seqRand{})
	movies := svc.BuildMovieList(context.Background(), request.MovieListQuery{Query: "x"}, &viewer)

	require.Len(t, movies, 2)
	assert.True(t, movies[0].UserHasReviewed)
	assert.False(t, movies[0].IsFavorite)
	assert.False(t, movies[1].UserHasReviewed)
	assert.True(t, movies[1].IsFavorite)
	assert.Equal(t, 2, store.viewerQueries)
}

func TestBuildMovieList_StatsFailureDegradesToZero(t *testing.T) {
	store := newMemStore()
	store.addReview(uuid.New(), "tt1", 9)
	store.failStats = true

	cat := new(mockCatalog)
	cat.On("Search", mock.Anything, mock.Anything).Return(found(entry("tt1", "a")), true)

	svc := newTestMovieService(t, store, cat, &seqRand{})
	movies := svc.BuildMovieList(context.Background(), request.MovieListQuery{Query: "x"}, nil)

	require.Len(t, movies, 1)
	assert.Zero(t, movies[0].ReviewCount)
	assert.Zero(t, movies[0].AverageRating)
}

func TestBuildMovieList_DiscoveryAllGenresFail(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("Search", mock.Anything, mock.Anything).Return(nil, false)

	svc := newTestMovieService(t, newMemStore(), cat, &seqRand{})

	movies := svc.BuildMovieList(context.Background(), request.MovieListQuery{}, nil)

	assert.NotNil(t, movies)
	assert.Empty(t, movies)
	cat.AssertNumberOfCalls(t, "Search", len(sixGenres))
}

func TestBuildMovieList_DiscoveryFourOfSixGenres(t *testing.T) {
	cat := new(mockCatalog)
	// draws: pages 3,1,5,2,4,1 then picks
	rnd := &seqRand{draws: []int{2, 0, 4, 1, 3, 0, 1, 0, 1, 0}}

	cat.On("Search", mock.Anything, discoveryParams("Romance", "3")).
		Return(found(entry("tt10", "Love"), entry("tt11", "Love 2")), true)
	cat.On("Search", mock.Anything, discoveryParams("Comedy", "1")).
		Return(nil, false)
	cat.On("Search", mock.Anything, discoveryParams("Action", "5")).
		Return(found(entry("tt20", "Boom")), true)
	cat.On("Search", mock.Anything, discoveryParams("Horror", "2")).
		Return(&catalog.SearchResponse{Response: "False", Error: "Movie not found!"}, true)
	cat.On("Search", mock.Anything, discoveryParams("Animation", "4")).
		Return(found(entry("tt30", "Toon"), entry("tt31", "Toon 2")), true)
	cat.On("Search", mock.Anything, discoveryParams("Sci-Fi", "1")).
		Return(found(entry("tt40", "Space")), true)

	svc := newTestMovieService(t, newMemStore(), cat, rnd)
	movies := svc.BuildMovieList(context.Background(), request.MovieListQuery{}, nil)

	require.Len(t, movies, 4)
	ids := []string{movies[0].ImdbID, movies[1].ImdbID, movies[2].ImdbID, movies[3].ImdbID}
	assert.Equal(t, []string{"tt11", "tt20", "tt31", "tt40"}, ids)
	for _, m := range movies {
		assert.Zero(t, m.AverageRating)
		assert.Zero(t, m.ReviewCount)
		assert.False(t, m.IsFavorite)
		assert.False(t, m.UserHasReviewed)
	}

	// six page draws bounded by the max page, then one pick per non-empty page
	assert.Equal(t, []int{5, 5, 5, 5, 5, 5, 2, 1, 2, 1}, rnd.bounds)
	cat.AssertExpectations(t)
}

func TestListMovies_CarriesGenresAndPage(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("Search", mock.Anything, mock.Anything).Return(nil, false)

	svc := newTestMovieService(t, newMemStore(), cat, &seqRand{})
	resp := svc.ListMovies(context.Background(), request.MovieListQuery{Genre: "Horror", Page: 0}, nil)

	assert.Equal(t, sixGenres, resp.Genres)
	assert.Equal(t, "Horror", resp.CurrentGenre)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Empty(t, resp.Movies)
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 7.7, roundRating(23.0/3.0))
	assert.Equal(t, 5.0, roundRating(5))
	assert.Equal(t, 8.5, roundRating(8.45000001))
	assert.Equal(t, 0.0, roundRating(0))
}

func TestGetMovieDetail_FoundMaterializesMovie(t *testing.T) {
	store := newMemStore()
	author := uuid.New()
	store.users[author] = &entity.User{Base: entity.Base{ID: author}, Username: "critic"}

	older := &entity.Review{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().Add(-time.Hour)}, UserID: author, Rating: 4}
	newer := &entity.Review{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()}, UserID: author, Rating: 9}
	id := "tt1"
	older.MovieID, newer.MovieID = &id, &id
	store.reviews = append(store.reviews, older, newer)

	cat := new(mockCatalog)
	cat.On("Lookup", mock.Anything, "tt1").
		Return(&catalog.Detail{ImdbID: "tt1", Title: "Heat", Plot: "Long plot", Response: "True"}, true)

	svc := newTestMovieService(t, store, cat, &seqRand{})
	resp, err := svc.GetMovieDetail(context.Background(), "tt1", nil)

	require.NoError(t, err)
	assert.Empty(t, resp.ErrorMessage)
	assert.Equal(t, "Heat", resp.Movie.Title)
	assert.Equal(t, 6.5, resp.Movie.AverageRating)
	assert.Equal(t, int64(2), resp.Movie.ReviewCount)
	require.Len(t, resp.Reviews, 2)
	assert.Equal(t, 9, resp.Reviews[0].Rating)
	assert.Equal(t, "critic", resp.Reviews[0].Username)

	require.Contains(t, store.movies, "tt1")
	assert.Equal(t, "Heat", store.movies["tt1"].Title)
}

func TestGetMovieDetail_KeepsStoredTitle(t *testing.T) {
	store := newMemStore()
	store.movies["tt1"] = &entity.Movie{ImdbID: "tt1", Title: "Old title"}

	cat := new(mockCatalog)
	cat.On("Lookup", mock.Anything, "tt1").
		Return(&catalog.Detail{ImdbID: "tt1", Title: "New title", Response: "True"}, true)

	svc := newTestMovieService(t, store, cat, &seqRand{})
	resp, err := svc.GetMovieDetail(context.Background(), "tt1", nil)

	require.NoError(t, err)
	assert.Equal(t, "Old title", store.movies["tt1"].Title)
	assert.Equal(t, "New title", resp.Movie.Title)
	assert.Equal(t, "Old title", resp.StoredTitle)
}

func TestGetMovieDetail_OutageKeepsKnownMovie(t *testing.T) {
	store := newMemStore()
	store.movies["tt1"] = &entity.Movie{ImdbID: "tt1", Title: "Heat"}
	store.addReview(uuid.New(), "tt1", 8)

	cat := new(mockCatalog)
	cat.On("Lookup", mock.Anything, "tt1").Return(nil, false)

	svc := newTestMovieService(t, store, cat, &seqRand{})
	resp, err := svc.GetMovieDetail(context.Background(), "tt1", nil)

	require.NoError(t, err)
	assert.Equal(t, MovieUnavailableMessage, resp.ErrorMessage)
	assert.Equal(t, "Not found", resp.Movie.Title)
	assert.Equal(t, "Heat", resp.StoredTitle)
	assert.Len(t, resp.Reviews, 1)
	assert.Equal(t, int64(1), resp.Movie.ReviewCount)
}

func TestGetMovieDetail_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		detail *catalog.Detail
		ok     bool
	}{
		{name: "catalog unavailable", detail: nil, ok: false},
		{name: "unknown id", detail: &catalog.Detail{Response: "False", Error: "Incorrect IMDb ID."}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			cat := new(mockCatalog)
			cat.On("Lookup", mock.Anything, "tt404").Return(tt.detail, tt.ok)

			svc := newTestMovieService(t, store, cat, &seqRand{})
			resp, err := svc.GetMovieDetail(context.Background(), "tt404", nil)

			require.NoError(t, err)
			assert.Equal(t, MovieUnavailableMessage, resp.ErrorMessage)
			assert.Equal(t, "tt404", resp.Movie.ImdbID)
			assert.Equal(t, "Not found", resp.Movie.Title)
			assert.Equal(t, "No data available", resp.Movie.Plot)
			assert.Empty(t, resp.Reviews)
			assert.Empty(t, resp.StoredTitle)
			assert.Empty(t, store.movies)
		})
	}
}
