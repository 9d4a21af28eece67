package usecase

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"movie-review/internal/data/catalog"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	topRatedQuery = "top rated"

	MovieUnavailableMessage = "Movie not found or catalog service unavailable"
)

// CatalogClient is the part of the external catalog the services use.
type CatalogClient interface {
	Search(ctx context.Context, params map[string]string) (*catalog.SearchResponse, bool)
	Lookup(ctx context.Context, imdbID string) (*catalog.Detail, bool)
}

// Randomizer draws discovery pages and picks. Implementations must be safe
// for concurrent use.
type Randomizer interface {
	Intn(n int) int
}

type defaultRandomizer struct{}

func (defaultRandomizer) Intn(n int) int { return rand.IntN(n) }

func DefaultRandomizer() Randomizer { return defaultRandomizer{} }

type MovieService interface {
	ListMovies(ctx context.Context, query request.MovieListQuery, viewer *uuid.UUID) *response.MovieListResponse
	BuildMovieList(ctx context.Context, query request.MovieListQuery, viewer *uuid.UUID) []response.EnrichedMovie
	GetMovieDetail(ctx context.Context, imdbID string, viewer *uuid.UUID) (*response.MovieDetailResponse, error)
}

type movieService struct {
	repo      *repository.Repository
	catalog   CatalogClient
	rand      Randomizer
	discovery utils.DiscoveryConfig
	log       *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	catalog CatalogClient,
	rand Randomizer,
	discovery utils.DiscoveryConfig,
	log *zap.Logger,
) MovieService {
	if rand == nil {
		rand = DefaultRandomizer()
	}
	if len(discovery.Genres) == 0 {
		discovery = utils.DefaultDiscoveryConfig()
	}
	return &movieService{
		repo:      repo,
		catalog:   catalog,
		rand:      rand,
		discovery: discovery,
		log:       log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) ListMovies(ctx context.Context, query request.MovieListQuery, viewer *uuid.UUID) *response.MovieListResponse {
	page := query.Page
	if page < 1 {
		page = 1
	}

	return &response.MovieListResponse{
		Movies:       s.BuildMovieList(ctx, query, viewer),
		Genres:       s.discovery.Genres,
		CurrentGenre: query.Genre,
		CurrentPage:  page,
	}
}

// BuildMovieList never fails: catalog outages shrink the list and a broken
// stats query leaves the local fields at their zero values.
func (s *movieService) BuildMovieList(ctx context.Context, query request.MovieListQuery, viewer *uuid.UUID) []response.EnrichedMovie {
	page := query.Page
	if page < 1 {
		page = 1
	}

	var entries []catalog.Entry
	switch {
	case strings.TrimSpace(query.Query) != "":
		entries = s.search(ctx, map[string]string{"s": strings.TrimSpace(query.Query), "page": strconv.Itoa(page)})
	case query.TopRated:
		entries = s.search(ctx, map[string]string{"s": topRatedQuery, "page": strconv.Itoa(page)})
	case strings.TrimSpace(query.Genre) != "":
		entries = s.search(ctx, map[string]string{"s": strings.TrimSpace(query.Genre), "page": strconv.Itoa(page)})
	default:
		entries = s.discover(ctx)
	}

	entries = dedupe(entries)

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ImdbID
	}
	stats := s.statsFor(ctx, ids, viewer)

	movies := make([]response.EnrichedMovie, len(entries))
	for i, e := range entries {
		movies[i] = response.EntryToEnriched(e, stats[e.ImdbID])
	}

	s.log.Debug("Movie list built",
		zap.String("query", query.Query),
		zap.Bool("top_rated", query.TopRated),
		zap.String("genre", query.Genre),
		zap.Int("page", page),
		zap.Int("count", len(movies)),
	)

	return movies
}

// discover draws one random page per genre, fetches them concurrently, and
// keeps one random entry from every non-empty page. Draws happen on the
// calling goroutine in genre order.
func (s *movieService) discover(ctx context.Context) []catalog.Entry {
	genres := s.discovery.Genres

	maxPage := s.discovery.MaxPage
	if maxPage < 1 {
		maxPage = 1
	}

	pages := make([]int, len(genres))
	for i := range genres {
		pages[i] = s.rand.Intn(maxPage) + 1
	}

	results := make([][]catalog.Entry, len(genres))

	var g errgroup.Group
	if s.discovery.Concurrency > 0 {
		g.SetLimit(s.discovery.Concurrency)
	}
	for i, genre := range genres {
		g.Go(func() error {
			results[i] = s.search(ctx, map[string]string{
				"s":    genre,
				"type": "movie",
				"page": strconv.Itoa(pages[i]),
			})
			return nil
		})
	}
	_ = g.Wait()

	picked := make([]catalog.Entry, 0, len(genres))
	for i, entries := range results {
		if len(entries) == 0 {
			s.log.Debug("Discovery genre yielded nothing",
				zap.String("genre", genres[i]),
				zap.Int("page", pages[i]),
			)
			continue
		}
		picked = append(picked, entries[s.rand.Intn(len(entries))])
	}

	return picked
}

// search returns the entries of a successful search and nil otherwise.
func (s *movieService) search(ctx context.Context, params map[string]string) []catalog.Entry {
	resp, ok := s.catalog.Search(ctx, params)
	if !ok || resp == nil || !resp.OK() {
		return nil
	}
	return resp.Search
}

// dedupe keeps the first position of every imdb id and the last value seen for it.
func dedupe(entries []catalog.Entry) []catalog.Entry {
	index := make(map[string]int, len(entries))
	out := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if i, ok := index[e.ImdbID]; ok {
			out[i] = e
			continue
		}
		index[e.ImdbID] = len(out)
		out = append(out, e)
	}
	return out
}

func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// statsFor runs the batch enrichment queries for ids. The viewer queries are
// skipped for anonymous requests.
func (s *movieService) statsFor(ctx context.Context, ids []string, viewer *uuid.UUID) map[string]response.MovieStats {
	out := make(map[string]response.MovieStats, len(ids))
	if len(ids) == 0 {
		return out
	}

	reviewStats, err := s.repo.Review.GetStatsByMovieIDs(ctx, ids)
	if err != nil {
		s.log.Warn("Review stats unavailable, using zero values", zap.Error(err))
	}

	var reviewed, favorited map[string]struct{}
	if viewer != nil {
		reviewed, err = s.repo.Review.FindReviewedMovieIDs(ctx, *viewer, ids)
		if err != nil {
			s.log.Warn("Reviewed set unavailable", zap.Error(err), zap.String("user_id", viewer.String()))
		}

		favorited, err = s.repo.Favorite.FindFavoritedMovieIDs(ctx, *viewer, ids)
		if err != nil {
			s.log.Warn("Favorite set unavailable", zap.Error(err), zap.String("user_id", viewer.String()))
		}
	}

	for _, id := range ids {
		var st response.MovieStats
		if rs, ok := reviewStats[id]; ok {
			st.AverageRating = roundRating(rs.AverageRating)
			st.ReviewCount = rs.ReviewCount
		}
		_, st.UserHasReviewed = reviewed[id]
		_, st.IsFavorite = favorited[id]
		out[id] = st
	}

	return out
}

func (s *movieService) GetMovieDetail(ctx context.Context, imdbID string, viewer *uuid.UUID) (*response.MovieDetailResponse, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, fmt.Errorf("movie id is empty: %w", ErrValidation)
	}

	resp := &response.MovieDetailResponse{}

	detail, ok := s.catalog.Lookup(ctx, imdbID)
	if !ok || detail == nil || !detail.OK() {
		s.log.Warn("Catalog lookup failed", zap.String("imdb_id", imdbID))
		detail = catalog.NotFoundDetail(imdbID)
		resp.ErrorMessage = MovieUnavailableMessage

		movie, err := s.repo.Movie.FindByID(ctx, imdbID)
		if err != nil {
			s.log.Warn("Stored movie unavailable", zap.Error(err), zap.String("imdb_id", imdbID))
		} else if movie != nil {
			resp.StoredTitle = movie.Title
		}
	} else {
		movie, _, err := s.repo.Movie.GetOrCreate(ctx, imdbID, detail.Title)
		if err != nil {
			return nil, fmt.Errorf("materialize movie %s: %w", imdbID, err)
		}
		resp.StoredTitle = movie.Title
	}

	reviews, err := s.reviewsFor(ctx, imdbID)
	if err != nil {
		return nil, err
	}

	resp.Movie = response.MovieDetail{
		Detail:     detail,
		MovieStats: s.statsFor(ctx, []string{imdbID}, viewer)[imdbID],
	}
	resp.Reviews = reviews

	return resp, nil
}

// reviewsFor lists the reviews of a movie newest-first with author names.
func (s *movieService) reviewsFor(ctx context.Context, imdbID string) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByMovieID(ctx, imdbID)
	if err != nil {
		s.log.Error("Failed to get movie reviews", zap.Error(err), zap.String("imdb_id", imdbID))
		return nil, fmt.Errorf("get reviews of movie %s: %w", imdbID, err)
	}

	names := make(map[uuid.UUID]string)
	out := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		name, seen := names[review.UserID]
		if !seen {
			if user, err := s.repo.User.FindByID(ctx, review.UserID); err == nil && user != nil {
				name = user.Username
			}
			names[review.UserID] = name
		}
		out[i] = response.ReviewToResponse(review, name)
	}

	return out, nil
}
