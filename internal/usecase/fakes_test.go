package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"movie-review/internal/data/catalog"
	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var errStore = errors.New("store unavailable")

// mockCatalog is a testify mock of the catalog client.
type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Search(ctx context.Context, params map[string]string) (*catalog.SearchResponse, bool) {
	args := m.Called(ctx, params)
	resp, _ := args.Get(0).(*catalog.SearchResponse)
	return resp, args.Bool(1)
}

func (m *mockCatalog) Lookup(ctx context.Context, imdbID string) (*catalog.Detail, bool) {
	args := m.Called(ctx, imdbID)
	detail, _ := args.Get(0).(*catalog.Detail)
	return detail, args.Bool(1)
}

func found(entries ...catalog.Entry) *catalog.SearchResponse {
	return &catalog.SearchResponse{Search: entries, Response: "True"}
}

func entry(id, title string) catalog.Entry {
	return catalog.Entry{ImdbID: id, Title: title, Year: "2000", Type: "movie", Poster: "N/A"}
}

// seqRand replays draws in order, each reduced modulo n, and records every n.
type seqRand struct {
	mu     sync.Mutex
	draws  []int
	next   int
	bounds []int
}

func (r *seqRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bounds = append(r.bounds, n)
	v := 0
	if r.next < len(r.draws) {
		v = r.draws[r.next]
	}
	r.next++
	return v % n
}

// memStore backs every repository interface with maps.
type memStore struct {
	mu        sync.Mutex
	movies    map[string]*entity.Movie
	reviews   []*entity.Review
	favorites []*entity.Favorite
	users     map[uuid.UUID]*entity.User
	sessions  map[string]*entity.Session

	failStats     bool
	viewerQueries int
}

func newMemStore() *memStore {
	return &memStore{
		movies:   make(map[string]*entity.Movie),
		users:    make(map[uuid.UUID]*entity.User),
		sessions: make(map[string]*entity.Session),
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:     memUsers{s},
		Session:  memSessions{s},
		Movie:    memMovies{s},
		Review:   memReviews{s},
		Favorite: memFavorites{s},
	}
}

func (s *memStore) addReview(userID uuid.UUID, movieID string, rating int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := movieID
	s.reviews = append(s.reviews, &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		UserID:     userID,
		MovieID:    &id,
		Rating:     rating,
		Content:    "text",
	})
}

func (s *memStore) reviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews)
}

func (s *memStore) favoriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.favorites)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type memMovies struct{ s *memStore }

func (m memMovies) GetOrCreate(ctx context.Context, imdbID, title string) (*entity.Movie, bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if movie, ok := m.s.movies[imdbID]; ok {
		return movie, false, nil
	}
	movie := &entity.Movie{ImdbID: imdbID, Title: title}
	m.s.movies[imdbID] = movie
	return movie, true, nil
}

func (m memMovies) FindByID(ctx context.Context, imdbID string) (*entity.Movie, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.movies[imdbID], nil
}

type memReviews struct{ s *memStore }

func (m memReviews) Create(ctx context.Context, review *entity.Review) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.reviews = append(m.s.reviews, review)
	return nil
}

func (m memReviews) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, r := range m.s.reviews {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memReviews) FindByMovieID(ctx context.Context, movieID string) ([]*entity.Review, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*entity.Review
	for _, r := range m.s.reviews {
		if r.MovieID != nil && *r.MovieID == movieID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m memReviews) FindAll(ctx context.Context, limit, offset int) ([]*entity.Review, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if offset >= len(m.s.reviews) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.s.reviews) {
		end = len(m.s.reviews)
	}
	return m.s.reviews[offset:end], nil
}

func (m memReviews) CountAll(ctx context.Context) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.s.reviews)), nil
}

func (m memReviews) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for _, r := range m.s.reviews {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m memReviews) Update(ctx context.Context, review *entity.Review) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, r := range m.s.reviews {
		if r.ID == review.ID {
			cp := *review
			m.s.reviews[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m memReviews) Delete(ctx context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, r := range m.s.reviews {
		if r.ID == id {
			m.s.reviews = append(m.s.reviews[:i], m.s.reviews[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m memReviews) GetStatsByMovieIDs(ctx context.Context, movieIDs []string) (map[string]entity.ReviewStats, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failStats {
		return nil, errStore
	}
	sums := make(map[string]int)
	stats := make(map[string]entity.ReviewStats)
	for _, r := range m.s.reviews {
		if r.MovieID == nil || !contains(movieIDs, *r.MovieID) {
			continue
		}
		st := stats[*r.MovieID]
		st.MovieID = *r.MovieID
		st.ReviewCount++
		sums[*r.MovieID] += r.Rating
		st.AverageRating = float64(sums[*r.MovieID]) / float64(st.ReviewCount)
		stats[*r.MovieID] = st
	}
	return stats, nil
}

func (m memReviews) FindReviewedMovieIDs(ctx context.Context, userID uuid.UUID, movieIDs []string) (map[string]struct{}, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.viewerQueries++
	set := make(map[string]struct{})
	for _, r := range m.s.reviews {
		if r.UserID == userID && r.MovieID != nil && contains(movieIDs, *r.MovieID) {
			set[*r.MovieID] = struct{}{}
		}
	}
	return set, nil
}

type memFavorites struct{ s *memStore }

func (m memFavorites) Toggle(ctx context.Context, favorite *entity.Favorite) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, f := range m.s.favorites {
		if f.UserID == favorite.UserID && f.MovieID == favorite.MovieID {
			m.s.favorites = append(m.s.favorites[:i], m.s.favorites[i+1:]...)
			return false, nil
		}
	}
	m.s.favorites = append(m.s.favorites, favorite)
	return true, nil
}

func (m memFavorites) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*entity.Favorite
	for i := len(m.s.favorites) - 1; i >= 0; i-- {
		if m.s.favorites[i].UserID == userID {
			out = append(out, m.s.favorites[i])
		}
	}
	return out, nil
}

func (m memFavorites) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for _, f := range m.s.favorites {
		if f.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m memFavorites) FindFavoritedMovieIDs(ctx context.Context, userID uuid.UUID, movieIDs []string) (map[string]struct{}, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.viewerQueries++
	set := make(map[string]struct{})
	for _, f := range m.s.favorites {
		if f.UserID == userID && contains(movieIDs, f.MovieID) {
			set[f.MovieID] = struct{}{}
		}
	}
	return set, nil
}

type memUsers struct{ s *memStore }

func (m memUsers) Create(ctx context.Context, user *entity.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.users[user.ID] = user
	return nil
}

func (m memUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.users[id], nil
}

func (m memUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m memUsers) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

type memSessions struct{ s *memStore }

func (m memSessions) Create(ctx context.Context, session *entity.Session) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.sessions[session.Token.String()] = session
	return nil
}

func (m memSessions) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	session, ok := m.s.sessions[token]
	if !ok || session.RevokedAt != nil {
		return nil, nil
	}
	return session, nil
}

func (m memSessions) Revoke(ctx context.Context, token string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	session, ok := m.s.sessions[token]
	if !ok || session.RevokedAt != nil {
		return errStore
	}
	now := session.CreatedAt
	session.RevokedAt = &now
	return nil
}

var sixGenres = []string{"Romance", "Comedy", "Action", "Horror", "Animation", "Sci-Fi"}

func newTestMovieService(t *testing.T, store *memStore, cat CatalogClient, rnd Randomizer) MovieService {
	t.Helper()
	return NewMovieService(store.repository(), cat, rnd, utils.DiscoveryConfig{
		Genres:      sixGenres,
		MaxPage:     5,
		Concurrency: 3,
	}, zap.NewNop())
}

// vanishingReviews finds reviews but loses every write, like a row deleted
// between the read and the write.
type vanishingReviews struct{ memReviews }

func (vanishingReviews) Update(ctx context.Context, review *entity.Review) error {
	return fmt.Errorf("update review %s: %w", review.ID, repository.ErrNotFound)
}

func (vanishingReviews) Delete(ctx context.Context, id uuid.UUID) error {
	return fmt.Errorf("delete review %s: %w", id, repository.ErrNotFound)
}
