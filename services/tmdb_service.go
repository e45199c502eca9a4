package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"moviedetectives/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

const tmdbBaseURL = "https://api.themoviedb.org/3"

// defaultImageBaseURL is used when the /configuration lookup fails.
const defaultImageBaseURL = "https://image.tmdb.org/t/p/"

// TmdbService fetches movie metadata from the TMDB v3 API.
type TmdbService struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	posterSizes  map[string]bool
	client       *http.Client
	detailCache  *lru.Cache[int, *models.Movie]
}

func NewTmdbService(apiKey string) *TmdbService {
	cache, _ := lru.New[int, *models.Movie](1024)
	s := &TmdbService{
		apiKey:       apiKey,
		baseURL:      tmdbBaseURL,
		imageBaseURL: defaultImageBaseURL,
		posterSizes:  map[string]bool{},
		client:       &http.Client{Timeout: 15 * time.Second},
		detailCache:  cache,
	}
	s.loadImagesConfig()
	return s
}

type tmdbImagesConfig struct {
	Images struct {
		SecureBaseURL string   `json:"secure_base_url"`
		PosterSizes   []string `json:"poster_sizes"`
	} `json:"images"`
}

// loadImagesConfig resolves the poster base URL once at startup. A failure
// only costs the configured base URL, so it is logged and ignored.
func (s *TmdbService) loadImagesConfig() {
	var cfg tmdbImagesConfig
	if err := s.get(context.Background(), "/configuration", nil, &cfg); err != nil {
		log.Printf("Failed to load TMDB images config, using default base URL: %v", err)
		return
	}
	if cfg.Images.SecureBaseURL != "" {
		s.imageBaseURL = cfg.Images.SecureBaseURL
	}
	for _, size := range cfg.Images.PosterSizes {
		s.posterSizes[size] = true
	}
}

// PosterURL builds a full poster image URL, falling back to the original
// size when the requested one is not offered by TMDB.
func (s *TmdbService) PosterURL(posterPath, size string) string {
	if posterPath == "" {
		return ""
	}
	if !s.posterSizes[size] {
		size = "original"
	}
	return s.imageBaseURL + size + posterPath
}

func (s *TmdbService) get(ctx context.Context, path string, params url.Values, out any) error {
	u := s.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("TMDB request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB returned status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// GetMovies lists one page of the discover endpoint, most popular first.
func (s *TmdbService) GetMovies(ctx context.Context, page int, voteAvgMin, voteCountMin float64) ([]models.MovieSummary, error) {
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("include_video", "false")
	params.Set("language", "en-US")
	params.Set("with_original_language", "en")
	params.Set("vote_average.gte", strconv.FormatFloat(voteAvgMin, 'f', -1, 64))
	params.Set("vote_count.gte", strconv.FormatFloat(voteCountMin, 'f', -1, 64))
	params.Set("page", strconv.Itoa(page))

	var result struct {
		Results []models.MovieSummary `json:"results"`
	}
	if err := s.get(ctx, "/discover/movie", params, &result); err != nil {
		return nil, err
	}

	for i := range result.Results {
		result.Results[i].PosterURL = s.PosterURL(result.Results[i].PosterPath, "original")
	}

	return result.Results, nil
}

// GetMovie fetches full movie details. Details are immutable enough to cache.
func (s *TmdbService) GetMovie(ctx context.Context, movieID int) (*models.Movie, error) {
	if movie, ok := s.detailCache.Get(movieID); ok {
		return movie, nil
	}

	params := url.Values{}
	params.Set("language", "en-US")

	var movie models.Movie
	if err := s.get(ctx, fmt.Sprintf("/movie/%d", movieID), params, &movie); err != nil {
		return nil, err
	}
	movie.PosterURL = s.PosterURL(movie.PosterPath, "original")

	s.detailCache.Add(movieID, &movie)
	return &movie, nil
}

// GetRandomMovie picks a random page in [pageMin, pageMax], a random entry on
// it, and resolves the full details. Returns ErrNoMatch when the filters
// yield nothing.
func (s *TmdbService) GetRandomMovie(ctx context.Context, pageMin, pageMax int, voteAvgMin, voteCountMin float64) (*models.Movie, error) {
	if pageMax < pageMin {
		pageMax = pageMin
	}
	page := pageMin + rand.Intn(pageMax-pageMin+1)

	movies, err := s.GetMovies(ctx, page, voteAvgMin, voteCountMin)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, ErrNoMatch
	}

	return s.GetMovie(ctx, movies[rand.Intn(len(movies))].ID)
}
