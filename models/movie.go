package models

// Genre is a TMDB genre entry as returned by the movie details endpoint.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is a full TMDB movie record from /movie/{id}.
type Movie struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Tagline       string  `json:"tagline"`
	Overview      string  `json:"overview"`
	Genres        []Genre `json:"genres"`
	Budget        int64   `json:"budget"`
	Revenue       int64   `json:"revenue"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	ReleaseDate   string  `json:"release_date"`
	Runtime       int     `json:"runtime"`
	Popularity    float64 `json:"popularity"`
	PosterPath    string  `json:"poster_path"`
	PosterURL     string  `json:"poster_url"`
}

// MovieSummary is a TMDB movie entry from the /discover/movie listing.
type MovieSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	GenreIDs    []int   `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	PosterPath  string  `json:"poster_path"`
	PosterURL   string  `json:"poster_url"`
}

// MovieHint is the subset of movie metadata exposed while a session is still
// open. The title and overview stay server-side because they give the answer
// away in the title-detectives mode.
type MovieHint struct {
	PosterURL   string   `json:"poster_url"`
	VoteAverage float64  `json:"vote_average"`
	VoteCount   int      `json:"vote_count"`
	ReleaseDate string   `json:"release_date"`
	Runtime     int      `json:"runtime"`
	Genres      []string `json:"genres"`
}

// GenreNames flattens the genre list for prompt rendering and hints.
func (m *Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// Hint builds the answer-safe view of a movie.
func (m *Movie) Hint() MovieHint {
	return MovieHint{
		PosterURL:   m.PosterURL,
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
		ReleaseDate: m.ReleaseDate,
		Runtime:     m.Runtime,
		Genres:      m.GenreNames(),
	}
}
