package handlers

import (
	"net/http"
	"strconv"

	"moviedetectives/services"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	tmdb services.MetadataProvider
}

func NewMovieHandler(tmdb services.MetadataProvider) *MovieHandler {
	return &MovieHandler{tmdb: tmdb}
}

func queryInt(c *gin.Context, key string, defaultValue int) int {
	if value := c.Query(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func queryFloat(c *gin.Context, key string, defaultValue float64) float64 {
	if value := c.Query(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func (h *MovieHandler) GetMovies(c *gin.Context) {
	page := queryInt(c, "page", 1)
	voteAvgMin := queryFloat(c, "vote_avg_min", 5.0)
	voteCountMin := queryFloat(c, "vote_count_min", 1000.0)

	movies, err := h.tmdb.GetMovies(c.Request.Context(), page, voteAvgMin, voteCountMin)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, movies)
}

func (h *MovieHandler) GetRandomMovie(c *gin.Context) {
	pageMin := queryInt(c, "page_min", 1)
	pageMax := queryInt(c, "page_max", 3)
	voteAvgMin := queryFloat(c, "vote_avg_min", 5.0)
	voteCountMin := queryFloat(c, "vote_count_min", 1000.0)

	movie, err := h.tmdb.GetRandomMovie(c.Request.Context(), pageMin, pageMax, voteAvgMin, voteCountMin)
	if err != nil {
		if err == services.ErrNoMatch {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, movie)
}
