// Package api serves the match history over HTTP.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/fast-bird/internal/games/fastbird"
	"github.com/vovakirdan/fast-bird/internal/storage"
)

// DateLayout is the day format shown next to each result.
const DateLayout = "02.01.2006"

// maxLimit caps the number of results one request can ask for.
const maxLimit = 500

// ResultSource is the read side of the results store.
type ResultSource interface {
	Results(limit int) ([]storage.Result, error)
	Stats() (storage.Stats, error)
	StatsByLevel() (map[int]storage.Stats, error)
}

// ResultJSON is the wire form of one match result.
type ResultJSON struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	LevelName string    `json:"level_name"`
	Won       bool      `json:"won"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// StatsJSON is the wire form of an aggregate.
type StatsJSON struct {
	GamesCount   int        `json:"games_count"`
	Wins         int        `json:"wins"`
	HighScore    int        `json:"high_score"`
	WinRate      int        `json:"win_rate"`
	AverageScore int        `json:"average_score"`
	LastPlayed   *time.Time `json:"last_played,omitempty"`
}

// LevelJSON describes a selectable level.
type LevelJSON struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Lives         int    `json:"lives"`
	ScorePerDodge int    `json:"score_per_dodge"`
	DurationSecs  int    `json:"duration_secs"`
}

// NewRouter builds the HTTP API. Requests are logged through logger.
func NewRouter(src ResultSource, logger *log.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api")
	v1.GET("/results", ListResults(src, logger))
	v1.GET("/stats", GetStats(src, logger))
	v1.GET("/levels", ListLevels())

	return router
}

// ListResults returns the most recent results, newest first.
// The optional limit query parameter defaults to 50.
func ListResults(src ResultSource, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit <= 0 || limit > maxLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}

		results, err := src.Results(limit)
		if err != nil {
			logger.Error("Listing results failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load results"})
			return
		}

		out := make([]ResultJSON, 0, len(results))
		for _, r := range results {
			out = append(out, ResultJSON{
				ID:        r.ID,
				Score:     r.Score,
				Level:     r.Level,
				LevelName: fastbird.LevelName(r.Level),
				Won:       r.Won,
				Date:      r.CreatedAt.Format(DateLayout),
				CreatedAt: r.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"results": out})
	}
}

// GetStats returns the overall aggregates and one entry per played level.
func GetStats(src ResultSource, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := src.Stats()
		if err != nil {
			logger.Error("Loading stats failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
			return
		}
		byLevel, err := src.StatsByLevel()
		if err != nil {
			logger.Error("Loading level stats failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
			return
		}

		levels := make(map[string]StatsJSON, len(byLevel))
		for level, st := range byLevel {
			levels[strconv.Itoa(level)] = toStatsJSON(st)
		}
		c.JSON(http.StatusOK, gin.H{
			"overall": toStatsJSON(total),
			"levels":  levels,
		})
	}
}

// ListLevels returns the level table.
func ListLevels() gin.HandlerFunc {
	return func(c *gin.Context) {
		out := make([]LevelJSON, 0, len(fastbird.Levels))
		for _, l := range fastbird.Levels {
			out = append(out, LevelJSON{
				ID:            l.ID,
				Name:          l.Name,
				Lives:         l.Config.Lives,
				ScorePerDodge: l.Config.ScorePerDodge,
				DurationSecs:  int(l.Config.Duration / time.Second),
			})
		}
		c.JSON(http.StatusOK, gin.H{"levels": out})
	}
}

func toStatsJSON(st storage.Stats) StatsJSON {
	out := StatsJSON{
		GamesCount:   st.GamesCount,
		Wins:         st.Wins,
		HighScore:    st.HighScore,
		WinRate:      st.WinRate,
		AverageScore: st.AverageScore,
	}
	if !st.LastPlayed.IsZero() {
		last := st.LastPlayed
		out.LastPlayed = &last
	}
	return out
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}
