package services

import (
	"moviedetectives/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatsService persists games played and points scored per user and quiz
// type. An empty user id collects anonymous play.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// RecordResult counts one finished quiz and its points in a single upsert.
func (s *StatsService) RecordResult(userID string, quizType models.QuizType, points int) error {
	row := models.QuizStats{
		UserID:      userID,
		QuizType:    string(quizType),
		GamesPlayed: 1,
		PointsTotal: points,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "quiz_type"}},
		DoUpdates: clause.Assignments(map[string]any{
			"games_played": gorm.Expr("quiz_stats.games_played + 1"),
			"points_total": gorm.Expr("quiz_stats.points_total + ?", points),
		}),
	}).Create(&row).Error
}

// Totals sums games and points across all users and quiz types.
func (s *StatsService) Totals() (games int, points int, err error) {
	var result struct {
		Games  int
		Points int
	}

	err = s.db.Model(&models.QuizStats{}).
		Select("COALESCE(SUM(games_played), 0) AS games, COALESCE(SUM(points_total), 0) AS points").
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}

	return result.Games, result.Points, nil
}

// UserStats lists the per-quiz-type rows for one user.
func (s *StatsService) UserStats(userID string) ([]models.QuizStats, error) {
	var rows []models.QuizStats
	err := s.db.Where("user_id = ?", userID).Order("quiz_type").Find(&rows).Error
	return rows, err
}
