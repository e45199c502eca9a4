package models

import (
	"time"
)

// QuizStats accumulates games played and points scored per user and quiz
// type. Anonymous play is recorded under an empty user id.
type QuizStats struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"uniqueIndex:idx_user_quiz_type;size:128"`
	QuizType    string    `json:"quiz_type" gorm:"uniqueIndex:idx_user_quiz_type;size:32"`
	GamesPlayed int       `json:"games_played" gorm:"not null;default:0"`
	PointsTotal int       `json:"points_total" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
