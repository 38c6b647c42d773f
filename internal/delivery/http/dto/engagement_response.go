package dto

import (
	"time"

	"jobni/internal/domain/notification"
	"jobni/internal/domain/rating"

	"github.com/google/uuid"
)

type RatingRequest struct {
	JobID   string  `json:"job_id"`
	RatedID string  `json:"rated_id"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

type RatingResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	RaterID   uuid.UUID `json:"rater_id"`
	RatedID   uuid.UUID `json:"rated_id"`
	Rating    float64   `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationResponse struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Type      notification.Type `json:"type"`
	Message   string            `json:"message"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewRatingResponse(r rating.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		JobID:     r.JobID,
		RaterID:   r.RaterID,
		RatedID:   r.RatedID,
		Rating:    r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func NewRatingResponses(in []rating.Rating) []RatingResponse {
	out := make([]RatingResponse, 0, len(in))
	for _, r := range in {
		out = append(out, NewRatingResponse(r))
	}
	return out
}

func NewNotificationResponses(in []notification.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(in))
	for _, n := range in {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			UserID:    n.UserID,
			Type:      n.Type,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
