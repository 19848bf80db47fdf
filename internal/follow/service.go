package follow

import (
	"context"
	"errors"

	"github.com/crazyLixxx/yatube-backend/internal/db"
)

// ErrSelfFollow is returned when a user tries to subscribe to themself.
var ErrSelfFollow = errors.New("cannot follow yourself")

// Service maintains the directed (user, author) subscription edges.
// Uniqueness of an edge is enforced by the follows primary key; inserting
// an existing edge and deleting a missing one are both no-ops.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Follow(ctx context.Context, userID, authorID string) error {
	if userID == authorID {
		return ErrSelfFollow
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO follows (user_id, author_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, userID, authorID)
	return err
}

func (s *Service) Unfollow(ctx context.Context, userID, authorID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM follows WHERE user_id=$1 AND author_id=$2
	`, userID, authorID)
	return err
}

func (s *Service) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE user_id=$1 AND author_id=$2
		)
	`, userID, authorID)
	var following bool
	if err := row.Scan(&following); err != nil {
		return false, err
	}
	return following, nil
}

// Following returns the ids of every author the user subscribed to.
func (s *Service) Following(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT author_id FROM follows WHERE user_id=$1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		authors = append(authors, id)
	}
	return authors, rows.Err()
}
