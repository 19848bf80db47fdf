package posts

import (
	"context"
	"errors"

	"github.com/crazyLixxx/yatube-backend/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a post id, group slug or username does not
// resolve to a stored record.
var ErrNotFound = errors.New("not found")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

const listColumns = `
		SELECT p.id, p.text, p.image_url, p.created,
		       u.id, u.username,
		       g.id, g.title, g.slug, g.description
		FROM posts p
		JOIN users u ON u.id = p.author_id
		LEFT JOIN groups g ON g.id = p.group_id`

// Posts are ordered newest-first with the monotonic id as tiebreak, so the
// order is total and pages stay stable across requests.
const listOrder = ` ORDER BY p.created DESC, p.id DESC`

// List returns every post matching the scope, newest first. Group and
// author scopes fail with ErrNotFound when the slug or username is unknown;
// a feed over zero subscriptions is an empty list, not an error.
func (s *Service) List(ctx context.Context, scope Scope) ([]Post, error) {
	var (
		rows pgx.Rows
		err  error
	)

	switch scope.kind {
	case scopeGroup:
		if _, err := s.GetGroupBySlug(ctx, scope.slug); err != nil {
			return nil, err
		}
		rows, err = s.db.Query(ctx, listColumns+` WHERE g.slug=$1`+listOrder, scope.slug)
	case scopeAuthor:
		if _, err := s.GetUserByUsername(ctx, scope.username); err != nil {
			return nil, err
		}
		rows, err = s.db.Query(ctx, listColumns+` WHERE u.username=$1`+listOrder, scope.username)
	case scopeFeed:
		rows, err = s.db.Query(ctx, listColumns+`
		WHERE p.author_id IN (SELECT author_id FROM follows WHERE user_id=$1)`+listOrder, scope.userID)
	default:
		rows, err = s.db.Query(ctx, listColumns+listOrder)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	return result, rows.Err()
}

func (s *Service) GetPost(ctx context.Context, id int64) (Post, error) {
	rows, err := s.db.Query(ctx, listColumns+` WHERE p.id=$1`, id)
	if err != nil {
		return Post{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Post{}, err
		}
		return Post{}, ErrNotFound
	}
	return scanPost(rows)
}

func (s *Service) CreatePost(ctx context.Context, input Post) (Post, error) {
	var groupID *string
	if input.Group != nil {
		groupID = &input.Group.ID
	}
	var image *string
	if input.ImageURL != "" {
		image = &input.ImageURL
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO posts (author_id, group_id, text, image_url)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created
	`, input.Author.ID, groupID, input.Text, image)
	if err := row.Scan(&input.ID, &input.Created); err != nil {
		return Post{}, err
	}
	return input, nil
}

func (s *Service) DeletePost(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	return err
}

// CreateGroup registers a new community. Groups are immutable once created;
// there is no update or delete path.
func (s *Service) CreateGroup(ctx context.Context, input Group) (Group, error) {
	input.ID = uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO groups (id, title, slug, description)
		VALUES ($1,$2,$3,$4)
	`, input.ID, input.Title, input.Slug, input.Description)
	if err != nil {
		return Group{}, err
	}
	return input, nil
}

func (s *Service) GetGroupBySlug(ctx context.Context, slug string) (Group, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, slug, description FROM groups WHERE slug=$1
	`, slug)
	var group Group
	if err := row.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Group{}, ErrNotFound
		}
		return Group{}, err
	}
	return group, nil
}

func (s *Service) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username FROM users WHERE username=$1
	`, username)
	var user User
	if err := row.Scan(&user.ID, &user.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func scanPost(rows pgx.Rows) (Post, error) {
	var (
		post          Post
		image         *string
		groupID       *string
		groupTitle    *string
		groupSlug     *string
		groupDescribe *string
	)
	err := rows.Scan(
		&post.ID, &post.Text, &image, &post.Created,
		&post.Author.ID, &post.Author.Username,
		&groupID, &groupTitle, &groupSlug, &groupDescribe,
	)
	if err != nil {
		return Post{}, err
	}
	if image != nil {
		post.ImageURL = *image
	}
	if groupID != nil {
		post.Group = &Group{
			ID:          *groupID,
			Title:       deref(groupTitle),
			Slug:        deref(groupSlug),
			Description: deref(groupDescribe),
		}
	}
	return post, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
