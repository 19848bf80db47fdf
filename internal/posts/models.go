package posts

import "time"

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Group struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type Post struct {
	ID       int64     `json:"id"`
	Author   User      `json:"author"`
	Group    *Group    `json:"group,omitempty"`
	Text     string    `json:"text"`
	ImageURL string    `json:"image_url,omitempty"`
	Created  time.Time `json:"created"`
}
