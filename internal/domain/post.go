package domain

import "time"

// Post es una publicación de un usuario con sus likes y comentarios.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Likes     int       `json:"like"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"-"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
