package models

import "time"

// Category groups analysis posts
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Tag labels a post
type Tag struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// PostTag wraps a tag as nested by the backend serializer
type PostTag struct {
	Tag Tag `json:"tag"`
}

// Post is the list representation of an analysis post
type Post struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Author        string     `json:"author"`
	Category      *Category  `json:"category"`
	FeaturedImage *string    `json:"featured_image"`
	Status        string     `json:"status"`
	ReadTime      int        `json:"read_time"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `json:"published_at"`
	Views         int        `json:"views"`
	Likes         int        `json:"likes"`
	Tags          []PostTag  `json:"tags"`
}

// PostDetail is the full representation of a post
type PostDetail struct {
	Post
	Content         string    `json:"content"`
	MetaDescription string    `json:"meta_description"`
	MetaKeywords    string    `json:"meta_keywords"`
	Comments        []Comment `json:"comments"`
}

// PostInput is the body used to create or update a post
type PostInput struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Excerpt         string `json:"excerpt"`
	Content         string `json:"content"`
	Category        *int   `json:"category,omitempty"`
	Status          string `json:"status,omitempty"`
	ReadTime        int    `json:"read_time,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	MetaKeywords    string `json:"meta_keywords,omitempty"`
}

// Comment on a post
type Comment struct {
	ID          int       `json:"id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	Content     string    `json:"content"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CommentInput is the body of a new comment
type CommentInput struct {
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content"`
}

// LikeResult is returned after liking a post
type LikeResult struct {
	Message string `json:"message"`
	Likes   int    `json:"likes"`
}
