package upstream

import (
	"context"
	"net/url"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// ListPosts fetches published posts. query is forwarded as-is
// (category, search, ordering...).
func (c *Client) ListPosts(ctx context.Context, query url.Values) ([]models.Post, error) {
	return getList[models.Post](ctx, c, "/posts/", query)
}

// GetPost fetches a post with its content and comments
func (c *Client) GetPost(ctx context.Context, slug string) (models.PostDetail, error) {
	var post models.PostDetail
	err := c.get(ctx, "/posts/"+url.PathEscape(slug)+"/", nil, &post)
	return post, err
}

// PopularPosts fetches the most viewed posts
func (c *Client) PopularPosts(ctx context.Context) ([]models.Post, error) {
	return getList[models.Post](ctx, c, "/posts/popular/", nil)
}

// RecentPosts fetches the latest posts
func (c *Client) RecentPosts(ctx context.Context) ([]models.Post, error) {
	return getList[models.Post](ctx, c, "/posts/recent/", nil)
}

// CreatePost publishes a new post
func (c *Client) CreatePost(ctx context.Context, input models.PostInput) (models.PostDetail, error) {
	var post models.PostDetail
	err := c.send(ctx, "POST", "/posts/create/", input, &post, "/posts/")
	return post, err
}

// UpdatePost replaces a post's editable fields
func (c *Client) UpdatePost(ctx context.Context, slug string, input models.PostInput) (models.PostDetail, error) {
	var post models.PostDetail
	err := c.send(ctx, "PUT", "/posts/"+url.PathEscape(slug)+"/update/", input, &post, "/posts/")
	return post, err
}

// LikePost increments a post's like counter
func (c *Client) LikePost(ctx context.Context, slug string) (models.LikeResult, error) {
	var res models.LikeResult
	err := c.send(ctx, "POST", "/posts/"+url.PathEscape(slug)+"/like/", nil, &res, "/posts/")
	return res, err
}

// Categories fetches all post categories
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	return getList[models.Category](ctx, c, "/categories/", nil)
}

// Tags fetches all post tags
func (c *Client) Tags(ctx context.Context) ([]models.Tag, error) {
	return getList[models.Tag](ctx, c, "/tags/", nil)
}

// AddComment submits a comment on a post. Comments await moderation.
func (c *Client) AddComment(ctx context.Context, slug string, input models.CommentInput) (models.Comment, error) {
	var comment models.Comment
	path := "/posts/" + url.PathEscape(slug) + "/"
	err := c.send(ctx, "POST", path+"comments/", input, &comment, path)
	return comment, err
}
