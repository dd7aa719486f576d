package feed

import (
	"context"
	"net/url"
	"sync"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/fallback"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/upstream"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// PostsPage returns one page of posts. page starts at 1 and size is
// clamped to 1..MaxPageSize.
func (s *Service) PostsPage(ctx context.Context, query url.Values, page, size int) models.Page[models.Post] {
	res := upstream.Fetch(ctx, func(ctx context.Context) ([]models.Post, error) {
		return s.backend.ListPosts(ctx, query)
	})
	if !res.OK() {
		s.logFallback("posts", res.Err)
	}
	posts, usedFallback := res.Or(fallback.Posts())

	p := Paginate(posts, page, size)
	p.Fallback = usedFallback
	return p
}

// PostPage fetches a post with its content and approved comments. A post
// the backend reports missing is ErrPostNotFound; other failures serve the
// placeholder post when one has the slug.
func (s *Service) PostPage(ctx context.Context, slug string) (models.PostPage, error) {
	res := upstream.Fetch(ctx, func(ctx context.Context) (models.PostDetail, error) {
		return s.backend.GetPost(ctx, slug)
	})
	if res.OK() {
		if res.Value.Comments == nil {
			res.Value.Comments = []models.Comment{}
		}
		return models.PostPage{Post: res.Value}, nil
	}
	if isNotFound(res.Err) {
		return models.PostPage{}, ErrPostNotFound
	}

	s.logFallback("post", res.Err)
	post, ok := fallback.PostDetail(slug)
	if !ok {
		return models.PostPage{}, ErrPostNotFound
	}
	return models.PostPage{Post: post, Fallback: true}, nil
}

// Paginate slices items into the requested page
func Paginate[T any](items []T, page, size int) models.Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + size - 1) / size

	// compare before multiplying so huge page numbers cannot overflow
	start := total
	if page-1 <= total/size {
		start = min((page-1)*size, total)
	}
	end := start + size
	if end > total {
		end = total
	}

	window := make([]T, end-start)
	copy(window, items[start:end])

	return models.Page[T]{
		Items:      window,
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}
}

// HomePage fetches popular posts, recent posts, categories and tags
// concurrently
func (s *Service) HomePage(ctx context.Context) models.HomePage {
	var (
		wg         sync.WaitGroup
		popular    upstream.Result[[]models.Post]
		recent     upstream.Result[[]models.Post]
		categories upstream.Result[[]models.Category]
		tags       upstream.Result[[]models.Tag]
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		popular = upstream.Fetch(ctx, s.backend.PopularPosts)
	}()
	go func() {
		defer wg.Done()
		recent = upstream.Fetch(ctx, s.backend.RecentPosts)
	}()
	go func() {
		defer wg.Done()
		categories = upstream.Fetch(ctx, s.backend.Categories)
	}()
	go func() {
		defer wg.Done()
		tags = upstream.Fetch(ctx, s.backend.Tags)
	}()
	wg.Wait()

	for section, err := range map[string]error{
		"popular_posts": popular.Err,
		"recent_posts":  recent.Err,
		"categories":    categories.Err,
		"tags":          tags.Err,
	} {
		if err != nil {
			s.logFallback(section, err)
		}
	}

	var page models.HomePage
	page.Popular, page.PopularFallback = popular.Or(fallback.Posts())
	page.Recent, page.RecentFallback = recent.Or(fallback.Posts())
	page.Categories, page.CategoryFallback = categories.Or(fallback.Categories())
	page.Tags, page.TagsFallback = tags.Or(fallback.Tags())

	page.Popular = head(page.Popular, HighlightLimit)
	page.Recent = head(page.Recent, HighlightLimit)
	return page
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
