package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/logger"
	"github.com/timmy/calsnap/internal/prompts"
)

// CommunityFeed is the in-memory list of shared meals. It lives for the
// process lifetime and starts with two sample posts.
type CommunityFeed struct {
	mu     sync.RWMutex
	posts  []*domain.CommunityPost // newest first
	nextID int64
	filter domain.FeedFilter
	now    func() time.Time
}

// CreatePostRequest is the body of a new community post.
type CreatePostRequest struct {
	Author      string `json:"author"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Hashtags    string `json:"hashtags"` // space separated, e.g. "#헬시푸드 #간편식"
}

// NewCommunityFeed returns a feed seeded with the sample posts.
func NewCommunityFeed() *CommunityFeed {
	f := &CommunityFeed{
		filter: domain.FeedFilter{Mode: domain.FilterNone},
		now:    time.Now,
	}
	for _, p := range seedPosts() {
		f.nextID++
		p.ID = f.nextID
		p.CreatedAt = f.now()
		f.posts = append(f.posts, p)
	}
	return f
}

func seedPosts() []*domain.CommunityPost {
	return []*domain.CommunityPost{
		{
			Author:      "dietlover01",
			Image:       "https://source.unsplash.com/featured/?salad",
			Title:       "헬시 샐러드 런치",
			Description: "오늘 점심은 닭가슴살 샐러드로 건강하게 💪",
			Hashtags:    []string{"#저탄고지", "#헬시푸드"},
			LikeCount:   12,
			Comments:    []string{"맛있어보여요!", "따라해볼게요!"},
		},
		{
			Author:      "fitgirl92",
			Image:       "https://source.unsplash.com/featured/?chicken",
			Title:       "닭가슴살 정식",
			Description: "단백질 가득한 저녁 식단 🍗",
			Hashtags:    []string{"#다이어트식단", "#단백질충전"},
			LikeCount:   8,
			Comments:    []string{"이 조합 최고예요!", "간단하네요!"},
		},
	}
}

// Posts returns copies of the posts that pass the current filter, newest first.
func (f *CommunityFeed) Posts() []domain.CommunityPost {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]domain.CommunityPost, 0, len(f.posts))
	for _, p := range f.posts {
		if f.matches(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (f *CommunityFeed) matches(p *domain.CommunityPost) bool {
	switch f.filter.Mode {
	case domain.FilterTag:
		return p.HasTag(f.filter.Value)
	case domain.FilterSearch:
		for _, tag := range p.Hashtags {
			if strings.Contains(tag, f.filter.Value) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// Filter returns the current filter state.
func (f *CommunityFeed) Filter() domain.FeedFilter {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter
}

// SetTagFilter shows only posts carrying exactly tag. It clears any search.
func (f *CommunityFeed) SetTagFilter(tag string) domain.FeedFilter {
	tag = strings.TrimSpace(tag)
	f.mu.Lock()
	defer f.mu.Unlock()
	if tag == "" {
		f.filter = domain.FeedFilter{Mode: domain.FilterNone}
	} else {
		f.filter = domain.FeedFilter{Mode: domain.FilterTag, Value: tag}
	}
	return f.filter
}

// SetSearch shows posts with a hashtag containing query. It clears any tag filter.
func (f *CommunityFeed) SetSearch(query string) domain.FeedFilter {
	query = strings.TrimSpace(query)
	f.mu.Lock()
	defer f.mu.Unlock()
	if query == "" {
		f.filter = domain.FeedFilter{Mode: domain.FilterNone}
	} else {
		f.filter = domain.FeedFilter{Mode: domain.FilterSearch, Value: query}
	}
	return f.filter
}

// ClearFilter returns the feed to the unfiltered state.
func (f *CommunityFeed) ClearFilter() {
	f.mu.Lock()
	f.filter = domain.FeedFilter{Mode: domain.FilterNone}
	f.mu.Unlock()
}

// ToggleLike flips the viewer's like on a post and adjusts its count by one.
// Parameters:
//   - ctx: context carrying the request logger.
//   - id: post id.
// Returns:
//   - domain.CommunityPost: the updated post.
//   - error: domain.ErrPostNotFound for an unknown id.
func (f *CommunityFeed) ToggleLike(ctx context.Context, id int64) (domain.CommunityPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.find(id)
	if p == nil {
		return domain.CommunityPost{}, domain.ErrPostNotFound
	}
	if p.Liked {
		p.LikeCount--
	} else {
		p.LikeCount++
	}
	p.Liked = !p.Liked

	logger.CtxDebug(logger.WithField(ctx, logger.FieldPostID, id), "Like toggled: liked=%t, count=%d", p.Liked, p.LikeCount)
	return p.Clone(), nil
}

// AddComment appends trimmed text to a post. Blank text changes nothing.
func (f *CommunityFeed) AddComment(ctx context.Context, id int64, text string) (domain.CommunityPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.find(id)
	if p == nil {
		return domain.CommunityPost{}, domain.ErrPostNotFound
	}
	if text = strings.TrimSpace(text); text != "" {
		p.Comments = append(p.Comments, text)
		logger.CtxDebug(logger.WithField(ctx, logger.FieldPostID, id), "Comment added: comments=%d", len(p.Comments))
	}
	return p.Clone(), nil
}

// CreatePost prepends a new post with no likes and no comments.
func (f *CommunityFeed) CreatePost(ctx context.Context, req *CreatePostRequest) (domain.CommunityPost, error) {
	author := strings.TrimSpace(req.Author)
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if author == "" || req.Image == "" || title == "" || description == "" {
		return domain.CommunityPost{}, domain.ErrInvalidPost
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	p := &domain.CommunityPost{
		ID:          f.nextID,
		Author:      author,
		Image:       req.Image,
		Title:       title,
		Description: description,
		Hashtags:    ParseHashtags(req.Hashtags),
		Comments:    []string{},
		CreatedAt:   f.now(),
	}
	f.posts = append([]*domain.CommunityPost{p}, f.posts...)

	logger.CtxInfo(logger.WithField(ctx, logger.FieldPostID, p.ID), "Post created: author=%s, hashtags=%v", p.Author, p.Hashtags)
	return p.Clone(), nil
}

// SuggestedHashtags returns the hashtags offered when composing a post.
func (f *CommunityFeed) SuggestedHashtags() []string {
	return append([]string(nil), prompts.SuggestedHashtags...)
}

// ParseHashtags keeps the space-separated tokens that start with '#'.
func ParseHashtags(text string) []string {
	tags := []string{}
	for _, tok := range strings.Fields(text) {
		if strings.HasPrefix(tok, "#") && len(tok) > 1 {
			tags = append(tags, tok)
		}
	}
	return tags
}

func (f *CommunityFeed) find(id int64) *domain.CommunityPost {
	for _, p := range f.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}
