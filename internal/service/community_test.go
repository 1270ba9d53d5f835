package service

import (
	"context"
	"errors"
	"testing"

	"github.com/timmy/calsnap/internal/domain"
)

func postTitles(posts []domain.CommunityPost) []string {
	titles := make([]string, len(posts))
	for i, p := range posts {
		titles[i] = p.Title
	}
	return titles
}

func TestCommunityFeedSeed(t *testing.T) {
	f := NewCommunityFeed()
	posts := f.Posts()
	if len(posts) != 2 {
		t.Fatalf("seeded %d posts, want 2", len(posts))
	}
	if posts[0].Author != "dietlover01" || posts[0].LikeCount != 12 || len(posts[0].Comments) != 2 {
		t.Errorf("first post = %+v", posts[0])
	}
	if posts[1].Author != "fitgirl92" || posts[1].LikeCount != 8 {
		t.Errorf("second post = %+v", posts[1])
	}
	if f.Filter().Mode != domain.FilterNone {
		t.Errorf("initial filter = %+v", f.Filter())
	}
}

func TestCommunityFeedToggleLike(t *testing.T) {
	ctx := context.Background()
	f := NewCommunityFeed()
	id := f.Posts()[0].ID

	p, err := f.ToggleLike(ctx, id)
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if !p.Liked || p.LikeCount != 13 {
		t.Errorf("after first toggle liked=%v count=%d, want true/13", p.Liked, p.LikeCount)
	}

	p, err = f.ToggleLike(ctx, id)
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if p.Liked || p.LikeCount != 12 {
		t.Errorf("after second toggle liked=%v count=%d, want false/12", p.Liked, p.LikeCount)
	}

	if _, err := f.ToggleLike(ctx, 999); !errors.Is(err, domain.ErrPostNotFound) {
		t.Errorf("ToggleLike(999) error = %v, want ErrPostNotFound", err)
	}
}

func TestCommunityFeedAddComment(t *testing.T) {
	ctx := context.Background()
	f := NewCommunityFeed()
	id := f.Posts()[1].ID

	p, err := f.AddComment(ctx, id, "  저도 해볼게요  ")
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if len(p.Comments) != 3 || p.Comments[2] != "저도 해볼게요" {
		t.Errorf("comments = %v", p.Comments)
	}

	p, err = f.AddComment(ctx, id, "   ")
	if err != nil {
		t.Fatalf("AddComment(blank) error = %v", err)
	}
	if len(p.Comments) != 3 {
		t.Errorf("blank comment was added: %v", p.Comments)
	}

	if _, err := f.AddComment(ctx, 999, "hi"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Errorf("AddComment(999) error = %v, want ErrPostNotFound", err)
	}
}

func TestCommunityFeedReturnsCopies(t *testing.T) {
	f := NewCommunityFeed()
	posts := f.Posts()
	posts[0].Comments[0] = "changed"
	posts[0].Hashtags = nil
	if got := f.Posts()[0]; got.Comments[0] == "changed" || len(got.Hashtags) != 2 {
		t.Error("Posts() exposed internal state")
	}
}

func TestCommunityFeedFilters(t *testing.T) {
	f := NewCommunityFeed()

	tests := []struct {
		name  string
		apply func()
		mode  domain.FilterMode
		want  []string
	}{
		{name: "exact tag", apply: func() { f.SetTagFilter("#헬시푸드") }, mode: domain.FilterTag, want: []string{"헬시 샐러드 런치"}},
		{name: "tag needs exact match", apply: func() { f.SetTagFilter("#헬시") }, mode: domain.FilterTag, want: []string{}},
		{name: "search substring", apply: func() { f.SetSearch("단백") }, mode: domain.FilterSearch, want: []string{"닭가슴살 정식"}},
		{name: "search matches all", apply: func() { f.SetSearch("#") }, mode: domain.FilterSearch, want: []string{"헬시 샐러드 런치", "닭가슴살 정식"}},
		{name: "blank search clears", apply: func() { f.SetSearch("  ") }, mode: domain.FilterNone, want: []string{"헬시 샐러드 런치", "닭가슴살 정식"}},
		{name: "tag replaces search", apply: func() { f.SetSearch("단백"); f.SetTagFilter("#저탄고지") }, mode: domain.FilterTag, want: []string{"헬시 샐러드 런치"}},
		{name: "clear", apply: f.ClearFilter, mode: domain.FilterNone, want: []string{"헬시 샐러드 런치", "닭가슴살 정식"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.apply()
			if got := f.Filter().Mode; got != tt.mode {
				t.Errorf("filter mode = %q, want %q", got, tt.mode)
			}
			got := postTitles(f.Posts())
			if len(got) != len(tt.want) {
				t.Fatalf("Posts() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Posts()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCommunityFeedCreatePost(t *testing.T) {
	ctx := context.Background()
	f := NewCommunityFeed()

	p, err := f.CreatePost(ctx, &CreatePostRequest{
		Author:      "me",
		Image:       "data:image/png;base64,AAAA",
		Title:       "오트밀",
		Description: "아침 오트밀",
		Hashtags:    "#간편식 아침 #운동식단 #",
	})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if p.LikeCount != 0 || len(p.Comments) != 0 || p.Liked {
		t.Errorf("new post = %+v", p)
	}
	if len(p.Hashtags) != 2 || p.Hashtags[0] != "#간편식" || p.Hashtags[1] != "#운동식단" {
		t.Errorf("hashtags = %v", p.Hashtags)
	}
	posts := f.Posts()
	if len(posts) != 3 || posts[0].ID != p.ID {
		t.Errorf("new post not prepended: %v", postTitles(posts))
	}
	for _, old := range posts[1:] {
		if old.ID == p.ID {
			t.Error("duplicate post id")
		}
	}

	invalid := []CreatePostRequest{
		{Image: "x", Title: "t", Description: "d"},
		{Author: "a", Title: "t", Description: "d"},
		{Author: "a", Image: "x", Description: "d"},
		{Author: "a", Image: "x", Title: "t", Description: "  "},
	}
	for i, req := range invalid {
		if _, err := f.CreatePost(ctx, &req); !errors.Is(err, domain.ErrInvalidPost) {
			t.Errorf("CreatePost(invalid #%d) error = %v, want ErrInvalidPost", i, err)
		}
	}
	if len(f.Posts()) != 3 {
		t.Error("invalid posts were added")
	}
}

func TestSuggestedHashtags(t *testing.T) {
	f := NewCommunityFeed()
	tags := f.SuggestedHashtags()
	if len(tags) == 0 {
		t.Fatal("no suggested hashtags")
	}
	tags[0] = "changed"
	if f.SuggestedHashtags()[0] == "changed" {
		t.Error("SuggestedHashtags() exposed the shared slice")
	}
}
