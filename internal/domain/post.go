package domain

import "time"

// CommunityPost is a shared meal in the community feed.
// Posts live in memory only; LikeCount and Comments change through the feed.
type CommunityPost struct {
	ID          int64     `json:"id"`
	Author      string    `json:"author"`
	Image       string    `json:"image"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Hashtags    []string  `json:"hashtags"`
	LikeCount   int       `json:"likeCount"`
	Liked       bool      `json:"liked"`
	Comments    []string  `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasTag reports whether the post carries exactly tag.
func (p *CommunityPost) HasTag(tag string) bool {
	for _, t := range p.Hashtags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand out of the feed.
func (p *CommunityPost) Clone() CommunityPost {
	c := *p
	c.Hashtags = append([]string{}, p.Hashtags...)
	c.Comments = append([]string{}, p.Comments...)
	return c
}

// FilterMode is the community feed filter state.
type FilterMode string

const (
	FilterNone   FilterMode = "none"
	FilterTag    FilterMode = "tag"
	FilterSearch FilterMode = "search"
)

// FeedFilter is the current feed filter. Value is the tag or the search substring.
type FeedFilter struct {
	Mode  FilterMode `json:"mode"`
	Value string     `json:"value,omitempty"`
}
