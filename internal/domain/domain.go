package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account row. Created on first sign-in, never deleted here.
type User struct {
	ID        uuid.UUID
	Username  string
	AvatarURL string
}

// Draft is a volatile article: generator output that has not been stored
// yet and therefore has no stable identifier. Identifier-dependent
// operations (favorite, like, comment) must upsert a Draft first.
type Draft struct {
	Title     string
	Summary   string
	Source    string
	URL       string
	Date      string
	Category  string
	Sentiment float64
}

// Article is a stored article row. ID is always store-assigned.
type Article struct {
	ID uuid.UUID
	Draft
	ImageURL     string
	LikeCount    int64
	DislikeCount int64
}

// Category drives the news search. OwnerID is nil for the built-in
// defaults and for global rows.
type Category struct {
	ID      int64
	Label   string
	Value   string
	OwnerID *uuid.UUID
}

type Comment struct {
	ID        int64
	ArticleID uuid.UUID
	UserID    uuid.UUID
	Username  string
	Text      string
	CreatedAt time.Time
}

type Quote struct {
	ID     int64
	Text   string
	Author string
}

type Deed struct {
	ID   int64
	Text string
}

// NewsItem is the transport shape for both article states: ID is empty
// while the article is volatile, and IsNew marks items generated during
// the current fetch.
type NewsItem struct {
	ID           string  `json:"id,omitempty"`
	Title        string  `json:"title"`
	Summary      string  `json:"summary"`
	Source       string  `json:"source"`
	URL          string  `json:"url"`
	Date         string  `json:"date"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	Sentiment    float64 `json:"sentimentScore"`
	LikeCount    int64   `json:"likeCount"`
	DislikeCount int64   `json:"dislikeCount"`
	IsNew        bool    `json:"isNew"`
	IsFavorite   bool    `json:"isFavorite"`
}

func ItemFromArticle(a Article, isNew bool) NewsItem {
	return NewsItem{
		ID:           a.ID.String(),
		Title:        a.Title,
		Summary:      a.Summary,
		Source:       a.Source,
		URL:          a.URL,
		Date:         a.Date,
		Category:     a.Category,
		ImageURL:     a.ImageURL,
		Sentiment:    a.Sentiment,
		LikeCount:    a.LikeCount,
		DislikeCount: a.DislikeCount,
		IsNew:        isNew,
	}
}

func ItemFromDraft(d Draft) NewsItem {
	return NewsItem{
		Title:     d.Title,
		Summary:   d.Summary,
		Source:    d.Source,
		URL:       d.URL,
		Date:      d.Date,
		Category:  d.Category,
		Sentiment: d.Sentiment,
		IsNew:     true,
	}
}

// AsDraft rebuilds the volatile shape of an item, used for just-in-time
// persistence when an identifier-dependent operation hits a volatile
// article.
func (n NewsItem) AsDraft() Draft {
	return Draft{
		Title:     n.Title,
		Summary:   n.Summary,
		Source:    n.Source,
		URL:       n.URL,
		Date:      n.Date,
		Category:  n.Category,
		Sentiment: n.Sentiment,
	}
}

// ParseID reports the stable identifier of a persisted item. Volatile
// items (empty or malformed ID) report false.
func (n NewsItem) ParseID() (uuid.UUID, bool) {
	if n.ID == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(n.ID)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// DefaultCategories is the hardcoded fallback list. Category listing must
// never depend on the store being reachable.
var DefaultCategories = []Category{
	{Label: "Attualità", Value: "notizie positive di attualità"},
	{Label: "Tecnologia", Value: "notizie positive sulla tecnologia"},
	{Label: "Scienza", Value: "scoperte scientifiche positive"},
	{Label: "Ambiente", Value: "buone notizie sull'ambiente"},
	{Label: "Salute", Value: "notizie positive sulla salute"},
	{Label: "Cultura", Value: "notizie positive su arte e cultura"},
	{Label: "Sport", Value: "belle storie di sport"},
}
