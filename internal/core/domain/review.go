package domain

import "time"

const (
	MinScore = 1
	MaxScore = 10
)

// Review is a user's scored opinion on a title. A user may review each
// title at most once.
type Review struct {
	ID             string    `json:"id"`
	TitleID        string    `json:"-"`
	AuthorID       string    `json:"-"`
	AuthorUsername string    `json:"author"`
	Text           string    `json:"text"`
	Score          int       `json:"score"`
	PubDate        time.Time `json:"pub_date"`
}

// Comment is a reply attached to a review.
type Comment struct {
	ID             string    `json:"id"`
	ReviewID       string    `json:"-"`
	AuthorID       string    `json:"-"`
	AuthorUsername string    `json:"author"`
	Text           string    `json:"text"`
	PubDate        time.Time `json:"pub_date"`
}
