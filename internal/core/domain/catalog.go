package domain

// Category groups titles by kind (e.g. "movies", "books").
type Category struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Genre tags titles with a style (e.g. "drama", "rock").
type Genre struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Title is a catalog entry users can review. Rating is the average review
// score, nil while the title has no reviews.
type Title struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Year         int      `json:"year"`
	Description  string   `json:"description,omitempty"`
	CategorySlug string   `json:"-"`
	GenreSlugs   []string `json:"-"`
	Rating       *float64 `json:"rating"`
}
