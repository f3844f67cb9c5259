package model

type Group struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type GroupRef struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

func (g Group) Ref() *GroupRef {
	return &GroupRef{ID: g.ID, Slug: g.Slug, Title: g.Title}
}
