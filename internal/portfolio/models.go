package portfolio

import "time"

// Project is a showcased piece of work. Order defines the display position on
// the public site; reordering rewrites Order across all projects in one batch.
type Project struct {
	ID           string    `json:"id" bson:"id"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	Technologies []string  `json:"technologies" bson:"technologies"`
	GithubURL    string    `json:"githubUrl" bson:"githubUrl"`
	LiveURL      string    `json:"liveUrl,omitempty" bson:"liveUrl,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Order        int       `json:"order" bson:"order"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Experience is a single role in the work history. When IsCurrentRole is set
// the EndDate is cleared on write.
type Experience struct {
	ID            string     `json:"id" bson:"id"`
	Company       string     `json:"company" bson:"company"`
	Position      string     `json:"position" bson:"position"`
	Description   string     `json:"description" bson:"description"`
	Technologies  []string   `json:"technologies" bson:"technologies"`
	StartDate     time.Time  `json:"startDate" bson:"startDate"`
	EndDate       *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
	IsCurrentRole bool       `json:"isCurrentRole" bson:"isCurrentRole"`
	Location      string     `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// BlogPost holds markdown content. Slug is derived from the title and ReadTime
// from the content length; both are recomputed on every write.
type BlogPost struct {
	ID          string     `json:"id" bson:"id"`
	Title       string     `json:"title" bson:"title"`
	Slug        string     `json:"slug" bson:"slug"`
	Excerpt     string     `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	Content     string     `json:"content" bson:"content"`
	Tags        []string   `json:"tags" bson:"tags"`
	Published   bool       `json:"published" bson:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	ReadTime    int        `json:"readTime" bson:"readTime"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}
