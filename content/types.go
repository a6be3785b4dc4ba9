package content

import (
	"time"
)

// Article is a journal post shown on the home page and under /journal.
type Article struct {
	Slug        string    `json:"slug" yaml:"slug"`
	Title       string    `json:"title" yaml:"title"`
	Excerpt     string    `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Body        string    `json:"body,omitempty" yaml:"body,omitempty"`
	Category    string    `json:"category,omitempty" yaml:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Author      string    `json:"author,omitempty" yaml:"author,omitempty"`
	PublishedAt time.Time `json:"publishedAt" yaml:"publishedAt"`
	Cover       *Image    `json:"cover,omitempty" yaml:"cover,omitempty"`
}

// FilterEnv exposes the article to --where expressions.
func (a Article) FilterEnv() map[string]any {
	return map[string]any{
		"Slug":        a.Slug,
		"Title":       a.Title,
		"Excerpt":     a.Excerpt,
		"Category":    a.Category,
		"Tags":        a.Tags,
		"Author":      a.Author,
		"PublishedAt": a.PublishedAt,
	}
}

// Image is a resolved, absolute image URL with its alt text.
type Image struct {
	URL    string `json:"url" yaml:"url"`
	Alt    string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
}

// Location is a physical store.
type Location struct {
	Slug       string         `json:"slug" yaml:"slug"`
	Name       string         `json:"name" yaml:"name"`
	Address    string         `json:"address" yaml:"address"`
	PostalCode string         `json:"postalCode,omitempty" yaml:"postalCode,omitempty"`
	City       string         `json:"city" yaml:"city"`
	Phone      string         `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email      string         `json:"email,omitempty" yaml:"email,omitempty"`
	Hours      []OpeningHours `json:"hours,omitempty" yaml:"hours,omitempty"`
	Services   []string       `json:"services,omitempty" yaml:"services,omitempty"`
	Latitude   float64        `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude  float64        `json:"longitude,omitempty" yaml:"longitude,omitempty"`
}

// FilterEnv exposes the location to --where expressions. Services double as tags.
func (l Location) FilterEnv() map[string]any {
	return map[string]any{
		"Slug":     l.Slug,
		"Name":     l.Name,
		"Address":  l.Address,
		"City":     l.City,
		"Phone":    l.Phone,
		"Services": l.Services,
		"Tags":     l.Services,
	}
}

// OpeningHours is one line of a store's opening hours, e.g. "Mon-Fri" 09:00-17:00.
type OpeningHours struct {
	Days   string `json:"days" yaml:"days"`
	Opens  string `json:"opens,omitempty" yaml:"opens,omitempty"`
	Closes string `json:"closes,omitempty" yaml:"closes,omitempty"`
	Closed bool   `json:"closed,omitempty" yaml:"closed,omitempty"`
}

// Brand is an eyewear brand carried by the stores.
type Brand struct {
	Slug        string `json:"slug" yaml:"slug"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Website     string `json:"website,omitempty" yaml:"website,omitempty"`
	Logo        *Image `json:"logo,omitempty" yaml:"logo,omitempty"`
}

// FilterEnv exposes the brand to --where expressions.
func (b Brand) FilterEnv() map[string]any {
	var tags []string
	if b.Category != "" {
		tags = []string{b.Category}
	}
	return map[string]any{
		"Slug":        b.Slug,
		"Name":        b.Name,
		"Description": b.Description,
		"Category":    b.Category,
		"Tags":        tags,
	}
}

// NavItem is an entry in the site navigation.
type NavItem struct {
	Label    string    `json:"label" yaml:"label"`
	Href     string    `json:"href" yaml:"href"`
	Children []NavItem `json:"children,omitempty" yaml:"children,omitempty"`
}

// Home is everything the landing page renders.
type Home struct {
	Articles  []Article  `json:"articles" yaml:"articles"`
	Locations []Location `json:"locations" yaml:"locations"`
	Brands    []Brand    `json:"brands" yaml:"brands"`
}

// ArticleQuery narrows an article listing. Zero values mean no restriction.
type ArticleQuery struct {
	Category string
	Limit    int
	Locale   string
}

// ContactRequest is a message sent through the contact form.
type ContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Message  string `json:"message"`
}

// BookingRequest asks for an eye examination or fitting appointment.
type BookingRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Location string    `json:"location"`
	Service  string    `json:"service"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes,omitempty"`
}
