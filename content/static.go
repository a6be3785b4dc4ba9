package content

import (
	"slices"
	"time"
)

// Navigation returns the site navigation. It is not managed in the CMS.
func Navigation() []NavItem {
	return []NavItem{
		{Label: "Glasses", Href: "/glasses", Children: []NavItem{
			{Label: "Frames", Href: "/glasses/frames"},
			{Label: "Sunglasses", Href: "/glasses/sunglasses"},
			{Label: "Lenses", Href: "/glasses/lenses"},
		}},
		{Label: "Contact lenses", Href: "/contact-lenses"},
		{Label: "Eye exam", Href: "/eye-exam"},
		{Label: "Brands", Href: "/brands"},
		{Label: "Journal", Href: "/journal"},
		{Label: "Stores", Href: "/stores"},
		{Label: "Contact", Href: "/contact"},
	}
}

var weekdayHours = []OpeningHours{
	{Days: "Mon-Fri", Opens: "09:00", Closes: "17:00"},
	{Days: "Sat", Opens: "10:00", Closes: "15:00"},
	{Days: "Sun", Closed: true},
}

var sampleLocations = []Location{
	{
		Slug:       "bergen-sentrum",
		Name:       "Bergen Sentrum",
		Address:    "Strandgaten 18",
		PostalCode: "5013",
		City:       "Bergen",
		Phone:      "+47 55 30 12 00",
		Email:      "bergen@lenscms.example",
		Hours:      weekdayHours,
		Services:   []string{"eye-exam", "contact-lenses", "fitting"},
		Latitude:   60.3943,
		Longitude:  5.3239,
	},
	{
		Slug:       "oslo-majorstuen",
		Name:       "Oslo Majorstuen",
		Address:    "Bogstadveien 45",
		PostalCode: "0366",
		City:       "Oslo",
		Phone:      "+47 22 60 44 10",
		Email:      "majorstuen@lenscms.example",
		Hours:      weekdayHours,
		Services:   []string{"eye-exam", "fitting"},
		Latitude:   59.9286,
		Longitude:  10.7197,
	},
	{
		Slug:       "trondheim-torget",
		Name:       "Trondheim Torget",
		Address:    "Kongens gate 9",
		PostalCode: "7011",
		City:       "Trondheim",
		Phone:      "+47 73 52 90 30",
		Email:      "trondheim@lenscms.example",
		Hours: []OpeningHours{
			{Days: "Mon-Fri", Opens: "10:00", Closes: "18:00"},
			{Days: "Sat", Opens: "10:00", Closes: "16:00"},
			{Days: "Sun", Closed: true},
		},
		Services:  []string{"contact-lenses", "fitting"},
		Latitude:  63.4305,
		Longitude: 10.3951,
	},
}

var sampleBrands = []Brand{
	{Slug: "ray-ban", Name: "Ray-Ban", Category: "sunglasses", Website: "https://www.ray-ban.com",
		Description: "Classic acetate and metal frames, from the Wayfarer to the Aviator."},
	{Slug: "lindberg", Name: "Lindberg", Category: "frames", Website: "https://lindberg.com",
		Description: "Screwless titanium frames designed and made in Denmark."},
	{Slug: "oakley", Name: "Oakley", Category: "sport", Website: "https://www.oakley.com",
		Description: "Performance eyewear for running, cycling and skiing."},
	{Slug: "tom-ford", Name: "Tom Ford", Category: "frames", Website: "https://www.tomford.com",
		Description: "Bold shapes with the signature T hinge."},
}

var sampleArticles = []Article{
	{
		Slug:        "choosing-progressive-lenses",
		Title:       "Choosing your first progressive lenses",
		Excerpt:     "What to expect during the first weeks and how to get used to them faster.",
		Category:    "lenses",
		Tags:        []string{"lenses", "guides"},
		Author:      "Ingrid Aas",
		PublishedAt: time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC),
	},
	{
		Slug:        "when-to-book-an-eye-exam",
		Title:       "When should you book an eye exam?",
		Excerpt:     "Headaches, tired eyes and blurry road signs are all good reasons.",
		Category:    "eye-health",
		Tags:        []string{"eye-exam", "guides"},
		Author:      "Martin Holm",
		PublishedAt: time.Date(2025, 2, 3, 8, 0, 0, 0, time.UTC),
	},
	{
		Slug:        "sunglasses-for-winter",
		Title:       "Why you need sunglasses in winter",
		Excerpt:     "Snow reflects up to 80% of UV light. Here is how to pick a pair that protects.",
		Category:    "sunglasses",
		Tags:        []string{"sunglasses", "uv"},
		Author:      "Ingrid Aas",
		PublishedAt: time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC),
	},
}

// SampleLocations returns the stores shown when the CMS is unavailable.
func SampleLocations() []Location {
	return slices.Clone(sampleLocations)
}

// SampleBrands returns the brands shown when the CMS is unavailable.
func SampleBrands() []Brand {
	return slices.Clone(sampleBrands)
}

// SampleArticles returns the articles shown when the CMS is unavailable,
// newest first.
func SampleArticles() []Article {
	return slices.Clone(sampleArticles)
}

// filterSampleArticles narrows the sample set the same way a source would.
func filterSampleArticles(q ArticleQuery) []Article {
	var out []Article
	for _, a := range sampleArticles {
		if q.Category != "" && a.Category != q.Category {
			continue
		}
		out = append(out, a)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out
}

func sampleArticle(slug string) (*Article, bool) {
	for _, a := range sampleArticles {
		if a.Slug == slug {
			return &a, true
		}
	}
	return nil, false
}
