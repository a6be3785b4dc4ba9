// Package content loads the marketing site's content from a headless CMS.
//
// A Source talks to one backend (StrapiSource or SanitySource). Service wraps
// a Source with the page-level policy: listings fall back to sample content
// when the backend fails, and the home page is loaded concurrently.
//
//	client, _ := strapi.NewClient(os.Getenv("STRAPI_URL"), os.Getenv("STRAPI_API_TOKEN"), logger)
//	svc := content.NewService(content.NewStrapiSource(client), logger)
//	home, err := svc.Home(ctx)
package content
