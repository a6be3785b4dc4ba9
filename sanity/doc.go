// Package sanity provides a client for the Sanity content lake.
//
// The marketing site can source its pages from Sanity instead of Strapi. This
// package covers the two things the site needs from it: running GROQ queries
// and building image CDN URLs. GROQ itself is not interpreted here; queries are
// sent as-is.
//
// # Usage
//
//	client, err := sanity.NewClient(sanity.Config{
//		ProjectID:  "abc123",
//		Dataset:    "production",
//		APIVersion: "2024-01-01",
//		UseCDN:     true,
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	stores, err := sanity.QueryInto[[]Store](ctx, client,
//		`*[_type == "store" && city == $city]{name, address}`,
//		map[string]any{"city": "Bergen"})
//
//	src, err := client.Image(store.Photo).Width(800).Auto("format").URL()
//
// # Error Handling
//
// Errors mirror the strapi package: *APIError for non-2xx responses,
// *TransportError when no response arrived (context errors unwrap through it)
// and *MalformedResponseError for a 2xx body without a usable result.
package sanity
