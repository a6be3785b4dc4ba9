// Package strapi provides a client for reading content from a Strapi REST API.
//
// The marketing site keeps articles, store locations and brands in Strapi. This
// package turns typed FetchOptions into Strapi's query grammar and wraps the
// HTTP round trip.
//
// # Query encoding
//
// Encode emits keys in a fixed order (populate, filters, sort, pagination,
// locale, fields) and keeps the input order of repeated keys:
//
//	opts := strapi.FetchOptions{
//		Populate:   strapi.PopulateFields("cover", "author"),
//		Filters:    strapi.Filters{strapi.Eq("category", "frames"), strapi.Where("price", strapi.Op("$lte", 2000))},
//		Sort:       []string{"publishedAt:desc"},
//		Pagination: strapi.Page(1, 10),
//	}
//	q, err := strapi.Encode(opts)
//
// ParseQuery reverses the encoding.
//
// # Usage
//
//	client, err := strapi.NewClient("https://cms.example.com", token, logger,
//		strapi.WithTimeout(10*time.Second),
//		strapi.WithCache(cache.NewMemory(128)),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := strapi.Fetch[[]strapi.Entity[Article]](ctx, client, "/articles", opts)
//
// # Caching
//
// Revalidate and Cache are forwarded as a Cache-Control header and, when the
// client has a cache.Store, decide whether a stored response may be served.
// Without a store every call goes to the network.
//
// # Error Handling
//
// Failures are never retried. The error types are:
//
//   - ConfigurationError: FetchOptions that cannot be encoded (wraps ErrInvalidConfig)
//   - RemoteError: non-2xx response, with the server's status, name and message
//   - MalformedResponseError: a 2xx body that is not the expected JSON envelope
//   - TransportError: DNS, connection or timeout failures from net/http
//
// Use errors.As to classify:
//
//	var remote *strapi.RemoteError
//	if errors.As(err, &remote) && remote.IsNotFound() {
//		// Handle missing entry
//	}
package strapi
