package strapi

import (
	"fmt"
	"time"
)

// immutableMaxAge is sent for NeverRevalidate reads.
const immutableMaxAge = 365 * 24 * time.Hour

// cachePolicy is what a read may do with the response cache.
type cachePolicy struct {
	read       bool
	write      bool
	onlyCached bool
	// maxAge bounds how old a cached entry may be; negative means any age.
	maxAge time.Duration
	header string
}

// policyFor maps the Revalidate and Cache directives onto a cachePolicy.
// Revalidate wins when both are set.
func policyFor(opts FetchOptions) cachePolicy {
	if opts.Revalidate != nil {
		d := *opts.Revalidate
		switch {
		case d < 0:
			return cachePolicy{
				read:   true,
				write:  true,
				maxAge: -1,
				header: fmt.Sprintf("max-age=%d, immutable", int64(immutableMaxAge/time.Second)),
			}
		case d == 0:
			return cachePolicy{header: "no-cache"}
		default:
			return cachePolicy{
				read:   true,
				write:  true,
				maxAge: d,
				header: fmt.Sprintf("max-age=%d", maxAgeSeconds(d)),
			}
		}
	}

	switch opts.Cache {
	case CacheNoStore:
		return cachePolicy{header: "no-store"}
	case CacheReload, CacheNoCache:
		return cachePolicy{write: true, maxAge: -1, header: "no-cache"}
	case CacheForceCache:
		return cachePolicy{read: true, write: true, maxAge: -1}
	case CacheOnlyIfCached:
		return cachePolicy{read: true, onlyCached: true, maxAge: -1, header: "only-if-cached"}
	}
	return cachePolicy{}
}

// maxAgeSeconds rounds d up to whole seconds so a sub-second revalidate
// never advertises max-age=0 while the response is still being cached.
func maxAgeSeconds(d time.Duration) int64 {
	return int64((d + time.Second - 1) / time.Second)
}
