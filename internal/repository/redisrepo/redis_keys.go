package redisrepo

import "fmt"

const (
	LISTING_PAGE_KEY    = "listing:%s:page:%d" // <listing>:<page>
	LISTING_KEY_PATTERN = "listing:%s:*"       // <listing>
)

func ListingPageKey(listing string, page int) string {
	return fmt.Sprintf(LISTING_PAGE_KEY, listing, page)
}

func ListingKeyPattern(listing string) string {
	return fmt.Sprintf(LISTING_KEY_PATTERN, listing)
}
