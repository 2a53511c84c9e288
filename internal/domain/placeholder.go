package domain

import "fmt"

// PlaceholderImageURL returns the seeded placeholder poster for a movie id.
// Distinct ids always give distinct URLs.
func PlaceholderImageURL(id int) string {
	return fmt.Sprintf("https://loremflickr.com/500/750/movie?lock=%d", id)
}
