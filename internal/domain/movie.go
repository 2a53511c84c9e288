package domain

import "time"

// DefaultGenre is used when a source row carries no usable genre.
const DefaultGenre = "Drama"

// DefaultReleaseYear is used when a source row carries no usable release date.
const DefaultReleaseYear = 2024

// DefaultDescription is used when a source row has no overview.
const DefaultDescription = "No description available."

// Movie is one record of the generated movie directory.
// The JSON field names are read by the front end and must not change.
type Movie struct {
	ID          int    `gorm:"column:movie_id;index:idx_movies_movie_id" json:"id"`
	Title       string `gorm:"type:text;not null" json:"title"`
	Genre       string `gorm:"type:text;index:idx_movies_genre" json:"genre"`
	Rating      Rating `json:"rating"`
	ReleaseYear int    `json:"release_year"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"type:text" json:"image_url"`
}

// CatalogEntry is a Movie mirrored into the database at its rank in the output list.
type CatalogEntry struct {
	Position  int    `gorm:"primaryKey;autoIncrement:false" json:"position"`
	JobID     string `gorm:"type:text;index:idx_movies_job" json:"job_id"`
	Movie     `gorm:"embedded"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for CatalogEntry.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (CatalogEntry) TableName() string {
	return "movies"
}
