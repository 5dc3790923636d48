package igdb

import "fmt"

// gameFields is the field list requested for every game query. Nested
// selectors pull only what the normalizer consumes.
const gameFields = "fields id,name,slug,summary,rating,aggregated_rating,first_release_date," +
	"cover.image_id,screenshots.image_id," +
	"release_dates.date,release_dates.y," +
	"involved_companies.company.name,involved_companies.developer,involved_companies.publisher," +
	"platforms.name,genres.name,themes.name,game_modes.name,player_perspectives.name," +
	"franchises.name,collections.name," +
	"videos.name,videos.video_id,websites.url,websites.category;"

// searchQuery builds the request body for a free-text search. %q
// escapes embedded quotes in the search term.
func searchQuery(text string, limit int) string {
	return fmt.Sprintf("%s search %q; limit %d;", gameFields, text, limit)
}

// idQuery builds the request body for a single-id lookup.
func idQuery(id int64) string {
	return fmt.Sprintf("%s where id = %d; limit 1;", gameFields, id)
}
