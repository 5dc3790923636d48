package routes

import (
	"fmt"
	"math"

	"github.com/d4lvl13n/Finalboss-FE-sub000/igdb"
)

// maxExtensionScreenshots bounds the popup payload size.
const maxExtensionScreenshots = 3

// extensionGame is the trimmed record the browser extension renders.
// Rating is rounded here; the GameRecord keeps the raw float.
type extensionGame struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug,omitempty"`
	CoverURL     string   `json:"cover_url,omitempty"`
	Description  string   `json:"description,omitempty"`
	Rating       int      `json:"rating,omitempty"`
	ReleaseDate  string   `json:"release_date,omitempty"`
	Platforms    []string `json:"platforms"`
	Genres       []string `json:"genres"`
	Themes       []string `json:"themes"`
	GameModes    []string `json:"game_modes"`
	Companies    []string `json:"companies"`
	Screenshots  []string `json:"screenshots"`
	FinalbossURL string   `json:"finalboss_url"`
}

func (s *Server) extensionPayload(rec *igdb.GameRecord) extensionGame {
	shots := rec.Screenshots
	if len(shots) > maxExtensionScreenshots {
		shots = shots[:maxExtensionScreenshots]
	}

	return extensionGame{
		ID:           rec.ID,
		Name:         rec.Name,
		Slug:         rec.Slug,
		CoverURL:     rec.CoverURL,
		Description:  rec.Description,
		Rating:       int(math.Round(rec.Rating)),
		ReleaseDate:  rec.ReleaseDate,
		Platforms:    rec.Platforms,
		Genres:       rec.Genres,
		Themes:       rec.Themes,
		GameModes:    rec.GameModes,
		Companies:    rec.Companies,
		Screenshots:  shots,
		FinalbossURL: s.gameURL(rec),
	}
}

// gameURL points back at the site's detail page, by slug when the
// upstream provided one.
func (s *Server) gameURL(rec *igdb.GameRecord) string {
	if rec.Slug != "" {
		return fmt.Sprintf("%s/game/%s", s.SiteBaseURL, rec.Slug)
	}
	return fmt.Sprintf("%s/game/%d", s.SiteBaseURL, rec.ID)
}
