package igdb

import (
	"fmt"
	"time"
)

const imageCDN = "https://images.igdb.com/igdb/image/upload"

const (
	coverSize      = "cover_big"
	screenshotSize = "screenshot_big"
)

// ImageURL builds a fully-qualified CDN URL for a raw image identifier.
func ImageURL(size, imageID string) string {
	return fmt.Sprintf("%s/t_%s/%s.jpg", imageCDN, size, imageID)
}

// Normalize maps one raw upstream game object into a GameRecord. Pure
// function: no I/O, never fails. Malformed optional fields have
// already been narrowed away by the lenient raw types, so a partially
// populated record always comes out the other side.
func Normalize(raw RawGame) GameRecord {
	rec := GameRecord{
		ID:           raw.ID,
		Name:         string(raw.Name),
		Slug:         string(raw.Slug),
		Description:  string(raw.Summary),
		Rating:       resolveRating(raw),
		ReleaseDate:  resolveReleaseDate(raw),
		Platforms:    names(raw.Platforms),
		Genres:       names(raw.Genres),
		Themes:       names(raw.Themes),
		GameModes:    names(raw.GameModes),
		Perspectives: names(raw.PlayerPerspectives),
		Franchises:   names(raw.Franchises),
		Collections:  names(raw.Collections),
		Screenshots:  screenshotURLs(raw.Screenshots),
		Videos:       videos(raw.Videos),
		Websites:     websites(raw.Websites),
		Companies:    companyNames(raw.InvolvedCompanies),
		Publisher:    resolvePublisher(raw.InvolvedCompanies),
	}

	if raw.Cover.ImageID != "" {
		rec.CoverURL = ImageURL(coverSize, raw.Cover.ImageID)
	}

	return rec
}

// NormalizeAll maps a raw response array, preserving upstream order.
func NormalizeAll(raws []RawGame) []GameRecord {
	recs := make([]GameRecord, 0, len(raws))
	for _, raw := range raws {
		recs = append(recs, Normalize(raw))
	}
	return recs
}

// resolveRating prefers the user-aggregated rating and falls back to
// the critic-aggregated one. The raw float is kept as-is. Ratings sit
// on a 0-100 scale and the upstream omits the field rather than
// serving a literal 0, so a stored zero means absent and triggers the
// critic fallback.
func resolveRating(raw RawGame) float64 {
	if raw.Rating > 0 {
		return float64(raw.Rating)
	}
	return float64(raw.AggregatedRating)
}

// resolveReleaseDate follows the upstream resolution order: the
// top-level first-release timestamp wins; otherwise the earliest
// resolvable per-region entry; otherwise absent.
func resolveReleaseDate(raw RawGame) string {
	if raw.FirstReleaseDate > 0 {
		return time.Unix(int64(raw.FirstReleaseDate), 0).UTC().Format(time.RFC3339)
	}

	var (
		earliest int64
		found    bool
	)
	for _, rd := range raw.ReleaseDates {
		var ts int64
		switch {
		case rd.Date != nil:
			ts = *rd.Date
		case rd.Year != nil && *rd.Year > 0:
			ts = time.Date(int(*rd.Year), time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
		default:
			continue
		}
		if !found || ts < earliest {
			earliest, found = ts, true
		}
	}
	if !found {
		return ""
	}
	return time.Unix(earliest, 0).UTC().Format(time.RFC3339)
}

// resolvePublisher picks the first entry flagged as publisher, falling
// back to the first entry with any company name.
func resolvePublisher(companies []RawInvolvedCompany) string {
	for _, c := range companies {
		if c.Publisher && c.Name != "" {
			return c.Name
		}
	}
	for _, c := range companies {
		if c.Name != "" {
			return c.Name
		}
	}
	return ""
}

func companyNames(companies []RawInvolvedCompany) []string {
	out := make([]string, 0, len(companies))
	for _, c := range companies {
		if c.Name != "" {
			out = append(out, c.Name)
		}
	}
	return out
}

func names(list NamedList) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		if e.Name != "" {
			out = append(out, e.Name)
		}
	}
	return out
}

func screenshotURLs(list rawImageList) []string {
	out := make([]string, 0, len(list))
	for _, img := range list {
		if img.ImageID != "" {
			out = append(out, ImageURL(screenshotSize, img.ImageID))
		}
	}
	return out
}

func videos(list rawVideoList) []Video {
	out := make([]Video, 0, len(list))
	for _, v := range list {
		if v.VideoID == "" && v.Name == "" {
			continue
		}
		out = append(out, Video{ID: v.ID, Name: v.Name, VideoID: v.VideoID})
	}
	return out
}

func websites(list rawWebsiteList) []Website {
	out := make([]Website, 0, len(list))
	for _, w := range list {
		if w.URL == "" {
			continue
		}
		out = append(out, Website{URL: w.URL, Category: w.Category})
	}
	return out
}
