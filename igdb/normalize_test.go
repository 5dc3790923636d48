package igdb

import (
	"encoding/json"
	"testing"
	"time"
)

func mustRaw(t *testing.T, src string) RawGame {
	t.Helper()
	var raw RawGame
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("unmarshal raw game: %v", err)
	}
	return raw
}

func TestNormalizeCoverURL(t *testing.T) {
	raw := mustRaw(t, `{"id": 1, "name": "Test", "cover": {"image_id": "abc123"}}`)
	rec := Normalize(raw)

	want := "https://images.igdb.com/igdb/image/upload/t_cover_big/abc123.jpg"
	if rec.CoverURL != want {
		t.Errorf("CoverURL = %q, want %q", rec.CoverURL, want)
	}
}

func TestNormalizeMissingCover(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"absent", `{"id": 1, "name": "Test"}`},
		{"null", `{"id": 1, "name": "Test", "cover": null}`},
		{"wrong shape", `{"id": 1, "name": "Test", "cover": 42}`},
		{"missing image_id", `{"id": 1, "name": "Test", "cover": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(mustRaw(t, tt.src))
			if rec.CoverURL != "" {
				t.Errorf("CoverURL = %q, want empty", rec.CoverURL)
			}
		})
	}
}

func TestNormalizeScreenshots(t *testing.T) {
	raw := mustRaw(t, `{"id": 1, "screenshots": [{"image_id": "s1"}, {"image_id": "s2"}, {}]}`)
	rec := Normalize(raw)

	want := []string{
		"https://images.igdb.com/igdb/image/upload/t_screenshot_big/s1.jpg",
		"https://images.igdb.com/igdb/image/upload/t_screenshot_big/s2.jpg",
	}
	if len(rec.Screenshots) != len(want) {
		t.Fatalf("got %d screenshots, want %d", len(rec.Screenshots), len(want))
	}
	for i := range want {
		if rec.Screenshots[i] != want[i] {
			t.Errorf("Screenshots[%d] = %q, want %q", i, rec.Screenshots[i], want[i])
		}
	}
}

func TestNormalizeReleaseDateTopLevel(t *testing.T) {
	raw := mustRaw(t, `{"id": 1, "first_release_date": 1700000000}`)
	rec := Normalize(raw)

	want := time.Unix(1700000000, 0).UTC().Format(time.RFC3339)
	if rec.ReleaseDate != want {
		t.Errorf("ReleaseDate = %q, want %q", rec.ReleaseDate, want)
	}
}

func TestNormalizeReleaseDateFallbackEarliest(t *testing.T) {
	// Year-only 2020 resolves to Jan 1 2020 UTC; the bare timestamp
	// 1500000000 (July 2017) is earlier and must win.
	raw := mustRaw(t, `{"id": 1, "release_dates": [{"y": 2020}, {"date": 1500000000}]}`)
	rec := Normalize(raw)

	want := time.Unix(1500000000, 0).UTC().Format(time.RFC3339)
	if rec.ReleaseDate != want {
		t.Errorf("ReleaseDate = %q, want %q", rec.ReleaseDate, want)
	}
}

func TestNormalizeReleaseDateYearOnly(t *testing.T) {
	raw := mustRaw(t, `{"id": 1, "release_dates": [{"y": 2020}]}`)
	rec := Normalize(raw)

	want := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	if rec.ReleaseDate != want {
		t.Errorf("ReleaseDate = %q, want %q", rec.ReleaseDate, want)
	}
}

func TestNormalizeReleaseDateEpoch(t *testing.T) {
	// 1970 releases land exactly on Unix zero and must still resolve.
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"year 1970", `{"id": 1, "release_dates": [{"y": 1970}]}`, "1970-01-01T00:00:00Z"},
		{"zero timestamp", `{"id": 1, "release_dates": [{"date": 0}]}`, "1970-01-01T00:00:00Z"},
		{"epoch beats later year", `{"id": 1, "release_dates": [{"y": 2020}, {"y": 1970}]}`, "1970-01-01T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(mustRaw(t, tt.src))
			if rec.ReleaseDate != tt.want {
				t.Errorf("ReleaseDate = %q, want %q", rec.ReleaseDate, tt.want)
			}
		})
	}
}

func TestNormalizeReleaseDateAbsent(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no fields", `{"id": 1}`},
		{"empty array", `{"id": 1, "release_dates": []}`},
		{"unresolvable entries", `{"id": 1, "release_dates": [{}, {"region": 2}]}`},
		{"wrong shape", `{"id": 1, "release_dates": "soon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(mustRaw(t, tt.src))
			if rec.ReleaseDate != "" {
				t.Errorf("ReleaseDate = %q, want empty", rec.ReleaseDate)
			}
		})
	}
}

func TestNormalizeRatingPreference(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want float64
	}{
		{"user rating preferred", `{"id": 1, "rating": 87.5, "aggregated_rating": 70}`, 87.5},
		{"critic fallback", `{"id": 1, "aggregated_rating": 70.2}`, 70.2},
		{"explicit zero user rating falls back", `{"id": 1, "rating": 0, "aggregated_rating": 70}`, 70},
		{"absent", `{"id": 1}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(mustRaw(t, tt.src))
			if rec.Rating != tt.want {
				t.Errorf("Rating = %v, want %v", rec.Rating, tt.want)
			}
		})
	}
}

func TestNormalizePublisherExtraction(t *testing.T) {
	raw := mustRaw(t, `{"id": 1, "involved_companies": [
		{"company": {"name": "A"}, "developer": true},
		{"company": {"name": "B"}, "publisher": true}
	]}`)
	rec := Normalize(raw)

	if rec.Publisher != "B" {
		t.Errorf("Publisher = %q, want %q", rec.Publisher, "B")
	}
	if len(rec.Companies) != 2 || rec.Companies[0] != "A" || rec.Companies[1] != "B" {
		t.Errorf("Companies = %v, want [A B]", rec.Companies)
	}
}

func TestNormalizePublisherFallbackFirstNamed(t *testing.T) {
	raw := mustRaw(t, `{"id": 1, "involved_companies": [
		{"developer": true},
		{"company": {"name": "C"}, "developer": true}
	]}`)
	rec := Normalize(raw)

	if rec.Publisher != "C" {
		t.Errorf("Publisher = %q, want %q", rec.Publisher, "C")
	}
}

func TestNormalizeNamedEntityMixedShapes(t *testing.T) {
	raw := mustRaw(t, `{"id": 1, "genres": ["RPG", {"name": "Adventure"}, 42, null, {"slug": "x"}]}`)
	rec := Normalize(raw)

	if len(rec.Genres) != 2 || rec.Genres[0] != "RPG" || rec.Genres[1] != "Adventure" {
		t.Errorf("Genres = %v, want [RPG Adventure]", rec.Genres)
	}
}

func TestNormalizeListsNeverNil(t *testing.T) {
	rec := Normalize(mustRaw(t, `{"id": 1, "name": "Bare"}`))

	lists := map[string]int{
		"Platforms":   len(rec.Platforms),
		"Genres":      len(rec.Genres),
		"Screenshots": len(rec.Screenshots),
		"Companies":   len(rec.Companies),
	}
	for name, n := range lists {
		if n != 0 {
			t.Errorf("%s should be empty, got %d entries", name, n)
		}
	}
	if rec.Platforms == nil || rec.Genres == nil || rec.Screenshots == nil ||
		rec.Videos == nil || rec.Websites == nil || rec.Companies == nil {
		t.Error("list fields must be non-nil empty slices")
	}
}

func TestNormalizeVideosAndWebsites(t *testing.T) {
	raw := mustRaw(t, `{"id": 1,
		"videos": [{"id": 9, "name": "Trailer", "video_id": "yt123"}, {"id": 10}],
		"websites": [{"url": "https://example.com", "category": 1}, {"category": 2}]}`)
	rec := Normalize(raw)

	if len(rec.Videos) != 1 || rec.Videos[0].VideoID != "yt123" || rec.Videos[0].Name != "Trailer" {
		t.Errorf("Videos = %+v, want one trailer entry", rec.Videos)
	}
	if len(rec.Websites) != 1 || rec.Websites[0].URL != "https://example.com" || rec.Websites[0].Category != 1 {
		t.Errorf("Websites = %+v, want one entry", rec.Websites)
	}
}

func TestNormalizeMalformedScalarsDropped(t *testing.T) {
	// A name of the wrong type drops out without failing the record.
	raw := mustRaw(t, `{"id": 7, "name": 42, "summary": "fine", "rating": "high"}`)
	rec := Normalize(raw)

	if rec.ID != 7 {
		t.Errorf("ID = %d, want 7", rec.ID)
	}
	if rec.Name != "" {
		t.Errorf("Name = %q, want empty", rec.Name)
	}
	if rec.Description != "fine" {
		t.Errorf("Description = %q, want %q", rec.Description, "fine")
	}
	if rec.Rating != 0 {
		t.Errorf("Rating = %v, want 0", rec.Rating)
	}
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	var raws []RawGame
	src := `[{"id": 3, "name": "c"}, {"id": 1, "name": "a"}, {"id": 2, "name": "b"}]`
	if err := json.Unmarshal([]byte(src), &raws); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	recs := NormalizeAll(raws)
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	for i, wantID := range []int64{3, 1, 2} {
		if recs[i].ID != wantID {
			t.Errorf("recs[%d].ID = %d, want %d", i, recs[i].ID, wantID)
		}
	}
}
