package igdb

import "encoding/json"

// GameRecord is the normalized, stable representation of one game,
// independent of upstream schema quirks. List fields are always
// non-nil; optional scalars are zero when the upstream omits them.
type GameRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	Description string `json:"description,omitempty"`
	// ReleaseDate is RFC 3339 UTC, empty when unresolvable upstream.
	ReleaseDate string `json:"release_date,omitempty"`
	// Rating is the raw 0-100 float; rounding happens at display time.
	Rating       float64   `json:"rating,omitempty"`
	Platforms    []string  `json:"platforms"`
	Genres       []string  `json:"genres"`
	Themes       []string  `json:"themes"`
	GameModes    []string  `json:"game_modes"`
	Perspectives []string  `json:"player_perspectives"`
	Franchises   []string  `json:"franchises"`
	Collections  []string  `json:"collections"`
	Screenshots  []string  `json:"screenshots"`
	Videos       []Video   `json:"videos"`
	Websites     []Website `json:"websites"`
	Companies    []string  `json:"companies"`
	Publisher    string    `json:"publisher,omitempty"`
}

// Video is one game trailer/clip entry.
type Video struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// VideoID is the external (YouTube) video identifier.
	VideoID string `json:"video_id"`
}

// Website is one external link entry.
type Website struct {
	URL      string `json:"url"`
	Category int    `json:"category"`
}

// RawGame mirrors the upstream response shape. Fields that the API
// serves inconsistently use lenient types so a single malformed field
// drops out instead of failing the whole record.
type RawGame struct {
	ID                 int64          `json:"id"`
	Name               optString      `json:"name"`
	Slug               optString      `json:"slug"`
	Summary            optString      `json:"summary"`
	Rating             optFloat       `json:"rating"`
	AggregatedRating   optFloat       `json:"aggregated_rating"`
	FirstReleaseDate   optInt         `json:"first_release_date"`
	Cover              RawImage       `json:"cover"`
	Screenshots        rawImageList   `json:"screenshots"`
	ReleaseDates       rawReleaseList `json:"release_dates"`
	InvolvedCompanies  rawCompanyList `json:"involved_companies"`
	Platforms          NamedList      `json:"platforms"`
	Genres             NamedList      `json:"genres"`
	Themes             NamedList      `json:"themes"`
	GameModes          NamedList      `json:"game_modes"`
	PlayerPerspectives NamedList      `json:"player_perspectives"`
	Franchises         NamedList      `json:"franchises"`
	Collections        NamedList      `json:"collections"`
	Videos             rawVideoList   `json:"videos"`
	Websites           rawWebsiteList `json:"websites"`
}

// NamedEntity is an upstream list element that arrives either as a
// bare string or as an object carrying a name. Anything else narrows
// to an empty name and is dropped during normalization.
type NamedEntity struct {
	Name string
}

func (n *NamedEntity) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		n.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		n.Name = obj.Name
	}
	return nil
}

// NamedList tolerates the whole field being something other than an
// array, in which case it decodes to nil.
type NamedList []NamedEntity

func (l *NamedList) UnmarshalJSON(b []byte) error {
	var entries []NamedEntity
	if err := json.Unmarshal(b, &entries); err != nil {
		*l = nil
		return nil
	}
	*l = entries
	return nil
}

// RawImage holds the raw image identifier from a cover or screenshot
// entry. Accepts either {"image_id": "x"} or a bare "x".
type RawImage struct {
	ImageID string
}

func (r *RawImage) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		r.ImageID = s
		return nil
	}
	var obj struct {
		ImageID string `json:"image_id"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		r.ImageID = obj.ImageID
	}
	return nil
}

type rawImageList []RawImage

func (l *rawImageList) UnmarshalJSON(b []byte) error {
	var entries []RawImage
	if err := json.Unmarshal(b, &entries); err != nil {
		*l = nil
		return nil
	}
	*l = entries
	return nil
}

// RawReleaseDate is one per-region release entry carrying either a
// Unix-seconds timestamp or a bare year. Pointer fields distinguish
// an absent field from a legitimate epoch value.
type RawReleaseDate struct {
	Date *int64
	Year *int64
}

func (r *RawReleaseDate) UnmarshalJSON(b []byte) error {
	var obj struct {
		Date json.RawMessage `json:"date"`
		Y    json.RawMessage `json:"y"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil
	}
	if d, ok := decodeOptInt(obj.Date); ok {
		r.Date = &d
	}
	if y, ok := decodeOptInt(obj.Y); ok {
		r.Year = &y
	}
	return nil
}

func decodeOptInt(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var i int64
	if err := json.Unmarshal(raw, &i); err != nil {
		return 0, false
	}
	return i, true
}

type rawReleaseList []RawReleaseDate

func (l *rawReleaseList) UnmarshalJSON(b []byte) error {
	var entries []RawReleaseDate
	if err := json.Unmarshal(b, &entries); err != nil {
		*l = nil
		return nil
	}
	*l = entries
	return nil
}

// RawInvolvedCompany is one involved-company entry. A malformed entry
// decodes to its zero value and is ignored.
type RawInvolvedCompany struct {
	Name      string
	Developer bool
	Publisher bool
}

func (c *RawInvolvedCompany) UnmarshalJSON(b []byte) error {
	var obj struct {
		Company   NamedEntity `json:"company"`
		Developer bool        `json:"developer"`
		Publisher bool        `json:"publisher"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		c.Name = obj.Company.Name
		c.Developer = obj.Developer
		c.Publisher = obj.Publisher
	}
	return nil
}

type rawCompanyList []RawInvolvedCompany

func (l *rawCompanyList) UnmarshalJSON(b []byte) error {
	var entries []RawInvolvedCompany
	if err := json.Unmarshal(b, &entries); err != nil {
		*l = nil
		return nil
	}
	*l = entries
	return nil
}

// RawVideo is one upstream video entry.
type RawVideo struct {
	ID      int64
	Name    string
	VideoID string
}

func (v *RawVideo) UnmarshalJSON(b []byte) error {
	var obj struct {
		ID      int64     `json:"id"`
		Name    optString `json:"name"`
		VideoID optString `json:"video_id"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		v.ID = obj.ID
		v.Name = string(obj.Name)
		v.VideoID = string(obj.VideoID)
	}
	return nil
}

type rawVideoList []RawVideo

func (l *rawVideoList) UnmarshalJSON(b []byte) error {
	var entries []RawVideo
	if err := json.Unmarshal(b, &entries); err != nil {
		*l = nil
		return nil
	}
	*l = entries
	return nil
}

// RawWebsite is one upstream website entry.
type RawWebsite struct {
	URL      string
	Category int
}

func (w *RawWebsite) UnmarshalJSON(b []byte) error {
	var obj struct {
		URL      optString `json:"url"`
		Category optInt    `json:"category"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		w.URL = string(obj.URL)
		w.Category = int(obj.Category)
	}
	return nil
}

type rawWebsiteList []RawWebsite

func (l *rawWebsiteList) UnmarshalJSON(b []byte) error {
	var entries []RawWebsite
	if err := json.Unmarshal(b, &entries); err != nil {
		*l = nil
		return nil
	}
	*l = entries
	return nil
}

// Lenient scalars: a type mismatch leaves the zero value instead of
// failing the record decode.

type optString string

func (o *optString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*o = optString(s)
	}
	return nil
}

type optFloat float64

func (o *optFloat) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*o = optFloat(f)
	}
	return nil
}

type optInt int64

func (o *optInt) UnmarshalJSON(b []byte) error {
	var i int64
	if err := json.Unmarshal(b, &i); err == nil {
		*o = optInt(i)
	}
	return nil
}
