package models

type ItineraryBanner struct {
	Image         string `json:"image"`
	Title         string `json:"title"`
	AddedBy       string `json:"addedBy"`
	LastUpdatedAt string `json:"lastUpdatedAt"`
}

type ItineraryHighlights struct {
	Images []string `json:"images"`
}

type ExperienceAuthor struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type ExperienceView struct {
	ID          string           `json:"id"`
	Experience  string           `json:"experience"`
	UpVotes     []string         `json:"upVotes"`
	UpvoteCount int              `json:"upvoteCount"`
	User        ExperienceAuthor `json:"user"`
}

type ItineraryDetail struct {
	ID          string              `json:"id"`
	PageID      *string             `json:"pageId"`
	Category    Category            `json:"category"`
	Location    Location            `json:"location"`
	Rating      float64             `json:"rating"`
	Views       int                 `json:"views"`
	Banner      ItineraryBanner     `json:"banner"`
	Caption     string              `json:"caption"`
	Highlights  ItineraryHighlights `json:"highlights"`
	Experiences []ExperienceView    `json:"experiences"`
}

type Discovery struct {
	Itineraries []DiscoveryItinerary `json:"itineraries"`
	PublicBooks []PublicBook         `json:"books"`
}

type UpvoteResult struct {
	Experience  *Experience `json:"experience"`
	UpvoteCount int         `json:"upvoteCount"`
	Added       bool        `json:"added"`
}

// Action is "added" or "removed".
func (r UpvoteResult) Action() string {
	if r.Added {
		return "added"
	}
	return "removed"
}

// CreatedItinerary is a new itinerary together with the experience posted with it, if any.
type CreatedItinerary struct {
	Itinerary  *Itinerary  `json:"itinerary"`
	Experience *Experience `json:"experience,omitempty"`
}
