package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

type Status string

const (
	StatusPlanning Status = "Planning"
	StatusExplored Status = "Explored"
)

func (s Status) Valid() bool {
	return s == StatusPlanning || s == StatusExplored
}

type Category string

const (
	CategoryAttraction Category = "Attraction"
	CategoryRestaurant Category = "Restaurant"
	CategoryHotel      Category = "Hotel"
	CategoryActivity   Category = "Activity"
	CategoryShopping   Category = "Shopping"
	CategoryNightlife  Category = "Nightlife"
	CategoryNature     Category = "Nature"
	CategoryTransport  Category = "Transport"
	CategoryOther      Category = "Other"
)

var categories = map[Category]struct{}{
	CategoryAttraction: {},
	CategoryRestaurant: {},
	CategoryHotel:      {},
	CategoryActivity:   {},
	CategoryShopping:   {},
	CategoryNightlife:  {},
	CategoryNature:     {},
	CategoryTransport:  {},
	CategoryOther:      {},
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

type User struct {
	UserID       string     `json:"id" db:"user_id"`
	FirstName    string     `json:"firstName" db:"first_name"`
	LastName     string     `json:"lastName" db:"last_name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash *string    `json:"-" db:"password_hash"`
	Gender       string     `json:"gender" db:"gender"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Bio          string     `json:"bio" db:"bio"`
	ProfileImage string     `json:"profileImage" db:"profile_image"`
	PhoneNumber  string     `json:"phoneNumber" db:"phone_number"`
	DateJoined   time.Time  `json:"dateJoined" db:"date_joined"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" db:"last_login"`
}

func (u *User) DisplayName() string {
	return DisplayName(u.FirstName, u.LastName)
}

func DisplayName(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}

type Book struct {
	BookID      string         `json:"id" db:"book_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Tags        pq.StringArray `json:"tags" db:"tags"`
	ImageURL    string         `json:"imageUrl" db:"image_url"`
	Visibility  Visibility     `json:"visibility" db:"visibility"`
	Status      Status         `json:"status" db:"status"`
	AddedByID   string         `json:"addedById" db:"added_by_id"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
	Pages       []Page         `json:"pages" db:"-"`
}

type BookSummary struct {
	BookID     string     `json:"id" db:"book_id"`
	Title      string     `json:"title" db:"title"`
	ImageURL   string     `json:"imageUrl" db:"image_url"`
	Visibility Visibility `json:"visibility" db:"visibility"`
	Status     Status     `json:"status" db:"status"`
}

// PublicBook is a book as it appears in the discovery feed.
type PublicBook struct {
	BookID    string `json:"id" db:"book_id"`
	Title     string `json:"title" db:"title"`
	ImageURL  string `json:"imageUrl" db:"image_url"`
	FirstName string `json:"-" db:"first_name"`
	LastName  string `json:"-" db:"last_name"`
	AddedBy   string `json:"addedBy" db:"-"`
}

type Page struct {
	PageID      string         `json:"id" db:"page_id"`
	BookID      string         `json:"bookId" db:"book_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Tips        string         `json:"tips" db:"tips"`
	Images      pq.StringArray `json:"images" db:"images"`
	Status      Status         `json:"status" db:"status"`
	Location    *Location      `json:"location,omitempty" db:"location"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
	Itineraries []ItineraryRef `json:"itineraries" db:"-"`
}

type Itinerary struct {
	ItineraryID string         `json:"id" db:"itinerary_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Caption     string         `json:"caption" db:"caption"`
	Category    Category       `json:"category" db:"category"`
	Images      pq.StringArray `json:"images" db:"images"`
	Location    Location       `json:"location" db:"location"`
	Rating      float64        `json:"rating" db:"rating"`
	Views       int            `json:"views" db:"views"`
	AddedByID   string         `json:"addedById" db:"added_by_id"`
	PageID      *string        `json:"pageId" db:"page_id"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// ItineraryRef is the slice of an itinerary embedded in book and page views.
type ItineraryRef struct {
	ItineraryID string   `json:"id" db:"itinerary_id"`
	PageID      string   `json:"-" db:"page_id"`
	Title       string   `json:"title" db:"title"`
	Category    Category `json:"category" db:"category"`
	Location    Location `json:"location" db:"location"`
}

// DiscoveryItinerary is an itinerary as it appears in the discovery feed.
type DiscoveryItinerary struct {
	ItineraryID string         `json:"id" db:"itinerary_id"`
	Title       string         `json:"title" db:"title"`
	Category    Category       `json:"category" db:"category"`
	Location    Location       `json:"location" db:"location"`
	Images      pq.StringArray `json:"-" db:"images"`
	Image       string         `json:"image" db:"-"`
	Rating      float64        `json:"rating" db:"rating"`
	Views       int            `json:"views" db:"views"`
	FirstName   string         `json:"-" db:"first_name"`
	LastName    string         `json:"-" db:"last_name"`
	AddedBy     string         `json:"addedBy" db:"-"`
}

type Experience struct {
	ExperienceID string         `json:"id" db:"experience_id"`
	ItineraryID  string         `json:"itineraryId" db:"itinerary_id"`
	UserID       string         `json:"userId" db:"user_id"`
	Comment      string         `json:"comment" db:"comment"`
	UpVotes      pq.StringArray `json:"upVotes" db:"up_votes"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
}

// ExperienceWithAuthor joins an experience with its author's profile fields.
type ExperienceWithAuthor struct {
	Experience
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	ProfileImage string `db:"profile_image"`
}
