package storage

import (
	"time"

	"gorm.io/datatypes"
)

// ContactSubmission is a room booking enquiry. Column names keep the site's
// historical camelCase spelling; the search endpoint echoes them verbatim.
type ContactSubmission struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	FirstName      string    `gorm:"column:firstName" json:"firstName"`
	LastName       string    `gorm:"column:lastName" json:"lastName"`
	Email          string    `gorm:"column:email" json:"email"`
	Phone          string    `gorm:"column:phone" json:"phone"`
	RoomName       string    `gorm:"column:roomName" json:"roomName"`
	Checkin        string    `gorm:"column:checkin" json:"checkin"`
	Checkout       string    `gorm:"column:checkout" json:"checkout"`
	Adults         int       `gorm:"column:adults" json:"adults"`
	Children       int       `gorm:"column:children" json:"children"`
	BasePrice      float64   `gorm:"column:basePrice" json:"basePrice"`
	NightsReserved int       `gorm:"column:nightsReserved" json:"nightsReserved"`
	WantSafaris    bool      `gorm:"column:wantSafaris" json:"wantSafaris"`
	Transfer       bool      `gorm:"column:transfer" json:"transfer"`
	Message        string    `gorm:"column:message" json:"message"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }

// DiningSubmission is a restaurant table reservation.
type DiningSubmission struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	FirstName  string    `gorm:"column:first_name" json:"first_name"`
	LastName   string    `gorm:"column:last_name" json:"last_name"`
	Email      string    `gorm:"column:email" json:"email"`
	Phone      string    `gorm:"column:phone" json:"phone"`
	OutletName string    `gorm:"column:outletname" json:"outletname"`
	DiningDate string    `gorm:"column:dining_date" json:"dining_date"`
	DiningTime string    `gorm:"column:dining_time" json:"dining_time"`
	Adults     int       `gorm:"column:adults" json:"adults"`
	Children   int       `gorm:"column:children" json:"children"`
	Message    string    `gorm:"column:message" json:"message"`
	Status     string    `gorm:"column:status" json:"status"`
}

func (DiningSubmission) TableName() string { return "dining_submissions" }

// GeneralEnquiry covers everything the contact forms don't.
type GeneralEnquiry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	FirstName     string    `gorm:"column:first_name" json:"first_name"`
	LastName      string    `gorm:"column:last_name" json:"last_name"`
	Email         string    `gorm:"column:email" json:"email"`
	Phone         string    `gorm:"column:phone" json:"phone"`
	EnquiryType   string    `gorm:"column:enquiry_type" json:"enquiry_type"`
	Message       string    `gorm:"column:message" json:"message"`
	Status        string    `gorm:"column:status" json:"status"`
	AssignedTo    string    `gorm:"column:assigned_to" json:"assigned_to"`
	InternalNotes string    `gorm:"column:internal_notes" json:"internal_notes"`
}

func (GeneralEnquiry) TableName() string { return "general_enquiries" }

// CorporateEnquiry is an event/offsite request; note the distinct timestamp column.
type CorporateEnquiry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SubmittedAt   time.Time `gorm:"column:submitted_at" json:"submitted_at"`
	ContactName   string    `gorm:"column:contact_name" json:"contact_name"`
	CompanyName   string    `gorm:"column:company_name" json:"company_name"`
	Email         string    `gorm:"column:email" json:"email"`
	Phone         string    `gorm:"column:phone" json:"phone"`
	EventType     string    `gorm:"column:event_type" json:"event_type"`
	AttendeeCount int       `gorm:"column:attendee_count" json:"attendee_count"`
	PreferredDate string    `gorm:"column:preferred_date" json:"preferred_date"`
	Duration      string    `gorm:"column:duration" json:"duration"`
	Message       string    `gorm:"column:message" json:"message"`
}

func (CorporateEnquiry) TableName() string { return "corporate_enquiries" }

// Review is a guest review imported from an external scrape feed. SourceID
// unifies the per-platform review ids so upserts stay idempotent.
type Review struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Source           string         `gorm:"column:source" json:"source"`
	SourceID         string         `gorm:"column:source_id;uniqueIndex" json:"source_id"`
	ReviewerName     string         `gorm:"column:reviewer_name" json:"reviewer_name"`
	ReviewerLocation string         `gorm:"column:reviewer_location" json:"reviewer_location"`
	Rating           int            `gorm:"column:rating" json:"rating"`
	ReviewTitle      string         `gorm:"column:review_title" json:"review_title"`
	ReviewText       *string        `gorm:"column:review_text" json:"review_text"`
	ReviewURL        string         `gorm:"column:review_url" json:"review_url"`
	PublishedDate    time.Time      `gorm:"column:published_date" json:"published_date"`
	ImportBatch      string         `gorm:"column:import_batch" json:"import_batch"`
	Raw              datatypes.JSON `gorm:"column:raw" json:"-"`
}

func (Review) TableName() string { return "reviews" }
