package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookStatusNotStarted = "not_started"
	BookStatusInProgress = "in_progress"
	BookStatusCompleted  = "completed"
	BookStatusOnHold     = "on_hold"
	BookStatusAbandoned  = "abandoned"
)

type Book struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title         string     `gorm:"not null;column:title" json:"title"`
	Author        string     `gorm:"column:author" json:"author"`
	ISBN          string     `gorm:"column:isbn" json:"isbn"`
	Publisher     string     `gorm:"column:publisher" json:"publisher"`
	PublishedDate *time.Time `gorm:"type:date;column:published_date" json:"published_date,omitempty"`
	PageCount     int        `gorm:"column:page_count;not null;default:0" json:"page_count"`
	Description   string     `gorm:"column:description" json:"description"`
	Status        string     `gorm:"not null;column:status;default:'not_started'" json:"status"`
	StartDate     *time.Time `gorm:"type:date;column:start_date" json:"start_date,omitempty"`
	FinishDate    *time.Time `gorm:"type:date;column:finish_date" json:"finish_date,omitempty"`
	CurrentPage   int        `gorm:"column:current_page;not null;default:0" json:"current_page"`
	Rating        *int       `gorm:"column:rating" json:"rating,omitempty"`
	Review        string     `gorm:"column:review" json:"review"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Book) TableName() string { return "book" }

// ProgressPercentage reports how far through the book the reader is, 0-100.
func (b *Book) ProgressPercentage() int {
	if b.PageCount <= 0 || b.CurrentPage <= 0 {
		return 0
	}
	pct := b.CurrentPage * 100 / b.PageCount
	if pct > 100 {
		return 100
	}
	return pct
}

type BookNote struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookID     uuid.UUID `gorm:"type:uuid;not null;index" json:"book_id"`
	Book       *Book     `gorm:"constraint:OnDelete:CASCADE;foreignKey:BookID;references:ID" json:"book,omitempty"`
	Content    string    `gorm:"not null;column:content" json:"content"`
	PageNumber int       `gorm:"column:page_number;not null;default:0" json:"page_number"`
	Highlight  bool      `gorm:"column:highlight;not null;default:false" json:"highlight"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (BookNote) TableName() string { return "book_note" }
