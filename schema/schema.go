package schema

import (
	"time"

	"github.com/google/uuid"
)

type Person struct {
	Id uint `gorm:"primaryKey"`

	FirstName string `gorm:"size:100;not null;index:idx_person_name"`
	LastName  string `gorm:"size:100;not null;index:idx_person_name"`
	Email     string `gorm:"size:200"`

	Authorships []Authorship `gorm:"foreignKey:PersonId"`
	Memberships []Membership `gorm:"foreignKey:PersonId"`
}

func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

type Publication struct {
	Id uint `gorm:"primaryKey"`

	Title string          `gorm:"size:500;not null"`
	Type  PublicationType `gorm:"size:40;not null"`
	Year  int

	Authorships []Authorship `gorm:"foreignKey:PublicationId"`
}

// Authorship links a person to a publication at a zero-based position in the
// author list. The unique index enforces that a person cannot co-author the
// same publication twice; rank contiguity per publication is maintained by the
// authorship engine, not by the database.
type Authorship struct {
	Id uint `gorm:"primaryKey"`

	PersonId      uint `gorm:"not null;uniqueIndex:idx_authorship_person_publication"`
	PublicationId uint `gorm:"not null;uniqueIndex:idx_authorship_person_publication;index"`

	AuthorRank int `gorm:"not null"`
}

type Organization struct {
	Id uint `gorm:"primaryKey"`

	Name    string `gorm:"size:200;not null"`
	Acronym string `gorm:"size:40"`
	Country string `gorm:"size:100"`
}

type Membership struct {
	Id uint `gorm:"primaryKey"`

	PersonId       uint `gorm:"not null;index"`
	OrganizationId uint `gorm:"not null;index"`

	Status string `gorm:"size:40"`
}

// MergeLog records one merged source identity. Written by the merge engine
// after the source person has been absorbed into the target.
type MergeLog struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	TargetId uint `gorm:"not null;index"`
	SourceId uint `gorm:"not null"`

	SourceName string `gorm:"size:200"`

	Moved   int
	Dropped int

	CreatedAt time.Time
}
