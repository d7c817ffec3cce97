package versions

import (
	"gorm.io/gorm"
)

func Migration0(db *gorm.DB) error {
	type Authorship struct {
		Id uint `gorm:"primaryKey"`

		PersonId      uint `gorm:"not null;uniqueIndex:idx_authorship_person_publication"`
		PublicationId uint `gorm:"not null;uniqueIndex:idx_authorship_person_publication;index"`

		AuthorRank int `gorm:"not null"`
	}

	type Person struct {
		Id uint `gorm:"primaryKey"`

		FirstName string `gorm:"size:100;not null;index:idx_person_name"`
		LastName  string `gorm:"size:100;not null;index:idx_person_name"`
		Email     string `gorm:"size:200"`

		Authorships []Authorship `gorm:"foreignKey:PersonId"`
	}

	type Publication struct {
		Id uint `gorm:"primaryKey"`

		Title string `gorm:"size:500;not null"`
		Type  string `gorm:"size:40;not null"`
		Year  int

		Authorships []Authorship `gorm:"foreignKey:PublicationId"`
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

	return db.AutoMigrate(&Person{}, &Publication{}, &Authorship{}, &Organization{}, &Membership{})
}
