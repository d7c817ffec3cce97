package api

import (
	"time"

	"github.com/google/uuid"
)

type Person struct {
	Id        uint
	FirstName string
	LastName  string
	Email     string
}

type Publication struct {
	Id    uint
	Title string
	Type  string
	Label string
	Year  int
}

type CreatePersonRequest struct {
	FirstName string
	LastName  string
	Email     string
}

type CreatePublicationRequest struct {
	Title string
	Type  string
	Year  int
}

type CreateResponse struct {
	Id uint
}

type AuthorshipRequest struct {
	PersonId      uint
	PublicationId uint

	// Rank is the requested author position. Nil means append as last
	// author for add requests; it is required for update requests.
	Rank *int
}

type SuccessResponse struct {
	Success bool
}

type AuthorListEntry struct {
	Person Person
	Rank   int
}

type MergePersonsRequest struct {
	TargetId  uint
	SourceIds []uint
}

type MergeByNameRequest struct {
	SourceFirstName string
	SourceLastName  string
	TargetFirstName string
	TargetLastName  string
}

// MergeAuthorsRequest carries free-text names, either "First Last" or
// "Last, First". Both names must use the same form.
type MergeAuthorsRequest struct {
	OldAuthor string
	NewAuthor string
}

type MergeResponse struct {
	Merged int
}

type MergeSnapshot struct {
	MergeId  uuid.UUID
	TargetId uint

	Person       Person
	Publications []uint

	ArchivedAt time.Time
}

type DuplicateGroup struct {
	Persons []Person
}
