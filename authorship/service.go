// Package authorship maintains the ranked person<->publication relation: the
// per-publication author order, its queries, and the engine that merges
// duplicate person identities.
//
// Two invariants hold after every exported operation:
//
//   - a person appears at most once in a publication's author list, and
//   - the ranks of a publication's authorships are exactly 0..n-1.
package authorship

import (
	"errors"
	"fmt"

	"labman/archive"
	"labman/schema"

	"gorm.io/gorm"
)

type Service struct {
	db      *gorm.DB
	archive *archive.MergeArchive
}

// NewService creates the authorship engine. The merge archive may be nil, in
// which case merges are not snapshotted.
func NewService(db *gorm.DB, mergeArchive *archive.MergeArchive) *Service {
	return &Service{db: db, archive: mergeArchive}
}

func exists[T any](db *gorm.DB, query string, args ...any) (bool, error) {
	var model T
	err := db.Where(query, args...).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error querying %T: %w", model, err)
	}
	return true, nil
}

func (s *Service) authorCount(db *gorm.DB, publicationId uint) (int, error) {
	var count int64
	if err := db.Model(&schema.Authorship{}).Where("publication_id = ?", publicationId).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("error counting authors: %w", err)
	}
	return int(count), nil
}

// AddAuthorship appends the person as the last author of the publication.
// It replies false without mutation if the person or publication is unknown,
// or if the person already authors the publication.
func (s *Service) AddAuthorship(personId, publicationId uint) (bool, error) {
	count, err := s.authorCount(s.db, publicationId)
	if err != nil {
		return false, err
	}
	return s.AddAuthorshipAtRank(personId, publicationId, count)
}

// AddAuthorshipAtRank inserts the person at the given position in the author
// list. The rank is clamped into [0, count]; authors at or after the
// insertion point are shifted up by one.
func (s *Service) AddAuthorshipAtRank(personId, publicationId uint, rank int) (bool, error) {
	added := false

	err := s.db.Transaction(func(txn *gorm.DB) error {
		if ok, err := exists[schema.Person](txn, "id = ?", personId); err != nil || !ok {
			return err
		}
		if ok, err := exists[schema.Publication](txn, "id = ?", publicationId); err != nil || !ok {
			return err
		}
		if ok, err := exists[schema.Authorship](txn, "person_id = ? AND publication_id = ?", personId, publicationId); err != nil || ok {
			return err
		}

		count, err := s.authorCount(txn, publicationId)
		if err != nil {
			return err
		}

		if rank < 0 {
			rank = 0
		}
		if rank >= count {
			// append as last author, nothing to shift
			rank = count
		} else {
			err := txn.Model(&schema.Authorship{}).
				Where("publication_id = ? AND author_rank >= ?", publicationId, rank).
				Update("author_rank", gorm.Expr("author_rank + 1")).Error
			if err != nil {
				return fmt.Errorf("error shifting author ranks: %w", err)
			}
		}

		authorship := schema.Authorship{PersonId: personId, PublicationId: publicationId, AuthorRank: rank}
		if err := txn.Create(&authorship).Error; err != nil {
			return fmt.Errorf("error creating authorship: %w", err)
		}

		added = true
		return nil
	})

	return added, err
}

// RemoveAuthorship unlinks the person from the publication and closes the
// rank gap left by the removed author. Replies false if no such authorship
// exists.
func (s *Service) RemoveAuthorship(personId, publicationId uint) (bool, error) {
	removed := false

	err := s.db.Transaction(func(txn *gorm.DB) error {
		var authorship schema.Authorship
		err := txn.Where("person_id = ? AND publication_id = ?", personId, publicationId).First(&authorship).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error finding authorship: %w", err)
		}

		// The delete must reach the store before any dependent insert so
		// that the unique (person, publication) index never sees a
		// transient duplicate.
		if err := txn.Delete(&schema.Authorship{}, authorship.Id).Error; err != nil {
			return fmt.Errorf("error deleting authorship: %w", err)
		}

		err = txn.Model(&schema.Authorship{}).
			Where("publication_id = ? AND author_rank > ?", publicationId, authorship.AuthorRank).
			Update("author_rank", gorm.Expr("author_rank - 1")).Error
		if err != nil {
			return fmt.Errorf("error closing author rank gap: %w", err)
		}

		removed = true
		return nil
	})

	return removed, err
}

// UpdateAuthorship sets the rank of an existing authorship directly. Sibling
// ranks are not renumbered; correcting the affected siblings is the caller's
// responsibility. Replies false if no such authorship exists.
func (s *Service) UpdateAuthorship(personId, publicationId uint, newRank int) (bool, error) {
	result := s.db.Model(&schema.Authorship{}).
		Where("person_id = ? AND publication_id = ?", personId, publicationId).
		Update("author_rank", newRank)
	if result.Error != nil {
		return false, fmt.Errorf("error updating authorship: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// GetAuthorsFor replies the authors of the publication ordered by rank.
// Unknown publication ids reply an empty list.
func (s *Service) GetAuthorsFor(publicationId uint) ([]schema.Person, error) {
	persons := []schema.Person{}
	err := s.db.
		Joins("JOIN authorships ON authorships.person_id = people.id").
		Where("authorships.publication_id = ?", publicationId).
		Order("authorships.author_rank ASC").
		Find(&persons).Error
	if err != nil {
		return nil, fmt.Errorf("error listing authors: %w", err)
	}
	return persons, nil
}

// GetAuthorshipsFor replies the authorship rows of the publication ordered by
// rank.
func (s *Service) GetAuthorshipsFor(publicationId uint) ([]schema.Authorship, error) {
	authorships := []schema.Authorship{}
	err := s.db.
		Where("publication_id = ?", publicationId).
		Order("author_rank ASC").
		Find(&authorships).Error
	if err != nil {
		return nil, fmt.Errorf("error listing authorships: %w", err)
	}
	return authorships, nil
}

// GetPublicationsFor replies the publications authored by the person, in
// store order. Rank is publication scoped, so no ordering is implied here.
func (s *Service) GetPublicationsFor(personId uint) ([]schema.Publication, error) {
	publications := []schema.Publication{}
	err := s.db.
		Joins("JOIN authorships ON authorships.publication_id = publications.id").
		Where("authorships.person_id = ?", personId).
		Find(&publications).Error
	if err != nil {
		return nil, fmt.Errorf("error listing publications: %w", err)
	}
	return publications, nil
}
