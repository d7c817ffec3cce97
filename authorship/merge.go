package authorship

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"labman/archive"
	"labman/names"
	"labman/schema"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PersonSelector disambiguates between several persons matching the same
// name. A nil selector picks the first match.
type PersonSelector func(candidates []schema.Person) *schema.Person

// MergePersons folds the source persons into the target person and replies
// how many sources were actually merged. Unknown target or source ids and
// self-merges contribute 0; they are not errors.
//
// The merge is applied source by source, authorship by authorship. A failure
// partway through leaves the already-processed sources merged; the returned
// count reflects the partial progress.
func (s *Service) MergePersons(targetId uint, sourceIds ...uint) (int, error) {
	target, err := s.findPerson(targetId)
	if err != nil {
		return 0, err
	}
	if target == nil {
		return 0, nil
	}

	merged := 0
	for _, sourceId := range sourceIds {
		if sourceId == target.Id {
			continue
		}

		source, err := s.findPerson(sourceId)
		if err != nil {
			return merged, err
		}
		if source == nil {
			continue
		}

		if err := s.mergeInto(source, target); err != nil {
			return merged, err
		}
		merged++
	}

	return merged, nil
}

// MergePersonsByName resolves the source and target persons by their
// first/last names and merges the source into the target. Names that resolve
// to nobody, or to the same person, contribute 0.
func (s *Service) MergePersonsByName(sourceFirst, sourceLast, targetFirst, targetLast string, selector PersonSelector) (int, error) {
	source, err := s.resolvePerson(sourceFirst, sourceLast, selector)
	if err != nil {
		return 0, err
	}
	target, err := s.resolvePerson(targetFirst, targetLast, selector)
	if err != nil {
		return 0, err
	}

	if source == nil || target == nil || source.Id == target.Id {
		return 0, nil
	}

	return s.MergePersons(target.Id, source.Id)
}

// MergeAuthors merges the person named oldAuthor into the person named
// newAuthor. Both names are free text in either "First Last" or "Last, First"
// form; a malformed name or a pair mixing the two forms is a soft failure
// contributing 0.
func (s *Service) MergeAuthors(oldAuthor, newAuthor string) (int, error) {
	oldName, err := names.Parse(oldAuthor)
	if err != nil {
		slog.Warn("cannot merge authors, unparsable name", "name", oldAuthor, "error", err)
		return 0, nil
	}
	newName, err := names.Parse(newAuthor)
	if err != nil {
		slog.Warn("cannot merge authors, unparsable name", "name", newAuthor, "error", err)
		return 0, nil
	}

	if !names.Consistent(oldName, newName) {
		slog.Warn("cannot merge authors, inconsistent name ordering", "old", oldAuthor, "new", newAuthor)
		return 0, nil
	}

	return s.MergePersonsByName(oldName.First, oldName.Last, newName.First, newName.Last, nil)
}

func (s *Service) findPerson(personId uint) (*schema.Person, error) {
	var person schema.Person
	err := s.db.First(&person, personId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding person: %w", err)
	}
	return &person, nil
}

func (s *Service) resolvePerson(firstName, lastName string, selector PersonSelector) (*schema.Person, error) {
	candidates, err := s.FindPersonsByName(firstName, lastName)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	if selector != nil {
		return selector(candidates), nil
	}
	return &candidates[0], nil
}

// mergeInto moves the source person's authorships onto the target, reassigns
// memberships, and deletes the source. Each authorship is deleted before the
// replacement is inserted so the unique (person, publication) index is never
// transiently violated. Ranks carry over unchanged; when the target already
// authors the publication the source's authorship is simply dropped and no
// slot is renumbered, since the rank is replaced rather than vacated.
func (s *Service) mergeInto(source, target *schema.Person) error {
	var authorships []schema.Authorship
	if err := s.db.Where("person_id = ?", source.Id).Find(&authorships).Error; err != nil {
		return fmt.Errorf("error listing source authorships: %w", err)
	}
	var memberships []schema.Membership
	if err := s.db.Where("person_id = ?", source.Id).Find(&memberships).Error; err != nil {
		return fmt.Errorf("error listing source memberships: %w", err)
	}

	mergeId := uuid.New()

	if s.archive != nil {
		snapshot := archive.Snapshot{
			MergeId:     mergeId,
			TargetId:    target.Id,
			Person:      *source,
			Authorships: authorships,
			Memberships: memberships,
			ArchivedAt:  time.Now(),
		}
		if err := s.archive.Put(snapshot); err != nil {
			return err
		}
	}

	moved, dropped := 0, 0
	for _, authorship := range authorships {
		if err := s.db.Delete(&schema.Authorship{}, authorship.Id).Error; err != nil {
			return fmt.Errorf("error deleting source authorship: %w", err)
		}

		taken, err := exists[schema.Authorship](s.db, "person_id = ? AND publication_id = ?", target.Id, authorship.PublicationId)
		if err != nil {
			return err
		}
		if taken {
			// target already co-authors this publication, drop the duplicate
			dropped++
			continue
		}

		replacement := schema.Authorship{
			PersonId:      target.Id,
			PublicationId: authorship.PublicationId,
			AuthorRank:    authorship.AuthorRank,
		}
		if err := s.db.Create(&replacement).Error; err != nil {
			return fmt.Errorf("error reassigning authorship: %w", err)
		}
		moved++
	}

	err := s.db.Model(&schema.Membership{}).
		Where("person_id = ?", source.Id).
		Update("person_id", target.Id).Error
	if err != nil {
		return fmt.Errorf("error reassigning memberships: %w", err)
	}

	if _, err := s.RemovePerson(source.Id); err != nil {
		return err
	}

	log := schema.MergeLog{
		Id:         mergeId,
		TargetId:   target.Id,
		SourceId:   source.Id,
		SourceName: source.FullName(),
		Moved:      moved,
		Dropped:    dropped,
		CreatedAt:  time.Now(),
	}
	if err := s.db.Create(&log).Error; err != nil {
		return fmt.Errorf("error recording merge: %w", err)
	}

	slog.Info("merged person", "merge_id", mergeId, "source_id", source.Id, "target_id", target.Id,
		"moved", moved, "dropped", dropped)

	return nil
}
