package authorship

import (
	"errors"
	"fmt"

	"labman/names"
	"labman/schema"

	"gorm.io/gorm"
)

// FindPersonsByName replies every person with exactly the given first and
// last name. Several rows for the same name are how duplicate identities
// manifest; the merge engine exists to fold them back together.
func (s *Service) FindPersonsByName(firstName, lastName string) ([]schema.Person, error) {
	persons := []schema.Person{}
	err := s.db.Where("first_name = ? AND last_name = ?", firstName, lastName).Find(&persons).Error
	if err != nil {
		return nil, fmt.Errorf("error finding persons by name: %w", err)
	}
	return persons, nil
}

// RemovePerson deletes the person and its dependent rows. Each of the
// person's authorships is removed through RemoveAuthorship so the rank
// numbering of every affected publication stays contiguous. Replies false if
// the person is unknown.
func (s *Service) RemovePerson(personId uint) (bool, error) {
	var person schema.Person
	err := s.db.First(&person, personId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error finding person: %w", err)
	}

	var authorships []schema.Authorship
	if err := s.db.Where("person_id = ?", personId).Find(&authorships).Error; err != nil {
		return false, fmt.Errorf("error listing authorships: %w", err)
	}

	for _, authorship := range authorships {
		if _, err := s.RemoveAuthorship(personId, authorship.PublicationId); err != nil {
			return false, err
		}
	}

	if err := s.db.Where("person_id = ?", personId).Delete(&schema.Membership{}).Error; err != nil {
		return false, fmt.Errorf("error deleting memberships: %w", err)
	}

	if err := s.db.Delete(&schema.Person{}, personId).Error; err != nil {
		return false, fmt.Errorf("error deleting person: %w", err)
	}

	return true, nil
}

// FindDuplicatePersons groups persons whose names are similar enough to
// plausibly denote the same human. Each group has at least two members and a
// person appears in at most one group.
func (s *Service) FindDuplicatePersons() ([][]schema.Person, error) {
	var persons []schema.Person
	if err := s.db.Order("id ASC").Find(&persons).Error; err != nil {
		return nil, fmt.Errorf("error listing persons: %w", err)
	}

	groups := [][]schema.Person{}
	used := make(map[uint]bool)

	for i, reference := range persons {
		if used[reference.Id] {
			continue
		}

		group := []schema.Person{reference}
		for _, other := range persons[i+1:] {
			if used[other.Id] {
				continue
			}
			if names.Similar(reference.FirstName, reference.LastName, other.FirstName, other.LastName) {
				group = append(group, other)
				used[other.Id] = true
			}
		}

		if len(group) > 1 {
			groups = append(groups, group)
		}
	}

	return groups, nil
}
