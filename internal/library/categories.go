package library

import (
	"strings"

	"github.com/mfigueroa/lectrack/internal/apperr"
	"github.com/mfigueroa/lectrack/internal/constants"
)

// Categories returns a copy of the ordered category list. The "All"
// sentinel is a filter value, never part of the stored list.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.categories...)
}

// ActiveFilter returns the current category filter.
func (s *Store) ActiveFilter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeFilter
}

// SetActiveFilter switches the category filter. Only "All" or a stored
// category is accepted.
func (s *Store) SetActiveFilter(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name != constants.AllCategories && s.categoryIndex(name) < 0 {
		return apperr.New(apperr.KindNotFound, "category not found")
	}
	s.activeFilter = name
	s.persist(constants.CollectionActiveFilter, s.activeFilter)
	return nil
}

// AddCategory appends a new category. Duplicates, empty names and the
// sentinel are rejected.
func (s *Store) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.New(apperr.KindInvalidInput, "category name cannot be empty")
	}
	if name == constants.AllCategories {
		return apperr.New(apperr.KindInvalidInput, `"All" is a reserved category name`)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categoryIndex(name) >= 0 {
		return apperr.New(apperr.KindInvalidInput, "category already exists")
	}
	s.categories = append(s.categories, name)
	s.persist(constants.CollectionCategories, s.categories)
	return nil
}

// RenameCategory renames oldName in place and cascades the rename onto
// every video carrying it. Renaming "All", renaming onto an existing name
// and renaming a missing category are all rejected.
func (s *Store) RenameCategory(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if oldName == constants.AllCategories {
		return apperr.New(apperr.KindInvalidInput, `"All" cannot be renamed`)
	}
	if newName == "" {
		return apperr.New(apperr.KindInvalidInput, "category name cannot be empty")
	}
	if newName == constants.AllCategories {
		return apperr.New(apperr.KindInvalidInput, `"All" is a reserved category name`)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.categoryIndex(oldName)
	if idx < 0 {
		return apperr.New(apperr.KindNotFound, "category not found")
	}
	if oldName != newName && s.categoryIndex(newName) >= 0 {
		return apperr.New(apperr.KindInvalidInput, "category already exists")
	}

	s.categories[idx] = newName
	for i := range s.videos {
		if s.videos[i].Category == oldName {
			s.videos[i].Category = newName
		}
	}
	if s.activeFilter == oldName {
		s.activeFilter = newName
		s.persist(constants.CollectionActiveFilter, s.activeFilter)
	}

	s.persist(constants.CollectionCategories, s.categories)
	s.persist(constants.CollectionVideos, s.videos)
	return nil
}

// DeleteCategory removes a category and reassigns its videos to the default
// category. The sentinel and the default category itself cannot be deleted.
func (s *Store) DeleteCategory(name string) error {
	if name == constants.AllCategories {
		return apperr.New(apperr.KindInvalidInput, `"All" cannot be deleted`)
	}
	if name == constants.DefaultCategory {
		return apperr.New(apperr.KindInvalidInput, "the default category cannot be deleted")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.categoryIndex(name)
	if idx < 0 {
		return apperr.New(apperr.KindNotFound, "category not found")
	}

	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)
	if s.categoryIndex(constants.DefaultCategory) < 0 {
		s.categories = append(s.categories, constants.DefaultCategory)
	}
	for i := range s.videos {
		if s.videos[i].Category == name {
			s.videos[i].Category = constants.DefaultCategory
		}
	}
	if s.activeFilter == name {
		s.activeFilter = constants.AllCategories
		s.persist(constants.CollectionActiveFilter, s.activeFilter)
	}

	s.persist(constants.CollectionCategories, s.categories)
	s.persist(constants.CollectionVideos, s.videos)
	return nil
}

// categoryIndex must be called with the lock held.
func (s *Store) categoryIndex(name string) int {
	for i, c := range s.categories {
		if c == name {
			return i
		}
	}
	return -1
}
