package services

import (
	"labman/archive"
	"labman/authorship"
	"labman/monitoring"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

type BackendService struct {
	authorships  AuthorshipService
	persons      PersonService
	publications PublicationService
}

// NewBackend wires the REST services around the authorship engine. The merge
// archive may be nil.
func NewBackend(db *gorm.DB, mergeArchive *archive.MergeArchive) *BackendService {
	engine := authorship.NewService(db, mergeArchive)

	return &BackendService{
		authorships:  AuthorshipService{engine: engine, archive: mergeArchive},
		persons:      PersonService{db: db, engine: engine},
		publications: PublicationService{db: db, engine: engine},
	}
}

func (s *BackendService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(monitoring.HandlerMetrics)

	r.Mount("/authorship", s.authorships.Routes())
	r.Mount("/person", s.persons.Routes())
	r.Mount("/publication", s.publications.Routes())

	return r
}
