package services

import (
	"errors"
	"net/http"

	"labman/api"
	"labman/authorship"
	"labman/schema"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type PublicationService struct {
	db     *gorm.DB
	engine *authorship.Service
}

func (s *PublicationService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/create", WrapRestHandler(s.Create))
	r.Get("/{publication_id}", WrapRestHandler(s.Get))
	r.Get("/{publication_id}/authors", WrapRestHandler(s.Authors))

	return r
}

func toApiPublication(publication schema.Publication) api.Publication {
	return api.Publication{
		Id:    publication.Id,
		Title: publication.Title,
		Type:  string(publication.Type),
		Label: publication.Type.Label(),
		Year:  publication.Year,
	}
}

func (s *PublicationService) Create(r *http.Request) (any, error) {
	params, err := ParseRequestBody[api.CreatePublicationRequest](r)
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	if params.Title == "" {
		return nil, CodedError(errors.New("Title must be specified"), http.StatusUnprocessableEntity)
	}

	pubType := schema.PublicationType(params.Type)
	if params.Type == "" {
		pubType = schema.OtherPublication
	} else if !pubType.Valid() {
		return nil, CodedError(errors.New("invalid publication Type"), http.StatusUnprocessableEntity)
	}

	publication := schema.Publication{
		Title: params.Title,
		Type:  pubType,
		Year:  params.Year,
	}
	if err := s.db.Create(&publication).Error; err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	return api.CreateResponse{Id: publication.Id}, nil
}

func (s *PublicationService) Get(r *http.Request) (any, error) {
	publicationId, err := URLParamUint(r, "publication_id")
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	var publication schema.Publication
	if err := s.db.First(&publication, publicationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, CodedError(err, http.StatusNotFound)
		}
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	return toApiPublication(publication), nil
}

// Authors replies the author list ordered by rank. Unknown publication ids
// reply an empty list rather than an error, so the UI can render "no
// authors" without special cases.
func (s *PublicationService) Authors(r *http.Request) (any, error) {
	publicationId, err := URLParamUint(r, "publication_id")
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	authorships, err := s.engine.GetAuthorshipsFor(publicationId)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}
	authors, err := s.engine.GetAuthorsFor(publicationId)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	result := make([]api.AuthorListEntry, 0, len(authors))
	for i, author := range authors {
		entry := api.AuthorListEntry{Person: toApiPerson(author)}
		if i < len(authorships) {
			entry.Rank = authorships[i].AuthorRank
		}
		result = append(result, entry)
	}
	return result, nil
}
