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

type PersonService struct {
	db     *gorm.DB
	engine *authorship.Service
}

func (s *PersonService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/create", WrapRestHandler(s.Create))
	r.Get("/duplicates", WrapRestHandler(s.Duplicates))
	r.Get("/{person_id}", WrapRestHandler(s.Get))
	r.Get("/{person_id}/publications", WrapRestHandler(s.Publications))
	r.Delete("/{person_id}", WrapRestHandler(s.Delete))

	return r
}

func toApiPerson(person schema.Person) api.Person {
	return api.Person{
		Id:        person.Id,
		FirstName: person.FirstName,
		LastName:  person.LastName,
		Email:     person.Email,
	}
}

func (s *PersonService) Create(r *http.Request) (any, error) {
	params, err := ParseRequestBody[api.CreatePersonRequest](r)
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	if params.FirstName == "" || params.LastName == "" {
		return nil, CodedError(errors.New("FirstName and LastName must be specified"), http.StatusUnprocessableEntity)
	}

	person := schema.Person{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
	}
	if err := s.db.Create(&person).Error; err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	return api.CreateResponse{Id: person.Id}, nil
}

func (s *PersonService) Get(r *http.Request) (any, error) {
	personId, err := URLParamUint(r, "person_id")
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	var person schema.Person
	if err := s.db.First(&person, personId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, CodedError(err, http.StatusNotFound)
		}
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	return toApiPerson(person), nil
}

func (s *PersonService) Publications(r *http.Request) (any, error) {
	personId, err := URLParamUint(r, "person_id")
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	publications, err := s.engine.GetPublicationsFor(personId)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	result := make([]api.Publication, 0, len(publications))
	for _, publication := range publications {
		result = append(result, toApiPublication(publication))
	}
	return result, nil
}

func (s *PersonService) Delete(r *http.Request) (any, error) {
	personId, err := URLParamUint(r, "person_id")
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	removed, err := s.engine.RemovePerson(personId)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	return api.SuccessResponse{Success: removed}, nil
}

func (s *PersonService) Duplicates(r *http.Request) (any, error) {
	groups, err := s.engine.FindDuplicatePersons()
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	result := make([]api.DuplicateGroup, 0, len(groups))
	for _, group := range groups {
		persons := make([]api.Person, 0, len(group))
		for _, person := range group {
			persons = append(persons, toApiPerson(person))
		}
		result = append(result, api.DuplicateGroup{Persons: persons})
	}
	return result, nil
}
