package services

import (
	"errors"
	"fmt"
	"net/http"

	"labman/api"
	"labman/archive"
	"labman/authorship"
	"labman/monitoring"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AuthorshipService struct {
	engine  *authorship.Service
	archive *archive.MergeArchive
}

func (s *AuthorshipService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/add", WrapRestHandler(s.Add))
	r.Post("/remove", WrapRestHandler(s.Remove))
	r.Post("/update", WrapRestHandler(s.Update))

	r.Post("/merge", WrapRestHandler(s.MergePersons))
	r.Post("/merge-names", WrapRestHandler(s.MergeByName))
	r.Post("/merge-authors", WrapRestHandler(s.MergeAuthors))
	r.Get("/merge/{merge_id}", WrapRestHandler(s.GetMergeSnapshot))

	return r
}

func (s *AuthorshipService) Add(r *http.Request) (any, error) {
	params, err := ParseRequestBody[api.AuthorshipRequest](r)
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	var added bool
	if params.Rank != nil {
		added, err = s.engine.AddAuthorshipAtRank(params.PersonId, params.PublicationId, *params.Rank)
	} else {
		added, err = s.engine.AddAuthorship(params.PersonId, params.PublicationId)
	}
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	if added {
		monitoring.AuthorshipsCreated.Inc()
	}

	return api.SuccessResponse{Success: added}, nil
}

func (s *AuthorshipService) Remove(r *http.Request) (any, error) {
	params, err := ParseRequestBody[api.AuthorshipRequest](r)
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	removed, err := s.engine.RemoveAuthorship(params.PersonId, params.PublicationId)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	if removed {
		monitoring.AuthorshipsRemoved.Inc()
	}

	return api.SuccessResponse{Success: removed}, nil
}

func (s *AuthorshipService) Update(r *http.Request) (any, error) {
	params, err := ParseRequestBody[api.AuthorshipRequest](r)
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	if params.Rank == nil {
		return nil, CodedError(errors.New("Rank must be specified"), http.StatusUnprocessableEntity)
	}

	updated, err := s.engine.UpdateAuthorship(params.PersonId, params.PublicationId, *params.Rank)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	return api.SuccessResponse{Success: updated}, nil
}

func (s *AuthorshipService) MergePersons(r *http.Request) (any, error) {
	params, err := ParseRequestBody[api.MergePersonsRequest](r)
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	if params.TargetId == 0 {
		return nil, CodedError(errors.New("TargetId must be specified"), http.StatusUnprocessableEntity)
	}
	if len(params.SourceIds) == 0 {
		return nil, CodedError(errors.New("SourceIds must be specified"), http.StatusUnprocessableEntity)
	}

	merged, err := s.engine.MergePersons(params.TargetId, params.SourceIds...)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	monitoring.PersonsMerged.Add(float64(merged))

	return api.MergeResponse{Merged: merged}, nil
}

func (s *AuthorshipService) MergeByName(r *http.Request) (any, error) {
	params, err := ParseRequestBody[api.MergeByNameRequest](r)
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	merged, err := s.engine.MergePersonsByName(
		params.SourceFirstName, params.SourceLastName,
		params.TargetFirstName, params.TargetLastName, nil)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	monitoring.PersonsMerged.Add(float64(merged))

	return api.MergeResponse{Merged: merged}, nil
}

func (s *AuthorshipService) MergeAuthors(r *http.Request) (any, error) {
	params, err := ParseRequestBody[api.MergeAuthorsRequest](r)
	if err != nil {
		return nil, CodedError(err, http.StatusBadRequest)
	}

	merged, err := s.engine.MergeAuthors(params.OldAuthor, params.NewAuthor)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}

	monitoring.PersonsMerged.Add(float64(merged))

	return api.MergeResponse{Merged: merged}, nil
}

func (s *AuthorshipService) GetMergeSnapshot(r *http.Request) (any, error) {
	if s.archive == nil {
		return nil, CodedError(errors.New("merge archive is not enabled"), http.StatusNotFound)
	}

	param := chi.URLParam(r, "merge_id")
	mergeId, err := uuid.Parse(param)
	if err != nil {
		return nil, CodedError(fmt.Errorf("invalid merge id '%v': %w", param, err), http.StatusBadRequest)
	}

	snapshot, err := s.archive.Get(mergeId)
	if err != nil {
		return nil, CodedError(err, http.StatusInternalServerError)
	}
	if snapshot == nil {
		return nil, CodedError(fmt.Errorf("no snapshot for merge %v", mergeId), http.StatusNotFound)
	}

	publications := make([]uint, 0, len(snapshot.Authorships))
	for _, authorship := range snapshot.Authorships {
		publications = append(publications, authorship.PublicationId)
	}

	return api.MergeSnapshot{
		MergeId:  snapshot.MergeId,
		TargetId: snapshot.TargetId,
		Person: api.Person{
			Id:        snapshot.Person.Id,
			FirstName: snapshot.Person.FirstName,
			LastName:  snapshot.Person.LastName,
			Email:     snapshot.Person.Email,
		},
		Publications: publications,
		ArchivedAt:   snapshot.ArchivedAt,
	}, nil
}
