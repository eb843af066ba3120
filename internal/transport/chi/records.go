package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	batchuc "github.com/kailas-cloud/roster/internal/usecase/batch"
	recorduc "github.com/kailas-cloud/roster/internal/usecase/record"
)

// recordHandlers serves CRUD and batch endpoints for one record kind.
type recordHandlers[T any] struct {
	s    *Server
	svc  *recorduc.Service[T]
	bulk *batchuc.Service[T]
}

func mountRecords[T any](r chi.Router, s *Server, svc *recorduc.Service[T], bulk *batchuc.Service[T]) {
	h := recordHandlers[T]{s: s, svc: svc, bulk: bulk}
	r.Post("/batch", h.batchUpsert)
	r.Delete("/batch", h.batchDelete)
	r.Put("/{id}", h.put)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

func listRecords[T any](s *Server, svc *recorduc.Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := svc.List(r.Context())
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ListResponse[T]{Items: recs, Total: len(recs)})
	}
}

// put handles PUT /{kind}/{id}. Responds 201 when the record was created.
func (h recordHandlers[T]) put(w http.ResponseWriter, r *http.Request) {
	var rec T
	if !decodeBody(w, r, &rec) {
		return
	}
	created, err := h.svc.Put(r.Context(), chi.URLParam(r, "id"), &rec)
	if err != nil {
		h.s.handleDomainError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, rec)
}

func (h recordHandlers[T]) get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h recordHandlers[T]) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h recordHandlers[T]) batchUpsert(w http.ResponseWriter, r *http.Request) {
	var req BatchUpsertRequest[T]
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "items must not be empty")
		return
	}
	results, err := h.bulk.Upsert(r.Context(), req.Items)
	if err != nil {
		h.s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse(results))
}

func (h recordHandlers[T]) batchDelete(w http.ResponseWriter, r *http.Request) {
	var req BatchDeleteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Ids) == 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "ids must not be empty")
		return
	}
	results, err := h.bulk.Delete(r.Context(), req.Ids)
	if err != nil {
		h.s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse(results))
}
