package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"git.home.luguber.info/inful/blogcontent/internal/foundation/errors"
	"git.home.luguber.info/inful/blogcontent/internal/posts"
	"git.home.luguber.info/inful/blogcontent/internal/server/responses"
)

// Signer is implemented by sources that can fingerprint their content.
type Signer interface {
	Signature() string
}

// PostHandlers serves post data.
type PostHandlers struct {
	source       posts.Source
	errorAdapter *errors.HTTPErrorAdapter
}

// NewPostHandlers creates post handlers reading from source.
func NewPostHandlers(source posts.Source, logger *slog.Logger) *PostHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostHandlers{
		source:       source,
		errorAdapter: errors.NewHTTPErrorAdapter(logger),
	}
}

func (h *PostHandlers) signature() string {
	if s, ok := h.source.(Signer); ok {
		return s.Signature()
	}
	return ""
}

func (h *PostHandlers) respond(w http.ResponseWriter, r *http.Request, v any) {
	if err := writeJSONPretty(w, r, http.StatusOK, v); err != nil {
		internalErr := errors.WrapError(err, errors.CategoryInternal, "failed to write response").Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}

// HandleListPosts returns every post, newest first. ?tag= filters by tag.
func (h *PostHandlers) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r, h.errorAdapter) {
		return
	}
	all, err := h.source.LoadAll(r.Context())
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	tag := r.URL.Query().Get("tag")
	etag := h.signature()
	if etag != "" && tag != "" {
		etag += "-" + tag
	}
	if notModified(w, r, etag) {
		return
	}

	if tag != "" {
		filtered := make([]*posts.Post, 0, len(all))
		for _, p := range all {
			if slices.Contains(p.Tags, tag) {
				filtered = append(filtered, p)
			}
		}
		all = filtered
	}
	h.respond(w, r, all)
}

// HandleGetPost returns the post named by the {id} path segment.
func (h *PostHandlers) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r, h.errorAdapter) {
		return
	}
	id := r.PathValue("id")
	if id == "" {
		h.errorAdapter.WriteErrorResponse(w, r, errors.ValidationError("post id is required").Build())
		return
	}

	p, err := posts.Find(r.Context(), h.source, id)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	etag := ""
	if sig := h.signature(); sig != "" {
		etag = sig + "-" + p.ID
	}
	if notModified(w, r, etag) {
		return
	}
	h.respond(w, r, p)
}

// HandlePostIDs returns the id of every post.
func (h *PostHandlers) HandlePostIDs(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r, h.errorAdapter) {
		return
	}
	ids, err := posts.IDs(r.Context(), h.source)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.respond(w, r, responses.PostIDsResponse{IDs: ids, Count: len(ids)})
}

// HandleTags returns tag usage counts.
func (h *PostHandlers) HandleTags(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r, h.errorAdapter) {
		return
	}
	tags, err := posts.Tags(r.Context(), h.source)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.respond(w, r, tags)
}
