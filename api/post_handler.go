package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-cms/backend/database"
	"github.com/inkwell-cms/backend/errs"
	"github.com/inkwell-cms/backend/models"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	postRepo  *database.PostRepo
}

func newPostHandler(postRepo *database.PostRepo) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		postRepo:  postRepo,
	}
}

// getAllPosts retrieves every post with nested author, tags and categories.
func (h postHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.postRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find posts", "posts", err))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Posts retrieved successfully", newPostResponses(posts))
	}
}

// createPost creates a new post owned by the requester. The author is
// always the authenticated identity, never taken from the payload.
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if v := req.validate(); len(v) > 0 {
			h.responder.WriteError(w, v)
			return
		}

		post := models.Post{
			Title:    strings.TrimSpace(req.Title),
			Content:  req.Content,
			Status:   req.status(),
			AuthorID: requesterID,
		}

		if err := h.postRepo.Create(&post, req.Tags, req.CategoryIDs); err != nil {
			h.responder.WriteError(w, wrapRepoError("create post", "post", err))
			return
		}

		// Reload so the response carries author, tags and categories
		created, err := h.postRepo.FindByID(post.ID)
		if err != nil || created == nil {
			h.responder.WriteError(w, wrapRepoError("find created post", "post", err))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusCreated, "Post created successfully", newPostResponse(*created))
	}
}

// getPagedPosts returns one window over all posts.
func (h postHandler) getPagedPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := pageParamsFromRequest(r)

		page, err := h.postRepo.Page(params)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("page posts", "posts", err))
			return
		}

		data := newListData(r, params, page.TotalCount, newPostResponses(page.Posts))
		h.responder.WriteEnvelope(w, http.StatusOK, "Posts have been retrieved successfully", data)
	}
}

// getPostsByCategory returns one window over the posts linked to a category.
func (h postHandler) getPostsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid categoryID"))
			return
		}

		params := pageParamsFromRequest(r)

		page, err := h.postRepo.PageByCategory(categoryID, params)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("page posts by category", "posts", err))
			return
		}

		data := newListData(r, params, page.TotalCount, newPostResponses(page.Posts))
		h.responder.WriteEnvelope(w, http.StatusOK, "Posts have been retrieved successfully", data)
	}
}

// getPostsByAuthor returns one window over the posts written by an author.
func (h postHandler) getPostsByAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := uuid.Parse(chi.URLParam(r, "authorID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid authorID"))
			return
		}

		params := pageParamsFromRequest(r)

		page, err := h.postRepo.PageByAuthor(authorID, params)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("page posts by author", "posts", err))
			return
		}

		data := newListData(r, params, page.TotalCount, newPostResponses(page.Posts))
		h.responder.WriteEnvelope(w, http.StatusOK, "Posts have been retrieved successfully", data)
	}
}

// searchPosts filters posts by a case-insensitive substring of the title,
// content, tag names, or author name. An empty term returns everything.
func (h postHandler) searchPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("search")
		params := pageParamsFromRequest(r)

		page, err := h.postRepo.PageBySearch(term, params)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("search posts", "posts", err))
			return
		}

		data := newListData(r, params, page.TotalCount, newPostResponses(page.Posts))
		h.responder.WriteEnvelope(w, http.StatusOK, "Posts have been retrieved successfully", data)
	}
}

// getPost retrieves a single post by ID.
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find post", "post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("post"))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Post retrieved successfully", newPostResponse(*post))
	}
}

// updatePost fully replaces a post's fields, tags and categories.
// Only the author may update their post; the author itself is immutable.
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find post", "post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("post"))
			return
		}

		if post.AuthorID != requesterID {
			h.responder.WriteError(w, errs.NewForbiddenError("you are not authorized to update this post"))
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if v := req.validate(); len(v) > 0 {
			h.responder.WriteError(w, v)
			return
		}

		post.Title = strings.TrimSpace(req.Title)
		post.Content = req.Content
		post.Status = req.status()

		if err := h.postRepo.Update(post, req.Tags, req.CategoryIDs); err != nil {
			h.responder.WriteError(w, wrapRepoError("update post", "post", err))
			return
		}

		updated, err := h.postRepo.FindByID(postID)
		if err != nil || updated == nil {
			h.responder.WriteError(w, wrapRepoError("find updated post", "post", err))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Post updated successfully", newPostResponse(*updated))
	}
}

// deletePost deletes a post together with its tags and category links.
// Only the author may delete their post.
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find post", "post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("post"))
			return
		}

		if post.AuthorID != requesterID {
			h.responder.WriteError(w, errs.NewForbiddenError("you are not authorized to delete this post"))
			return
		}

		if err := h.postRepo.Delete(postID); err != nil {
			h.responder.WriteError(w, wrapRepoError("delete post", "post", err))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Post deleted successfully", nil)
	}
}
