package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
	"github.com/go-chi/chi/v5"
)

const (
	postCreatedMessage  = "Your post has been created!"
	postUpdatedMessage  = "Your post has been updated!"
	postDeletedMessage  = "Your post has been deleted!"
	editConflictMessage = "This post was changed while you were editing it. Check the current version below and submit again to keep your changes."
)

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.services.PostService.ListRecent(r.Context(), pageFromQuery(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "home.html", pageData{Posts: posts, PageURL: "/home"})
}

func (h *Handler) about(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about.html", pageData{Title: "About"})
}

func (h *Handler) userPosts(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	author, err := h.services.AuthService.GetUserByUsername(r.Context(), username)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	posts, err := h.services.PostService.ListByAuthor(r.Context(), author, pageFromQuery(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "user_posts.html", pageData{
		Title:   author.Username,
		Author:  author,
		Posts:   posts,
		PageURL: "/user/" + author.Username,
	})
}

func (h *Handler) newPost(w http.ResponseWriter, r *http.Request) {
	page := pageData{Title: "New Post", Legend: "New Post", Form: models.PostForm{}}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "create_post.html", page)
		return
	}

	if err := parseForm(r); err != nil {
		h.handleError(w, r, err)
		return
	}

	form := postFormFromRequest(r)
	page.Form = form
	if err := h.validator.Validate(r.Context(), form, validators.FieldTitle, validators.FieldContent); err != nil {
		h.renderFormErrors(w, r, err, "create_post.html", page)
		return
	}

	principal, _ := utils.GetPrincipalFromContext(r.Context())
	if _, err := h.services.PostService.Create(r.Context(), principal, form.Title, form.Content); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.flash(r, models.FlashSuccess, postCreatedMessage)
	h.redirect(w, r, "/home")
}

func (h *Handler) showPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.postFromURL(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "post.html", pageData{Title: post.Title, Post: post})
}

// updatePost edits a post owned by the current user. The form carries the
// version it was rendered with; a concurrent edit in between is answered
// with 409 and the form filled with the latest version number.
func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	principal, _ := utils.GetPrincipalFromContext(r.Context())

	post, err := h.postFromURL(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !service.CanModify(principal, post) {
		h.handleError(w, r, service.ErrForbidden)
		return
	}

	page := pageData{
		Title:  "Update Post",
		Legend: "Update Post",
		Post:   post,
		Form:   models.PostForm{Title: post.Title, Content: post.Content, Version: post.Version},
	}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "create_post.html", page)
		return
	}

	if err := parseForm(r); err != nil {
		h.handleError(w, r, err)
		return
	}

	form := postFormFromRequest(r)
	page.Form = form
	if err := h.validator.Validate(r.Context(), form); err != nil {
		h.renderFormErrors(w, r, err, "create_post.html", page)
		return
	}

	updated, err := h.services.PostService.Update(r.Context(), principal, models.PostUpdate{
		PostID:  post.PostID,
		Version: form.Version,
		Title:   &form.Title,
		Content: &form.Content,
	})
	if errors.Is(err, service.ErrEditConflict) {
		h.renderEditConflict(w, r, page, form)
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.flash(r, models.FlashSuccess, postUpdatedMessage)
	h.redirect(w, r, fmt.Sprintf("/post/%d", updated.PostID))
}

func (h *Handler) renderEditConflict(w http.ResponseWriter, r *http.Request, page pageData, form models.PostForm) {
	current, err := h.services.PostService.Get(r.Context(), page.Post.PostID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	form.Version = current.Version
	page.Post = current
	page.Form = form
	h.flash(r, models.FlashWarning, editConflictMessage)
	h.render(w, r, http.StatusConflict, "create_post.html", page)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDFromURL(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	principal, _ := utils.GetPrincipalFromContext(r.Context())
	if err := h.services.PostService.Delete(r.Context(), principal, postID); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.flash(r, models.FlashSuccess, postDeletedMessage)
	h.redirect(w, r, "/home")
}

func (h *Handler) postFromURL(r *http.Request) (models.Post, error) {
	postID, err := postIDFromURL(r)
	if err != nil {
		return models.Post{}, err
	}
	return h.services.PostService.Get(r.Context(), postID)
}

func postIDFromURL(r *http.Request) (int64, error) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || postID <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPostID, chi.URLParam(r, "id"))
	}
	return postID, nil
}

// postFormFromRequest reads the post form. A missing version means an
// unconditional update; a garbled one becomes -1 so that validation rejects it.
func postFormFromRequest(r *http.Request) models.PostForm {
	form := models.PostForm{
		Title:   formValue(r, validators.FieldTitle),
		Content: r.PostFormValue(validators.FieldContent),
	}

	if raw := r.PostFormValue(validators.FieldVersion); raw != "" {
		version, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			version = -1
		}
		form.Version = version
	}
	return form
}
