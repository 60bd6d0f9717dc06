package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/creatorverse/creatorverse/internal/model"
	"github.com/creatorverse/creatorverse/internal/page"
	"github.com/creatorverse/creatorverse/internal/remote"
	"github.com/creatorverse/creatorverse/internal/store"
	"github.com/creatorverse/creatorverse/internal/view"
	"github.com/creatorverse/creatorverse/internal/viewstate"
)

// Form labels.
const (
	editHeading   = "Edit Creator"
	createHeading = "Add New Creator"
)

// CreatorHandler serves the list, detail, edit and create pages.
// Every request builds and mounts a fresh page; only the store is shared.
type CreatorHandler struct {
	*Handler
	collection remote.Collection
	store      *store.Store
}

// NewCreatorHandler creates a new CreatorHandler.
func NewCreatorHandler(h *Handler, collection remote.Collection, s *store.Store) *CreatorHandler {
	return &CreatorHandler{Handler: h, collection: collection, store: s}
}

// Routes registers the page routes on r.
func (h *CreatorHandler) Routes(r chi.Router) {
	r.Get(page.RootPath, h.List)
	r.Get(page.AddPath, h.CreateForm)
	r.Post(page.AddPath, h.Create)
	r.Route("/creator/{name}", func(r chi.Router) {
		r.Get("/", h.Detail)
		r.Get("/edit", h.EditForm)
		r.Post("/edit", h.Update)
		r.Get("/delete", h.ConfirmDelete)
		r.Post("/delete", h.Delete)
	})
}

// List shows every creator.
//
// GET /
func (h *CreatorHandler) List(w http.ResponseWriter, r *http.Request) {
	p := page.NewListPage(h.store)
	s := p.Mount(r.Context())

	h.render(w, r, statusFor(s.Failure), view.ListTemplate, view.Page{
		Title: "Content Creators",
		Content: view.List{
			Mode:     s.Mode(true).String(),
			Error:    s.Error,
			Creators: s.Data,
		},
	})
}

// Detail shows one creator.
//
// GET /creator/{name}
func (h *CreatorHandler) Detail(w http.ResponseWriter, r *http.Request) {
	p := page.NewDetailPage(h.collection, nameParam(r))
	s := p.Mount(r.Context())

	title := p.Name()
	if s.NotFound() {
		title = "Creator Not Found"
	}

	h.render(w, r, statusFor(s.Failure), view.DetailTemplate, view.Page{
		Title: title,
		Content: view.Detail{
			Mode:     s.Mode(true).String(),
			NotFound: s.NotFound(),
			Error:    s.Error,
			BackPath: p.Back().To,
			Creator:  s.Data,
		},
	})
}

// EditForm shows the edit form seeded from the stored record.
//
// GET /creator/{name}/edit
func (h *CreatorHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	p := page.NewEditPage(h.collection, h.store, nameParam(r), h.logger)
	s := p.Mount(r.Context())

	h.render(w, r, statusFor(s.Failure), view.FormTemplate, view.Page{
		Title:   editHeading,
		Content: editForm(p, s.Mode(true)),
	})
}

// Update saves the edit form. On success the browser moves to the detail
// page of the (possibly new) name; on failure the form is shown again with
// the message.
//
// POST /creator/{name}/edit
func (h *CreatorHandler) Update(w http.ResponseWriter, r *http.Request) {
	p := page.NewEditPage(h.collection, h.store, nameParam(r), h.logger)

	input, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	if nav, ok := p.Submit(r.Context(), input); ok {
		redirect(w, r, nav.To)
		return
	}

	h.render(w, r, http.StatusUnprocessableEntity, view.FormTemplate, view.Page{
		Title:   editHeading,
		Content: editForm(p, viewstate.ModePopulated),
	})
}

// ConfirmDelete asks for confirmation before a delete.
//
// GET /creator/{name}/delete
func (h *CreatorHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	p := page.NewEditPage(h.collection, h.store, nameParam(r), h.logger)
	h.renderConfirm(w, r, http.StatusOK, p)
}

// Delete removes the creator when the confirmation was given. Anything else
// returns to the edit form without touching the collection.
//
// POST /creator/{name}/delete
func (h *CreatorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p := page.NewEditPage(h.collection, h.store, nameParam(r), h.logger)

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}
	confirmed := r.PostForm.Get("confirm") == "yes"

	nav, ok := p.Delete(r.Context(), confirmed)
	switch {
	case ok:
		redirect(w, r, nav.To)
	case !confirmed:
		redirect(w, r, page.EditPath(p.OriginalName()))
	default:
		h.renderConfirm(w, r, http.StatusUnprocessableEntity, p)
	}
}

// CreateForm shows an empty create form.
//
// GET /add
func (h *CreatorHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	p := page.NewCreatePage(h.collection, h.store, h.logger)
	h.render(w, r, http.StatusOK, view.FormTemplate, view.Page{
		Title:   createHeading,
		Content: createForm(p),
	})
}

// Create inserts a new creator and returns to the list.
//
// POST /add
func (h *CreatorHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := page.NewCreatePage(h.collection, h.store, h.logger)

	input, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	if nav, ok := p.Submit(r.Context(), input); ok {
		redirect(w, r, nav.To)
		return
	}

	h.render(w, r, http.StatusUnprocessableEntity, view.FormTemplate, view.Page{
		Title:   createHeading,
		Content: createForm(p),
	})
}

func (h *CreatorHandler) renderConfirm(w http.ResponseWriter, r *http.Request, status int, p *page.EditPage) {
	h.render(w, r, status, view.ConfirmTemplate, view.Page{
		Title: "Delete Creator",
		Content: view.Confirm{
			Name:       p.OriginalName(),
			Prompt:     p.ConfirmPrompt(),
			Error:      p.Error(),
			CancelPath: page.EditPath(p.OriginalName()),
		},
	})
}

func (h *CreatorHandler) parseForm(w http.ResponseWriter, r *http.Request) (model.CreatorInput, bool) {
	if err := r.ParseForm(); err != nil {
		h.logger.WarnContext(r.Context(), "failed to parse form", slog.String("error", err.Error()))
		h.renderError(w, r, http.StatusBadRequest, "The submitted form could not be read.")
		return model.CreatorInput{}, false
	}
	return model.CreatorInput{
		Name:        r.PostForm.Get("name"),
		URL:         r.PostForm.Get("url"),
		Description: r.PostForm.Get("description"),
		ImageURL:    r.PostForm.Get("imageURL"),
	}, true
}

func editForm(p *page.EditPage, mode viewstate.Mode) view.Form {
	state := p.State()
	errMsg := p.Error()
	if mode == viewstate.ModeError {
		errMsg = state.Error
	}
	return view.Form{
		Mode:         mode.String(),
		NotFound:     mode == viewstate.ModeError && state.NotFound(),
		Editing:      true,
		Heading:      editHeading,
		Action:       page.EditPath(p.OriginalName()),
		CancelPath:   p.Cancel().To,
		SubmitLabel:  "Save Changes",
		BusyLabel:    "Saving...",
		Busy:         p.Saving(),
		Deleting:     p.Deleting(),
		OriginalName: p.OriginalName(),
		Error:        errMsg,
		Input:        p.Form,
	}
}

func createForm(p *page.CreatePage) view.Form {
	return view.Form{
		Mode:        viewstate.ModePopulated.String(),
		Heading:     createHeading,
		Action:      page.AddPath,
		CancelPath:  p.Cancel().To,
		SubmitLabel: "Add Creator",
		BusyLabel:   "Adding...",
		Busy:        p.Saving(),
		Error:       p.Error(),
		Input:       p.Form,
	}
}

// nameParam returns the creator name of the route, decoded exactly once.
// chi routes on RawPath when it is set and on the already decoded Path
// otherwise, so the segment is only unescaped in the first case.
func nameParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	return page.DecodeName(name)
}

func statusFor(f remote.Failure) int {
	switch f {
	case remote.FailureNone:
		return http.StatusOK
	case remote.FailureNotFound:
		return http.StatusNotFound
	case remote.FailureConfig:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
