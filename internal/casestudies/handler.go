package casestudies

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rts-backend/internal/admin"
	"rts-backend/internal/httpx"
	"rts-backend/internal/locale"
	"rts-backend/internal/middleware"
	"rts-backend/internal/validation"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	store    *Store
	homepage *Homepage
	val      *validation.Validator
	log      *slog.Logger
}

func NewHandler(store *Store, homepage *Homepage, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		homepage: homepage,
		val:      val,
		log:      log,
	}
}

type formResponse struct {
	ID         string   `json:"id,omitempty"`
	Form       Form     `json:"form"`
	Categories []string `json:"categories"`
	Industries []string `json:"industries"`
	Icons      []string `json:"icons"`
}

func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	q := r.URL.Query()
	filter := ListFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Industry: strings.TrimSpace(q.Get("industry")),
		Search:   strings.TrimSpace(q.Get("q")),
	}
	tag := locale.Resolve(r)

	items := h.store.Filter(filter)

	log.Info("case studies public list: ok", slog.Int("count", len(items)), slog.String("lang", tag.String()))
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":      LocalizeAll(items, tag),
		"lang":       tag.String(),
		"categories": append([]string{"All"}, Categories...),
		"industries": append([]string{"All"}, Industries...),
	})
}

func (h *Handler) PublicGet(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("case studies public get: missing id")
		httpx.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	item, err := h.store.Get(id)
	if err != nil {
		log.Warn("case studies public get: not found", slog.String("case_study_id", id))
		httpx.WriteError(w, http.StatusNotFound, "case study not found", nil)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, item.Localize(locale.Resolve(r)))
}

// Homepage serves the projection with an ETag so polling clients can revalidate.
func (h *Handler) Homepage(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	tag := locale.Resolve(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items := h.homepage.Items(ctx)
	body, err := json.Marshal(map[string]interface{}{
		"items": LocalizeAll(items, tag),
		"lang":  tag.String(),
	})
	if err != nil {
		log.Error("case studies homepage: encode error", slog.String("error", err.Error()))
		httpx.WriteError(w, http.StatusInternalServerError, "encode error", nil)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Vary", "Accept-Language, Cookie")
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(body, '\n'))
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 50, 200)
	if err != nil {
		log.Warn("admin case studies list: invalid query", slog.String("error", err.Error()))
		httpx.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	all := h.store.List()
	items := httpx.Page(all, limit, offset)

	log.Info("admin case studies list: ok", slog.Int("count", len(items)))
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":         items,
		"limit":         limit,
		"offset":        offset,
		"total":         len(all),
		"homepageCount": h.store.HomepageCount(),
		"homepageLimit": HomepageLimit,
	})
}

func (h *Handler) AdminNewForm(w http.ResponseWriter, r *http.Request) {
	if s, ok := admin.FromContext(r.Context()); ok {
		s.BeginAdd()
	}
	httpx.WriteJSON(w, http.StatusOK, newFormResponse("", NewForm()))
}

func (h *Handler) AdminEditForm(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	item, err := h.store.Get(id)
	if err != nil {
		log.Warn("admin case studies edit form: not found", slog.String("case_study_id", id))
		httpx.WriteError(w, http.StatusNotFound, "case study not found", nil)
		return
	}

	if s, ok := admin.FromContext(r.Context()); ok {
		s.BeginEdit(id)
	}
	httpx.WriteJSON(w, http.StatusOK, newFormResponse(id, FormFromRecord(item)))
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	form, ok := h.decodeForm(w, r, log, "admin case studies create")
	if !ok {
		return
	}
	if err := form.Precheck(h.store.List(), ""); err != nil {
		h.writeStoreError(w, log, "admin case studies create", "", err)
		return
	}

	item, err := h.store.Add(form.Partial())
	if err != nil {
		h.writeStoreError(w, log, "admin case studies create", "", err)
		return
	}

	if s, ok := admin.FromContext(r.Context()); ok {
		s.ClearDraft()
	}
	log.Info("admin case studies create: ok", slog.String("case_study_id", item.ID))
	httpx.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("admin case studies update: missing id")
		httpx.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	form, ok := h.decodeForm(w, r, log, "admin case studies update")
	if !ok {
		return
	}
	if err := form.Precheck(h.store.List(), id); err != nil {
		h.writeStoreError(w, log, "admin case studies update", id, err)
		return
	}

	item, err := h.store.Update(id, form.Partial())
	if err != nil {
		h.writeStoreError(w, log, "admin case studies update", id, err)
		return
	}

	if s, ok := admin.FromContext(r.Context()); ok {
		s.ClearDraft()
	}
	log.Info("admin case studies update: ok", slog.String("case_study_id", id))
	httpx.WriteJSON(w, http.StatusOK, item)
}

// AdminPatch merges a partial record, for API clients that do not go through
// the editor form.
func (h *Handler) AdminPatch(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var req Partial
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin case studies patch: invalid json")
		httpx.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin case studies patch: validation error")
		httpx.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	item, err := h.store.Update(id, req)
	if err != nil {
		h.writeStoreError(w, log, "admin case studies patch", id, err)
		return
	}

	log.Info("admin case studies patch: ok", slog.String("case_study_id", id))
	httpx.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	confirmed, err := httpx.ParseBool(r.URL.Query(), "confirm")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if !confirmed {
		log.Warn("admin case studies delete: not confirmed", slog.String("case_study_id", id))
		httpx.WriteError(w, http.StatusPreconditionRequired, "confirmation required", map[string]string{"confirm": "required"})
		return
	}

	if err := h.store.Remove(id); err != nil {
		h.writeStoreError(w, log, "admin case studies delete", id, err)
		return
	}

	if s, ok := admin.FromContext(r.Context()); ok && s.Draft().EditingID == id {
		s.ClearDraft()
	}
	log.Info("admin case studies delete: ok", slog.String("case_study_id", id))
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) AdminToggleHomepage(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	item, err := h.store.ToggleHomepage(id)
	if err != nil {
		h.writeStoreError(w, log, "admin case studies toggle homepage", id, err)
		return
	}

	log.Info("admin case studies toggle homepage: ok", slog.String("case_study_id", id), slog.Bool("show_on_homepage", item.ShowOnHomepage))
	httpx.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) decodeForm(w http.ResponseWriter, r *http.Request, log *slog.Logger, area string) (Form, bool) {
	var form Form
	if err := httpx.DecodeJSON(r.Body, &form); err != nil {
		log.Warn(area + ": invalid json")
		httpx.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return Form{}, false
	}
	if err := h.val.Struct(form); err != nil {
		log.Warn(area + ": validation error")
		httpx.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return Form{}, false
	}
	return form, true
}

func (h *Handler) writeStoreError(w http.ResponseWriter, log *slog.Logger, area, id string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		log.Warn(area+": not found", slog.String("case_study_id", id))
		httpx.WriteError(w, http.StatusNotFound, "case study not found", nil)
	case errors.Is(err, ErrHomepageCapExceeded):
		log.Warn(area+": homepage limit reached", slog.String("case_study_id", id))
		httpx.WriteError(w, http.StatusConflict, err.Error(), map[string]string{"showOnHomepage": "limit"})
	case errors.Is(err, ErrInvalidRecord):
		log.Warn(area+": invalid record", slog.String("case_study_id", id))
		httpx.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"title": "notblank"})
	default:
		log.Error(area+": storage error", slog.String("error", err.Error()))
		httpx.WriteError(w, http.StatusInternalServerError, "storage error", nil)
	}
}

func newFormResponse(id string, form Form) formResponse {
	return formResponse{
		ID:         id,
		Form:       form,
		Categories: Categories,
		Industries: Industries,
		Icons:      IconNames(),
	}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
