package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/antonsk/shoplist/internal/model"
	"github.com/antonsk/shoplist/internal/service"
)

// ListHandler handles shopping-list routes. All routes except the shared
// view require an authenticated user.
type ListHandler struct {
	lists   service.ListService
	share   service.ShareService
	fetcher *UserFetcher
}

// NewListHandler constructs a ListHandler.
func NewListHandler(lists service.ListService, share service.ShareService, fetcher *UserFetcher) *ListHandler {
	return &ListHandler{lists: lists, share: share, fetcher: fetcher}
}

type createListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type addItemRequest struct {
	ItemName string `json:"itemName"`
}

type itemResponse struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// listResponse exposes the public id as the list's id; internal ids never
// leave the service.
type listResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Items       []itemResponse `json:"items"`
}

func toListResponse(sl model.ShoppingList, items []model.ShoppingListItem) listResponse {
	out := listResponse{
		ID:          sl.PublicID,
		Name:        sl.Name,
		Description: sl.Description,
		Items:       []itemResponse{},
	}
	for _, it := range items {
		out.Items = append(out.Items, itemResponse{Name: it.Name, Checked: it.Checked})
	}
	return out
}

// requireUser resolves the current user or writes a 401.
func (h *ListHandler) requireUser(w http.ResponseWriter, r *http.Request) *model.User {
	u := h.fetcher.Fetch(w, r)
	if u == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Not authenticated"))
	}
	return u
}

// HandleDashboard handles GET /api/v1/lists.
func (h *ListHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	u := h.requireUser(w, r)
	if u == nil {
		return
	}

	res := h.lists.ForUser(r.Context(), u.ID)
	if !res.OK() {
		writeJSON(w, http.StatusInternalServerError, errorResponse(res.Message()))
		return
	}

	out := []listResponse{}
	for _, sl := range res.Value() {
		out = append(out, toListResponse(sl.ShoppingList, sl.Items))
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /api/v1/lists.
func (h *ListHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u := h.requireUser(w, r)
	if u == nil {
		return
	}

	var req createListRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse("Name is required"))
		return
	}

	res := h.lists.Create(r.Context(), u.ID, req.Name, req.Description)
	if !res.OK() {
		writeJSON(w, failureStatus(res.Cause(), http.StatusBadRequest), errorResponse(res.Message()))
		return
	}
	writeJSON(w, http.StatusCreated, toListResponse(res.Value(), nil))
}

// HandleDetail handles GET /api/v1/lists/{listID}.
func (h *ListHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	u := h.requireUser(w, r)
	if u == nil {
		return
	}

	res := h.lists.ByPublicID(r.Context(), chi.URLParam(r, "listID"), &u.ID)
	if !res.OK() {
		writeJSON(w, http.StatusInternalServerError, errorResponse(res.Message()))
		return
	}
	sl := res.Value()
	if sl == nil {
		writeJSON(w, http.StatusNotFound, errorResponse("Shopping list not found"))
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(sl.ShoppingList, sl.Items))
}

// HandleDelete handles DELETE /api/v1/lists/{listID}. Not-found and
// not-owned are indistinguishable to the caller.
func (h *ListHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	u := h.requireUser(w, r)
	if u == nil {
		return
	}

	res := h.lists.Delete(r.Context(), chi.URLParam(r, "listID"), u.ID)
	if !res.OK() {
		writeJSON(w, failureStatus(res.Cause(), http.StatusNotFound), errorResponse(res.Message()))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddItem handles POST /api/v1/lists/{listID}/items.
func (h *ListHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	u := h.requireUser(w, r)
	if u == nil {
		return
	}

	var req addItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ItemName == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse("Item name is required"))
		return
	}

	res := h.lists.AddItem(r.Context(), chi.URLParam(r, "listID"), u.ID, req.ItemName)
	if !res.OK() {
		writeJSON(w, failureStatus(res.Cause(), http.StatusNotFound), errorResponse(res.Message()))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"itemName": req.ItemName})
}

// HandleShare handles POST /api/v1/lists/{listID}/share. Only an owner can
// issue a share token for a list.
func (h *ListHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	u := h.requireUser(w, r)
	if u == nil {
		return
	}

	publicID := chi.URLParam(r, "listID")
	res := h.lists.ByPublicID(r.Context(), publicID, &u.ID)
	if !res.OK() {
		writeJSON(w, http.StatusInternalServerError, errorResponse(res.Message()))
		return
	}
	if res.Value() == nil {
		writeJSON(w, http.StatusNotFound, errorResponse("Shopping list not found"))
		return
	}

	token, expiresAt, err := h.share.IssueListToken(publicID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"token":     token,
		"expiresAt": expiresAt.UTC().Format(time.RFC3339),
	})
}

// HandleShared handles GET /api/v1/shared/{token}: a read-only list view
// for holders of a valid share token, no session required.
func (h *ListHandler) HandleShared(w http.ResponseWriter, r *http.Request) {
	publicID, err := h.share.VerifyListToken(chi.URLParam(r, "token"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse("Shopping list not found"))
		return
	}

	res := h.lists.ByPublicID(r.Context(), publicID, nil)
	if !res.OK() {
		writeJSON(w, http.StatusInternalServerError, errorResponse(res.Message()))
		return
	}
	sl := res.Value()
	if sl == nil {
		writeJSON(w, http.StatusNotFound, errorResponse("Shopping list not found"))
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(sl.ShoppingList, sl.Items))
}
