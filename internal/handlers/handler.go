package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/storefront"
	"go.uber.org/zap"
)

const (
	codeInvalidInput      = "INVALID_INPUT"
	codeInvalidFilter     = "INVALID_FILTER"
	codeInvalidSort       = "INVALID_SORT"
	codeInvalidQuantity   = "INVALID_QUANTITY"
	codeProductNotFound   = "PRODUCT_NOT_FOUND"
	codeInvalidTransition = "INVALID_TRANSITION"
	codeInternal          = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type Handler struct {
	session *storefront.Session
	logger  *zap.Logger
}

func NewHandler(session *storefront.Session, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		session: session,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)

	mux.HandleFunc("GET /products", h.handleListProducts)
	mux.HandleFunc("POST /products/reset", h.handleResetFilters)
	mux.HandleFunc("GET /categories", h.handleCategories)

	mux.HandleFunc("GET /cart", h.handleGetCart)
	mux.HandleFunc("POST /cart/items", h.handleAddItem)
	mux.HandleFunc("PATCH /cart/items/{id}", h.handleUpdateItem)
	mux.HandleFunc("DELETE /cart/items/{id}", h.handleRemoveItem)
	mux.HandleFunc("DELETE /cart", h.handleClearCart)

	mux.HandleFunc("GET /notice", h.handleNotice)

	mux.HandleFunc("GET /checkout", h.handleGetCheckout)
	mux.HandleFunc("POST /checkout", h.handleBeginCheckout)
	mux.HandleFunc("POST /checkout/confirm", h.handleConfirmCheckout)
	mux.HandleFunc("POST /checkout/cancel", h.handleCancelCheckout)
	mux.HandleFunc("POST /checkout/close", h.handleCloseCheckout)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

var errInvalidPage = errors.New("page must be an integer")

// handleListProducts applies the filter, sort and page parameters present in the
// query to the catalog view as one change and renders it. A rejected parameter
// leaves the view untouched.
func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	err := h.session.Catalog.Update(func(st *storefront.ViewState) error {
		if q.Has("category") {
			st.Criteria.SetCategory(q.Get("category"))
		}
		if q.Has("search") {
			st.Criteria.SetSearchText(q.Get("search"))
		}

		setters := []struct {
			param string
			set   func(string) error
		}{
			{"minPrice", st.Criteria.SetMinPrice},
			{"maxPrice", st.Criteria.SetMaxPrice},
			{"minRating", st.Criteria.SetMinRating},
		}
		for _, s := range setters {
			if !q.Has(s.param) {
				continue
			}
			if err := s.set(q.Get(s.param)); err != nil {
				return err
			}
		}

		if q.Has("sort") {
			key, err := domain.ParseSortKey(q.Get("sort"))
			if err != nil {
				return err
			}
			st.SortKey = key
		}

		if q.Has("page") {
			page, err := strconv.Atoi(q.Get("page"))
			if err != nil {
				return errInvalidPage
			}
			st.Page = page
		}

		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidFilter):
		h.writeError(w, http.StatusBadRequest, codeInvalidFilter, err.Error())
		return
	case errors.Is(err, domain.ErrInvalidSortKey):
		h.writeError(w, http.StatusBadRequest, codeInvalidSort, err.Error())
		return
	case errors.Is(err, errInvalidPage):
		h.writeError(w, http.StatusBadRequest, codeInvalidInput, err.Error())
		return
	default:
		h.logger.Error("update catalog view", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, codeInternal, "Failed to update catalog")
		return
	}

	writeJSON(w, http.StatusOK, newCatalogResponse(h.session.Catalog.Render()))
}

func (h *Handler) handleResetFilters(w http.ResponseWriter, _ *http.Request) {
	h.session.Catalog.ResetFilters()
	writeJSON(w, http.StatusOK, newCatalogResponse(h.session.Catalog.Render()))
}

func (h *Handler) handleCategories(w http.ResponseWriter, _ *http.Request) {
	categories := h.session.Catalog.Render().Categories
	writeJSON(w, http.StatusOK, map[string][]string{
		"categories": append([]string{domain.AllCategories}, categories...),
	})
}

func (h *Handler) handleGetCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newCartResponse(h.session.Cart.Cart()))
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProductID int64 `json:"product_id"`
		Quantity  *int  `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, codeInvalidInput, "Invalid JSON payload")
		return
	}

	if payload.ProductID < 1 {
		h.writeError(w, http.StatusBadRequest, codeInvalidInput, "product_id must be a positive integer")
		return
	}

	quantity := 1
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}

	if _, err := h.session.Catalog.AddToCart(payload.ProductID, quantity); err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			h.writeError(w, http.StatusNotFound, codeProductNotFound, err.Error())
		case errors.Is(err, domain.ErrInvalidQuantity):
			h.writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
		default:
			h.logger.Error("add to cart", zap.Int64("product_id", payload.ProductID), zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, codeInternal, "Failed to add item")
		}
		return
	}

	writeJSON(w, http.StatusCreated, newCartResponse(h.session.Cart.Cart()))
}

// handleUpdateItem accepts the quantity as a JSON number or string so that raw
// form input reaches ParseQuantity unchanged.
func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var payload struct {
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, codeInvalidInput, "Invalid JSON payload")
		return
	}

	raw := string(payload.Quantity)
	var s string
	if err := json.Unmarshal(payload.Quantity, &s); err == nil {
		raw = s
	}

	quantity, err := domain.ParseQuantity(raw)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
		return
	}

	if _, err := h.session.Cart.UpdateQuantity(id, quantity); err != nil {
		h.writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(h.session.Cart.Cart()))
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	h.session.Cart.RemoveItem(id)
	writeJSON(w, http.StatusOK, newCartResponse(h.session.Cart.Cart()))
}

func (h *Handler) handleClearCart(w http.ResponseWriter, _ *http.Request) {
	h.session.Cart.Clear()
	writeJSON(w, http.StatusOK, newCartResponse(h.session.Cart.Cart()))
}

func (h *Handler) handleNotice(w http.ResponseWriter, _ *http.Request) {
	msg, visible := h.session.Notice.Current()
	writeJSON(w, http.StatusOK, noticeResponse{Visible: visible, Message: msg})
}

func (h *Handler) handleGetCheckout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.checkoutResponse())
}

func (h *Handler) handleBeginCheckout(w http.ResponseWriter, _ *http.Request) {
	h.session.Checkout.Begin()
	writeJSON(w, http.StatusOK, h.checkoutResponse())
}

func (h *Handler) handleConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	if _, err := h.session.Checkout.Confirm(r.Context()); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			h.writeError(w, http.StatusConflict, codeInvalidTransition, err.Error())
			return
		}
		h.logger.Error("confirm checkout", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, codeInternal, "Failed to confirm checkout")
		return
	}

	writeJSON(w, http.StatusOK, h.checkoutResponse())
}

func (h *Handler) handleCancelCheckout(w http.ResponseWriter, _ *http.Request) {
	h.session.Checkout.Cancel()
	writeJSON(w, http.StatusOK, h.checkoutResponse())
}

func (h *Handler) handleCloseCheckout(w http.ResponseWriter, _ *http.Request) {
	h.session.Checkout.Close()
	writeJSON(w, http.StatusOK, h.checkoutResponse())
}

func (h *Handler) checkoutResponse() checkoutResponse {
	resp := checkoutResponse{
		State: h.session.Checkout.State().String(),
		Cart:  newCartResponse(h.session.Cart.Cart()),
	}

	if snapshot, ok := h.session.Checkout.Snapshot(); ok {
		s := newSnapshotResponse(snapshot)
		resp.Snapshot = &s
	} else if len(resp.Cart.Items) == 0 {
		resp.Message = emptyCartMessage
	}

	return resp
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		h.writeError(w, http.StatusBadRequest, codeInvalidInput, "Invalid product ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("code", code), zap.String("message", message))
	} else {
		h.logger.Debug("request rejected", zap.String("code", code), zap.String("message", message))
	}

	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
