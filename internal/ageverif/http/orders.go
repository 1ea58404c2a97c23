package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/service"
	"github.com/aussiebroadwan/ageverif/pkg/agesdk"
	"github.com/aussiebroadwan/ageverif/pkg/httpx"
)

type OrderByNameHandler struct {
	OrderService *service.OrderService
}

// ServeHTTP godoc
//
//	@Summary		Find Order By Name
//	@Description	Look up an order by its name. When confirmation_code is given it must match the order's confirmation code.
//	@Description	Missing orders, mismatched codes and upstream failures are all reported as 404.
//	@Tags			Orders
//	@Produce		json
//	@Param			name				path		string					true	"Order name, with or without the leading #"
//	@Param			confirmation_code	query		string					false	"Order confirmation code"
//	@Success		200					{object}	agesdk.Order			"order"
//	@Failure		401					{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		404					{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		503					{object}	agesdk.ErrorResponse	"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/orders/{name} [get].
func (h *OrderByNameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	code := q.Get("confirmation_code")

	// Codes compare byte for byte. A code that was sent but is empty can
	// never match, so it must not fall through to "no code supplied".
	if q.Has("confirmation_code") && code == "" {
		writeLookupError(w, service.ErrConfirmationMismatch)
		return
	}

	order, err := h.OrderService.FindOrderByName(r.Context(), r.PathValue("name"), code)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOrder(order))
}

type OrderSearchHandler struct {
	OrderService *service.OrderService
}

// ServeHTTP godoc
//
//	@Summary		Find Order By Email And Postcode
//	@Description	Return the newest recent order for the email whose shipping or billing postcode matches, ignoring case and whitespace.
//	@Tags			Orders
//	@Produce		json
//	@Param			email		query		string					true	"Customer email"
//	@Param			postcode	query		string					true	"Postcode"
//	@Success		200			{object}	agesdk.Order			"order"
//	@Failure		400			{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		401			{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		503			{object}	agesdk.ErrorResponse	"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/orders [get].
func (h *OrderSearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	email := strings.TrimSpace(q.Get("email"))
	postcode := strings.TrimSpace(q.Get("postcode"))
	if email == "" || postcode == "" {
		agesdk.ErrInvalidRequest.WithDescription("email and postcode are required").WriteError(w)
		return
	}

	order, err := h.OrderService.FindOrderByEmailAndPostcode(r.Context(), email, postcode)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOrder(order))
}
