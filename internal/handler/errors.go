package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/haiti-storefront/internal/cart"
	"github.com/flicky/haiti-storefront/internal/checkout"
	"github.com/flicky/haiti-storefront/internal/lifecycle"
	"github.com/flicky/haiti-storefront/internal/service"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrOrderAccessDenied, http.StatusForbidden},
	{service.ErrUserAlreadyExists, http.StatusConflict},
	{checkout.ErrInvalidTransition, http.StatusConflict},
	{service.ErrProductNotFound, http.StatusNotFound},
	{service.ErrOrderNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrNoCheckout, http.StatusNotFound},
	{lifecycle.ErrTermsNotAccepted, http.StatusUnprocessableEntity},
	{lifecycle.ErrEmptyCart, http.StatusUnprocessableEntity},
	{lifecycle.ErrAddressRequired, http.StatusUnprocessableEntity},
	{lifecycle.ErrContactRequired, http.StatusUnprocessableEntity},
	{checkout.ErrDeliveryMethodRequired, http.StatusUnprocessableEntity},
	{checkout.ErrAddressIncomplete, http.StatusUnprocessableEntity},
	{lifecycle.ErrInvalidDeliveryMethod, http.StatusBadRequest},
	{lifecycle.ErrInvalidStatus, http.StatusBadRequest},
	{lifecycle.ErrUnknownField, http.StatusBadRequest},
	{cart.ErrInvalidQuantity, http.StatusBadRequest},
	{service.ErrVariantRequired, http.StatusBadRequest},
	{service.ErrInvalidVariant, http.StatusBadRequest},
	{service.ErrInvalidCategory, http.StatusBadRequest},
	{service.ErrInvalidLanguage, http.StatusBadRequest},
	{service.ErrInvalidFilter, http.StatusBadRequest},
	{service.ErrPasswordMismatch, http.StatusBadRequest},
}

// respondError maps domain errors to their status code. Anything unknown is
// reported as an internal error without detail.
func respondError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": e.err.Error()})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
