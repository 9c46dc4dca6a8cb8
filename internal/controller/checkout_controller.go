package controller

import (
	"math"
	"net/http"

	"github.com/cassiomorais/sumup-bridge/internal/domain/checkout"
	"github.com/cassiomorais/sumup-bridge/internal/service"
)

// CheckoutController handles checkout-creation HTTP requests.
type CheckoutController struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutController creates a new CheckoutController.
func NewCheckoutController(checkoutService *service.CheckoutService) *CheckoutController {
	return &CheckoutController{checkoutService: checkoutService}
}

// CreateCheckout handles POST /create-checkout
func (h *CheckoutController) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckoutRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	session, err := h.checkoutService.CreateCheckout(r.Context(), checkout.Request{
		Amount:      int64(math.Round(*req.Amount)),
		Currency:    req.Currency,
		Description: req.Description,
		OrderID:     string(req.OrderID),
		RedirectURL: req.RedirectURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CreateCheckoutResponse{
		Success:           true,
		CheckoutURL:       session.CheckoutURL,
		CheckoutReference: session.Reference,
		CheckoutID:        session.ID,
		Amount:            session.Amount,
		Currency:          session.Currency,
	})
}
