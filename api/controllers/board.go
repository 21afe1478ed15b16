package controllers

import (
	"net/http"

	"github.com/ridgelinemoto/dealerops-backend/api/responses"
	"github.com/ridgelinemoto/dealerops-backend/internal/reconcile"
	"github.com/ridgelinemoto/dealerops-backend/pkg/logger"
)

// Board serves the full-mode view: every line item of every unfulfilled
// order, grouped into status columns.
func Board(svc reconcile.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := svc.Board(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, board)
	}
}

// Picklist serves the filtering-mode view: only items nobody has touched,
// grouped by order for the warehouse picking screen.
func Picklist(svc reconcile.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := svc.Picklist(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if groups == nil {
			groups = []reconcile.OrderGroup{}
		}
		responses.WriteSuccess(w, map[string]any{"orders": groups, "total": len(groups)})
	}
}
