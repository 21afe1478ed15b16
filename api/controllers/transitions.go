package controllers

import (
	"net/http"

	"github.com/ridgelinemoto/dealerops-backend/api/responses"
	"github.com/ridgelinemoto/dealerops-backend/api/validators"
	"github.com/ridgelinemoto/dealerops-backend/internal/transition"
	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
	pkgerrors "github.com/ridgelinemoto/dealerops-backend/pkg/errors"
	"github.com/ridgelinemoto/dealerops-backend/pkg/logger"
)

type transitionRequest struct {
	OrderExternalID   string  `json:"order_external_id" validate:"required"`
	SKU               string  `json:"sku"`
	LineQuantity      int     `json:"line_quantity" validate:"omitempty,min=1"`
	CurrentStatus     string  `json:"current_status"`
	TargetStatus      string  `json:"target_status" validate:"required"`
	Notes             *string `json:"notes,omitempty"`
	DealerPONumber    *string `json:"dealer_po_number,omitempty"`
	PartialQuantity   *int    `json:"partial_quantity,omitempty"`
	MatchedPartNumber *string `json:"matched_part_number,omitempty"`
	ConfirmShortStock bool    `json:"confirm_short_stock"`
	ConfirmCascade    bool    `json:"confirm_cascade"`
}

// ApplyTransition moves one fulfillment item (or, for dispatch, a whole
// order) to a new progress status.
func ApplyTransition(svc transition.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transitionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		target, err := enums.ParseProgressStatus(req.TargetStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "unknown target status").
					WithDetails(map[string]any{"target_status": req.TargetStatus}))
			return
		}

		var current enums.ProgressStatus
		if req.CurrentStatus != "" {
			parsed, parseErr := enums.ParseProgressStatus(req.CurrentStatus)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "unknown current status").
						WithDetails(map[string]any{"current_status": req.CurrentStatus}))
				return
			}
			current = parsed
		}

		ctx := logg.WithOrderExternalID(r.Context(), req.OrderExternalID)
		result, err := svc.ApplyTransition(ctx, transition.ApplyInput{
			OrderExternalID:   req.OrderExternalID,
			SKU:               req.SKU,
			LineQuantity:      req.LineQuantity,
			CurrentStatus:     current,
			Target:            target,
			Notes:             req.Notes,
			DealerPONumber:    req.DealerPONumber,
			PartialQuantity:   req.PartialQuantity,
			MatchedPartNumber: req.MatchedPartNumber,
			ConfirmShortStock: req.ConfirmShortStock,
			ConfirmCascade:    req.ConfirmCascade,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
