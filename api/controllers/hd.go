package controllers

import (
	"net/http"

	"github.com/ridgelinemoto/dealerops-backend/api/responses"
	"github.com/ridgelinemoto/dealerops-backend/api/validators"
	"github.com/ridgelinemoto/dealerops-backend/internal/hdimport"
	"github.com/ridgelinemoto/dealerops-backend/pkg/config"
	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
	pkgerrors "github.com/ridgelinemoto/dealerops-backend/pkg/errors"
	"github.com/ridgelinemoto/dealerops-backend/pkg/logger"
)

const uploadFieldName = "file"

// HDUpload ingests one HD order's xlsx upload and replaces its stored lines.
func HDUpload(svc hdimport.Service, cfg config.HDImportConfig, logg *logger.Logger) http.HandlerFunc {
	maxBytes := int64(cfg.MaxUploadMB) << 20
	return func(w http.ResponseWriter, r *http.Request) {
		orderNumber, err := validators.PathString(r, "orderNumber")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse multipart upload"))
			return
		}

		file, _, err := r.FormFile(uploadFieldName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "multipart field \"file\" required"))
			return
		}
		defer file.Close()

		ctx := logg.WithHDOrderNumber(r.Context(), orderNumber)
		result, err := svc.ImportUpload(ctx, orderNumber, file)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type hdBatchRequest struct {
	Orders []hdimport.OrderLines `json:"orders" validate:"required,min=1,dive"`
}

// HDBatch ingests pre-parsed lines for many HD orders in one call.
func HDBatch(svc hdimport.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req hdBatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ImportBatch(r.Context(), req.Orders)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ExclusionList returns the exclusion ledger for one HD order number.
func ExclusionList(svc hdimport.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderNumber := validators.QueryString(r, "order_number")
		records, err := svc.ListExclusions(r.Context(), orderNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"exclusions": records, "total": len(records)})
	}
}

type exclusionRequest struct {
	OrderNumber string  `json:"order_number" validate:"required"`
	LineNumber  *int    `json:"line_number,omitempty" validate:"omitempty,min=1"`
	PartNumber  *string `json:"part_number,omitempty"`
	Reason      string  `json:"reason" validate:"required"`
}

// ExclusionCreate marks an HD order line as checked in.
func ExclusionCreate(svc hdimport.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exclusionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reason, err := enums.ParseExclusionReason(req.Reason)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "unknown exclusion reason").
					WithDetails(map[string]any{"reason": req.Reason}))
			return
		}

		record, err := svc.AddExclusion(r.Context(), hdimport.ExclusionInput{
			OrderNumber: req.OrderNumber,
			LineNumber:  req.LineNumber,
			PartNumber:  req.PartNumber,
			Reason:      reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// ExclusionDelete removes one exclusion ledger entry.
func ExclusionDelete(svc hdimport.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "exclusionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.RemoveExclusion(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
