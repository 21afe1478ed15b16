package controllers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/ridgelinemoto/dealerops-backend/api/responses"
	"github.com/ridgelinemoto/dealerops-backend/api/validators"
	"github.com/ridgelinemoto/dealerops-backend/internal/stock"
	pkgerrors "github.com/ridgelinemoto/dealerops-backend/pkg/errors"
	"github.com/ridgelinemoto/dealerops-backend/pkg/logger"
)

// StockLookup returns the Pinnacle stock record for one part number.
func StockLookup(repo stock.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partNumber, err := validators.PathString(r, "partNumber")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := repo.FindByPartNumber(r.Context(), partNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeNotFound, "part number not in stock feed"))
				return
			}
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up stock"))
			return
		}
		responses.WriteSuccess(w, record)
	}
}
