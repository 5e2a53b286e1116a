package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "numbers/internal/errors"
	"numbers/internal/services"
)

// ImportHandler accepts statement file uploads and feeds them to the import
// pipeline.
type ImportHandler struct {
	importer services.ImportServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importer services.ImportServicer) *ImportHandler {
	return &ImportHandler{importer: importer}
}

// ImportTransactions imports a transaction statement uploaded as the "file"
// multipart field. Row-level skips are reported in the result, not as errors.
func (h *ImportHandler) ImportTransactions(c *gin.Context) {
	h.importUpload(c, h.importer.ImportTransactions)
}

// ImportBills imports a credit-card-bill statement.
func (h *ImportHandler) ImportBills(c *gin.Context) {
	h.importUpload(c, h.importer.ImportBills)
}

func (h *ImportHandler) importUpload(c *gin.Context, run func(r io.Reader) (*services.ImportResult, error)) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrImportSource, err))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrImportSource, err))
		return
	}
	defer f.Close()

	result, err := run(f)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported":     result.Imported,
		"skipped":      result.Skipped,
		"imported_any": result.ImportedAny(),
	})
}
