package handlers

import (
	"log"
	"net/http"

	response "donation_platform/internal/adapter/http/dto/response"
	"donation_platform/internal/usecase"
	"donation_platform/pkg"

	"github.com/gin-gonic/gin"
)

// ReconciliationHandler is the operator view of the reconciliation queue. Admin only.
type ReconciliationHandler struct {
	usecase usecase.IReconciliationUseCase
}

func NewReconciliationHandler(uc usecase.IReconciliationUseCase) *ReconciliationHandler {
	return &ReconciliationHandler{usecase: uc}
}

func (h *ReconciliationHandler) ListPending(c *gin.Context) {
	tasks, err := h.usecase.ListPending(c.Request.Context(), queryLimit(c))
	if err != nil {
		writeUsecaseError(c, "reconcile", err)
		return
	}
	c.JSON(http.StatusOK, pkg.NewSuccess("Pending reconciliation tasks", response.FromReconciliationTasks(tasks)))
}

func (h *ReconciliationHandler) Drain(c *gin.Context) {
	report, err := h.usecase.Drain(c.Request.Context(), queryLimit(c))
	if err != nil {
		writeUsecaseError(c, "reconcile", err)
		return
	}
	log.Printf("[reconcile][handler] drain processed=%d resolved=%d failed=%d manual_review=%d", report.Processed, report.Resolved, report.Failed, report.ManualReview)
	c.JSON(http.StatusOK, pkg.NewSuccess("Reconciliation drained", report))
}
