package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ta7wila/internal/application/invoice/usecases"
	"ta7wila/internal/domain/invoice"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/utils"
)

type InvoiceHandler struct {
	generateUC *usecases.GenerateMonthlyInvoicesUseCase
	issueUC    *usecases.IssueInvoiceUseCase
	markPaidUC *usecases.MarkInvoicePaidUseCase
	pdfUC      *usecases.GetInvoicePDFUseCase
	listUC     *usecases.ListInvoicesUseCase
	logger     logger.Interface
}

func NewInvoiceHandler(
	generateUC *usecases.GenerateMonthlyInvoicesUseCase,
	issueUC *usecases.IssueInvoiceUseCase,
	markPaidUC *usecases.MarkInvoicePaidUseCase,
	pdfUC *usecases.GetInvoicePDFUseCase,
	listUC *usecases.ListInvoicesUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{
		generateUC: generateUC,
		issueUC:    issueUC,
		markPaidUC: markPaidUC,
		pdfUC:      pdfUC,
		listUC:     listUC,
		logger:     logger.NewLogger(),
	}
}

type InvoiceResponse struct {
	Ref         string     `json:"ref"`
	PeriodStart time.Time  `json:"period_start"`
	PeriodEnd   time.Time  `json:"period_end"`
	ClaimCount  int        `json:"claim_count"`
	GrossAmount string     `json:"gross_amount"`
	FeeAmount   string     `json:"fee_amount"`
	Status      string     `json:"status"`
	IssuedAt    *time.Time `json:"issued_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

func toInvoiceResponse(inv *invoice.Invoice) InvoiceResponse {
	return InvoiceResponse{
		Ref:         inv.Ref(),
		PeriodStart: inv.PeriodStart(),
		PeriodEnd:   inv.PeriodEnd(),
		ClaimCount:  inv.ClaimCount(),
		GrossAmount: inv.GrossAmount().String(),
		FeeAmount:   inv.FeeAmount().String(),
		Status:      string(inv.Status()),
		IssuedAt:    inv.IssuedAt(),
		PaidAt:      inv.PaidAt(),
	}
}

type GenerateInvoicesRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Generate triggers monthly invoice generation, normally left to the
// scheduler but exposed for catch-up runs.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req GenerateInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.generateUC.Execute(c.Request.Context(), usecases.GenerateMonthlyInvoicesCommand{
		Year:  req.Year,
		Month: time.Month(req.Month),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]InvoiceResponse, 0, len(result.Generated))
	for _, inv := range result.Generated {
		items = append(items, toInvoiceResponse(inv))
	}
	utils.SuccessResponse(c, http.StatusOK, "invoices generated", gin.H{
		"generated": items,
		"skipped":   result.Skipped,
	})
}

func (h *InvoiceHandler) Issue(c *gin.Context) {
	result, err := h.issueUC.Execute(c.Request.Context(), usecases.IssueInvoiceCommand{Ref: c.Param("ref")})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "invoice issued", toInvoiceResponse(result.Invoice))
}

func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	result, err := h.markPaidUC.Execute(c.Request.Context(), usecases.MarkInvoicePaidCommand{Ref: c.Param("ref")})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "invoice paid", toInvoiceResponse(result.Invoice))
}

// DownloadPDF streams the invoice as a PDF attachment.
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	result, err := h.pdfUC.Execute(c.Request.Context(), usecases.GetInvoicePDFCommand{
		Ref:          c.Param("ref"),
		ActorID:      currentUserID(c),
		ActorIsAdmin: currentUserIsAdmin(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListInvoicesCommand{
		StoreSID:     c.Param("sid"),
		ActorID:      currentUserID(c),
		ActorIsAdmin: currentUserIsAdmin(c),
		Page:         pagination.Page,
		PageSize:     pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]InvoiceResponse, 0, len(result.Invoices))
	for _, inv := range result.Invoices {
		items = append(items, toInvoiceResponse(inv))
	}
	utils.ListSuccessResponse(c, items, result.Total, result.Page, result.PageSize)
}
