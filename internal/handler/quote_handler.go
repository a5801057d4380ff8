package handler

import (
	"fmt"
	"net/http"

	"tradebooks/internal/service"
	"tradebooks/pkg/response"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quoteService service.QuoteService
	pdfService   service.DocumentPDFService
}

func NewQuoteHandler(quoteService service.QuoteService, pdfService service.DocumentPDFService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, pdfService: pdfService}
}

func (h *QuoteHandler) RegisterRoutes(router *gin.RouterGroup) {
	quotes := router.Group("/api/quotes")
	{
		quotes.GET("", h.ListQuotes)
		quotes.GET("/:id", h.GetQuote)
		quotes.POST("", h.SaveQuote)
		quotes.PUT("/:id", h.SaveQuote)
		quotes.DELETE("/:id", h.DeleteQuote)
		quotes.POST("/:id/convert", h.ConvertToInvoice)
		quotes.GET("/:id/pdf", h.QuotePDF)
	}
}

// ListQuotes returns every quote for the account
// @Summary      List quotes
// @Tags         quotes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.QuoteResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quotes, err := h.quoteService.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, quotes))
}

// GetQuote returns a single quote
// @Summary      Get quote
// @Tags         quotes
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.Response{data=service.QuoteResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quote, err := h.quoteService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, quote))
}

// SaveQuote creates or updates a quote; totals are recomputed server-side
// @Summary      Save quote
// @Tags         quotes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SaveQuoteRequest  true  "Quote Payload"
// @Success      200      {object}  response.Response{data=service.QuoteResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/quotes [post]
func (h *QuoteHandler) SaveQuote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.SaveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if id := c.Param("id"); id != "" {
		req.ID = id
	}

	quote, err := h.quoteService.Save(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, quote))
}

// DeleteQuote removes a quote; its number is never reused
// @Summary      Delete quote
// @Tags         quotes
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.quoteService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "quote deleted"}))
}

// ConvertToInvoice creates an invoice from a quote and marks the quote accepted
// @Summary      Convert quote to invoice
// @Description  Copies the quote's financials verbatim into a new invoice and flips the quote to Accepted
// @Tags         quotes
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      201  {object}  response.Response{data=service.InvoiceResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/quotes/{id}/convert [post]
func (h *QuoteHandler) ConvertToInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invoice, err := h.quoteService.ConvertToInvoice(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, invoice))
}

// QuotePDF renders the quote as a downloadable PDF
// @Summary      Quote PDF
// @Tags         quotes
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id  path  string  true  "Quote ID"
// @Success      200
// @Failure      404  {object}  response.Response
// @Router       /api/quotes/{id}/pdf [get]
func (h *QuoteHandler) QuotePDF(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	data, number, err := h.pdfService.QuotePDF(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="quote-%d.pdf"`, number))
	c.Data(http.StatusOK, "application/pdf", data)
}
