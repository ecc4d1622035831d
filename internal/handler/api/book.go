package api

import (
	"fmt"
	"net/http"

	reqdto "voucher-engine/internal/handler/dto/request"
	resdto "voucher-engine/internal/handler/dto/response"
	"voucher-engine/internal/handler/httperr"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	cmds commands.BookCommands
	q    queries.BookQueries
}

func NewBookHandler(cmds commands.BookCommands, q queries.BookQueries) *BookHandler {
	return &BookHandler{cmds: cmds, q: q}
}

// @Summary Create voucher book
// @Description Create a draft book. Drafts may be incomplete.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookRequest true "Create book request"
// @Success 201 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Router /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.CreateBook(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/books/"+view.ID.String())
	c.JSON(http.StatusCreated, view)
}

// @Summary Get voucher book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} resdto.BookResponse
// @Failure 404 {object} httperr.Response
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetBook(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Add book entry
// @Description Place a voucher on a page of a draft book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param request body reqdto.AddBookEntryRequest true "Entry"
// @Success 201 {object} resdto.BookEntryResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /books/{id}/entries [post]
func (h *BookHandler) AddEntry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AddBookEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	entry, err := h.cmds.AddBookEntry(c.Request.Context(), req.ToInput(id))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookEntry(entry))
}

// @Summary Transition voucher book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param request body reqdto.TransitionRequest true "Target status"
// @Success 200 {object} resdto.BookResponse
// @Failure 409 {object} httperr.Response
// @Router /books/{id}/transition [post]
func (h *BookHandler) Transition(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.TransitionBook(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Book readiness
// @Description List the fields still missing before the book can go to print
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} resdto.ReadinessResponse
// @Failure 404 {object} httperr.Response
// @Router /books/{id}/readiness [get]
func (h *BookHandler) Readiness(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	check, err := h.q.Readiness(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReadiness(check))
}

// @Summary Render book PDF
// @Tags books
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {file} binary
// @Failure 404 {object} httperr.Response
// @Router /books/{id}/pdf [get]
func (h *BookHandler) PDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := h.q.RenderPDF(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="book-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", out)
}
