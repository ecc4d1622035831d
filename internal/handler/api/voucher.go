package api

import (
	"net/http"
	"strings"

	"voucher-engine/internal/domain/auth"
	reqdto "voucher-engine/internal/handler/dto/request"
	resdto "voucher-engine/internal/handler/dto/response"
	"voucher-engine/internal/handler/httperr"
	"voucher-engine/internal/handler/middleware"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VoucherHandler struct {
	cmds  commands.VoucherCommands
	batch commands.BatchCommands
	q     queries.VoucherQueries
}

func NewVoucherHandler(cmds commands.VoucherCommands, batch commands.BatchCommands, q queries.VoucherQueries) *VoucherHandler {
	return &VoucherHandler{cmds: cmds, batch: batch, q: q}
}

// @Summary Get voucher
// @Description Get a voucher, localized when a language is requested
// @Tags vouchers
// @Produce json
// @Param id path string true "Voucher ID"
// @Param lang query string false "Language tag; falls back to Accept-Language"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /vouchers/{id} [get]
func (h *VoucherHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetVoucher(c.Request.Context(), id, requestLang(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Create voucher
// @Description Create a voucher in draft state
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateVoucherRequest true "Create voucher request"
// @Success 201 {object} resdto.VoucherResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /vouchers [post]
func (h *VoucherHandler) Create(c *gin.Context) {
	var req reqdto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.CreateVoucher(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/vouchers/"+view.ID.String())
	c.JSON(http.StatusCreated, view)
}

// @Summary Publish voucher
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /vouchers/{id}/publish [post]
func (h *VoucherHandler) Publish(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.cmds.Publish(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Transition voucher
// @Description Move a voucher to another state. Rejections name the allowed targets.
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Param request body reqdto.TransitionRequest true "Target state"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /vouchers/{id}/transition [post]
func (h *VoucherHandler) Transition(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Suspend voucher
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 409 {object} httperr.Response
// @Router /vouchers/{id}/suspend [post]
func (h *VoucherHandler) Suspend(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.cmds.Suspend(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Set translation
// @Tags vouchers
// @Accept json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Param lang path string true "Language tag"
// @Param request body reqdto.SetTranslationRequest true "Translated copy"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /vouchers/{id}/translations/{lang} [put]
func (h *VoucherHandler) SetTranslation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.SetTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	err := h.cmds.SetTranslation(c.Request.Context(), commands.SetTranslationInput{
		VoucherID:   id,
		Lang:        c.Param("lang"),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Claim voucher
// @Description Add the voucher to the caller's wallet
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 201 {object} resdto.ClaimResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /vouchers/{id}/claim [post]
func (h *VoucherHandler) Claim(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	res, err := h.cmds.Claim(c.Request.Context(), id, p.UserID, requestLang(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromClaimResult(res))
}

// @Summary Redeem voucher
// @Description Redeem a claimed voucher. Staff name the customer in user_id.
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Param request body reqdto.RedeemRequest false "Redeem request"
// @Success 200 {object} resdto.RedeemResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /vouchers/{id}/redeem [post]
func (h *VoucherHandler) Redeem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req reqdto.RedeemRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}

	customerID := p.UserID
	if req.UserID != nil && *req.UserID != p.UserID {
		if !p.Allows(auth.RoleBusiness) {
			httperr.AbortWithError(c, http.StatusForbidden, auth.ErrInsufficientRole, "Only staff may redeem for another user", nil)
			return
		}
		customerID = *req.UserID
	}

	in := commands.RedeemInput{
		VoucherID:      id,
		UserID:         customerID,
		RedemptionCode: strings.TrimSpace(req.RedemptionCode),
	}
	if p.Role == auth.RoleBusiness {
		in.BusinessID = p.BusinessID
	}
	res, err := h.cmds.Redeem(c.Request.Context(), in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRedeemResult(res))
}

// @Summary Record scan
// @Description Record a scan of the voucher and report whether the caller can claim it
// @Tags vouchers
// @Accept json
// @Produce json
// @Param id path string true "Voucher ID"
// @Param request body reqdto.ScanRequest true "Scan request"
// @Success 200 {object} resdto.ScanResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /vouchers/{id}/scan [post]
func (h *VoucherHandler) Scan(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in := scanInput(c, req.Source, req)
	in.VoucherID = id
	res, err := h.cmds.Scan(c.Request.Context(), in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromScanResult(res))
}

// @Summary Scan by code
// @Description Resolve a QR payload, short code or printed code and record the scan
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body reqdto.ScanCodeRequest true "Scan code request"
// @Success 200 {object} resdto.ScanResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /scan [post]
func (h *VoucherHandler) ScanCode(c *gin.Context) {
	var req reqdto.ScanCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in := scanInput(c, req.Source, reqdto.ScanRequest{Source: req.Source, Metadata: req.Metadata})
	res, err := h.cmds.ScanCode(c.Request.Context(), req.Code, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromScanResult(res))
}

// @Summary Validate voucher
// @Description Run the selected checks. An invalid voucher is a normal 200 response.
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Param request body reqdto.ValidateRequest true "Checks to run"
// @Success 200 {object} resdto.ValidationResponse
// @Router /vouchers/{id}/validate [post]
func (h *VoucherHandler) Validate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.q.Validate(c.Request.Context(), id, req.ToOptions())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidationResult(res))
}

// @Summary Issue tokens
// @Description Issue a signed QR payload and a short code for one voucher
// @Tags tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Param request body reqdto.IssueTokensRequest false "Batch id and lifetime"
// @Success 201 {object} resdto.TokenResponse
// @Failure 404 {object} httperr.Response
// @Router /vouchers/{id}/tokens [post]
func (h *VoucherHandler) IssueTokens(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.IssueTokensRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	res, err := h.cmds.IssueTokens(c.Request.Context(), id, req.BatchID, req.TTL())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromTokenResult(res))
}

// @Summary Issue batch tokens
// @Description Issue tokens for many vouchers under one batch id. Unknown vouchers are omitted.
// @Tags tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.IssueBatchTokensRequest true "Voucher ids"
// @Success 201 {object} resdto.BatchTokensResponse
// @Failure 400 {object} httperr.Response
// @Router /vouchers/tokens/batch [post]
func (h *VoucherHandler) IssueBatchTokens(c *gin.Context) {
	var req reqdto.IssueBatchTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	out, batchID, err := h.cmds.IssueBatchTokens(c.Request.Context(), req.VoucherIDs, req.BatchID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBatchTokens(batchID, out))
}

// @Summary Verify token
// @Description Check a QR payload's signature and expiry. A bad token is a 200 with valid=false.
// @Tags tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.VerifyTokenRequest true "Token"
// @Success 200 {object} resdto.VerificationResponse
// @Router /vouchers/tokens/verify [post]
func (h *VoucherHandler) VerifyToken(c *gin.Context) {
	var req reqdto.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.q.VerifyToken(c.Request.Context(), req.Token)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVerification(res))
}

// @Summary Create static code
// @Tags tokens
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 201 {object} resdto.CodeResponse
// @Router /vouchers/{id}/static-code [post]
func (h *VoucherHandler) CreateStaticCode(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	code, err := h.cmds.CreateStaticCode(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCode(code))
}

// @Summary Batch process
// @Description Expire, activate or validate many vouchers. Item failures do not fail the batch.
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BatchProcessRequest true "Batch request"
// @Success 200 {object} resdto.BatchResponse
// @Failure 400 {object} httperr.Response
// @Router /vouchers/batch [post]
func (h *VoucherHandler) BatchProcess(c *gin.Context) {
	var req reqdto.BatchProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.batch.BatchProcess(c.Request.Context(), req.VoucherIDs, req.Operation, req.ToOptions())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBatchResult(res))
}

// @Summary Expire due vouchers
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ExpireDueRequest false "Sweep limit"
// @Success 200 {object} resdto.BatchResponse
// @Router /vouchers/expire-due [post]
func (h *VoucherHandler) ExpireDue(c *gin.Context) {
	var req reqdto.ExpireDueRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	res, err := h.batch.ExpireDue(c.Request.Context(), req.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBatchResult(res))
}

// scanInput derives who is scanning from the optional principal. Business
// staff scan as their business.
func scanInput(c *gin.Context, source string, req reqdto.ScanRequest) commands.ScanInput {
	in := commands.ScanInput{
		Source:   source,
		Type:     "customer",
		Metadata: req.Metadata,
		Lang:     requestLang(c),
	}
	// clients cannot mark their own scans as synthetic
	in.Metadata.Synthetic = false
	in.Metadata.RedemptionCode = ""

	if p, ok := middleware.GetPrincipal(c); ok {
		uid := p.UserID
		in.UserID = &uid
		if p.Role == auth.RoleBusiness && p.BusinessID != nil {
			bid := *p.BusinessID
			in.Type = "business"
			in.BusinessID = &bid
		}
	}
	return in
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+param, nil)
		return uuid.Nil, false
	}
	return id, true
}

func requirePrincipal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, auth.ErrInvalidRole, "Unauthorized", nil)
		return auth.Principal{}, false
	}
	return p, true
}

// requestLang prefers ?lang= over the first Accept-Language tag.
func requestLang(c *gin.Context) string {
	if lang := c.Query("lang"); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return ""
	}
	first, _, _ := strings.Cut(header, ",")
	first, _, _ = strings.Cut(first, ";")
	return strings.TrimSpace(first)
}
