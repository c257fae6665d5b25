// Package http provides the gin handlers for vault accounts.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/accountvault/internal/account/http/dto"
	"github.com/allisson/accountvault/internal/account/usecase"
	"github.com/allisson/accountvault/internal/httputil"
)

// AccountHandler handles account HTTP requests. Every route requires AuthenticationMiddleware.
type AccountHandler struct {
	accountUseCase usecase.UseCase
	logger         *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUseCase usecase.UseCase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// ListHandler lists accounts, most recently updated first.
// GET /accounts - Optional offset and limit query parameters; without them every account is returned.
func (h *AccountHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	accounts, err := h.accountUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountListResponse(accounts))
}

// UpsertHandler creates or updates an account by code.
// POST /accounts - Returns 200 OK with the stored account.
func (h *AccountHandler) UpsertHandler(c *gin.Context) {
	var req dto.UpsertAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	account, err := h.accountUseCase.Upsert(c.Request.Context(), dto.ToUpsertInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// DeleteHandler removes an account.
// DELETE /accounts/:code - Returns {"ok": true}, 404 when the code is unknown.
func (h *AccountHandler) DeleteHandler(c *gin.Context) {
	if err := h.accountUseCase.Delete(c.Request.Context(), c.Param("code")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{OK: true})
}

// SecretsHandler reveals the decrypted password and seed of an account.
// GET /accounts/:code/secrets
func (h *AccountHandler) SecretsHandler(c *gin.Context) {
	secrets, err := h.accountUseCase.RevealSecrets(c.Request.Context(), c.Param("code"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToSecretsResponse(secrets))
}

// OTPHandler returns the current one-time code of an account.
// GET /accounts/:code/otp
func (h *AccountHandler) OTPHandler(c *gin.Context) {
	code, err := h.accountUseCase.GetOTP(c.Request.Context(), c.Param("code"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToOTPResponse(code))
}

// BulkOTPHandler returns the current one-time code of several accounts.
// POST /accounts/otp/bulk - Unknown codes map to null values.
func (h *AccountHandler) BulkOTPHandler(c *gin.Context) {
	var req dto.BulkOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	results, err := h.accountUseCase.BulkOTP(c.Request.Context(), req.Codes)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToBulkOTPResponse(results))
}
