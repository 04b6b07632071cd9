package handler

import (
	"net/http"

	"hamrah-bazaar/internal/usecase/verification"
	"hamrah-bazaar/pkg/utils"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	service *verification.Service
}

func NewVerificationHandler(service *verification.Service) *VerificationHandler {
	return &VerificationHandler{service: service}
}

func (h *VerificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	verify := router.Group("/auth")
	{
		verify.POST("/send-code", h.SendCode)
		verify.POST("/verify-code", h.VerifyCode)
		verify.POST("/forgot-password", h.ForgotPassword)
		verify.POST("/reset-password", h.ResetPassword)
	}
}

func (h *VerificationHandler) SendCode(c *gin.Context) {
	var req verification.IssueCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.IssueCode(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verification code sent", resp)
}

func (h *VerificationHandler) VerifyCode(c *gin.Context) {
	var req verification.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	authResponse, err := h.service.VerifyCode(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verification successful", authResponse)
}

func (h *VerificationHandler) ForgotPassword(c *gin.Context) {
	var req verification.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "If the account exists, a reset code has been sent", nil)
}

func (h *VerificationHandler) ResetPassword(c *gin.Context) {
	var req verification.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}
