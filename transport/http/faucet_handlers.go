package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uaplabs/minidapps/service"
)

// FaucetHandlers exposes the faucet gateway endpoints.
type FaucetHandlers struct {
	faucet     *service.FaucetService
	log        *zap.Logger
	production bool
}

// NewFaucetHandlers creates the faucet handler set.
func NewFaucetHandlers(faucet *service.FaucetService, log *zap.Logger, production bool) *FaucetHandlers {
	return &FaucetHandlers{faucet: faucet, log: log, production: production}
}

// TransferRequest moves tokens to a recipient.
type TransferRequest struct {
	ToAddress string `json:"toAddress" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
}

// ApproveRequest grants a spender an allowance.
type ApproveRequest struct {
	SpenderAddress string `json:"spenderAddress" binding:"required"`
	Amount         string `json:"amount" binding:"required"`
}

// Status handles GET /faucet/status/:address.
func (h *FaucetHandlers) Status(c *gin.Context) {
	status, err := h.faucet.Status(c.Request.Context(), callerAddress(c), c.Param("address"))
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Claim handles POST /faucet/claim.
func (h *FaucetHandlers) Claim(c *gin.Context) {
	txHash, err := h.faucet.Claim(c.Request.Context(), callerAddress(c))
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"txHash":  txHash,
		"message": service.ClaimSuccessMessage,
	})
}

// Transfer handles POST /faucet/transfer.
func (h *FaucetHandlers) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "detail": "toAddress and amount are required"})
		return
	}

	txHash, err := h.faucet.Transfer(c.Request.Context(), callerAddress(c), req.ToAddress, req.Amount)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"txHash":  txHash,
		"message": "Tokens transferred successfully",
	})
}

// Approve handles POST /faucet/approve.
func (h *FaucetHandlers) Approve(c *gin.Context) {
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "detail": "spenderAddress and amount are required"})
		return
	}

	txHash, err := h.faucet.Approve(c.Request.Context(), req.SpenderAddress, req.Amount)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"txHash":  txHash,
		"message": "Allowance approved successfully",
	})
}

// History handles GET /faucet/history and GET /faucet/history/:address.
func (h *FaucetHandlers) History(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		address = callerAddress(c)
	}

	transactions, err := h.faucet.History(c.Request.Context(), callerAddress(c), address)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":      address,
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// TransactionDetails handles GET /faucet/transaction/:hash.
func (h *FaucetHandlers) TransactionDetails(c *gin.Context) {
	details, err := h.faucet.TransactionDetails(c.Request.Context(), c.Param("hash"))
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transaction": details,
		"receipt": gin.H{
			"gasUsed":     details.GasUsed,
			"blockNumber": details.BlockNum,
		},
		"status": details.Status,
	})
}

// Info handles GET /faucet/info. Public, no bearer token required.
func (h *FaucetHandlers) Info(c *gin.Context) {
	info, err := h.faucet.Info(c.Request.Context())
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
