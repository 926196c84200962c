package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Authenticator is the slice of the upstream client the login flow needs.
type Authenticator interface {
	RequestChallenge(ctx context.Context, account string) (string, error)
	SubmitSignature(ctx context.Context, account, signature string) (string, error)
}

// Handler proxies the game's wallet-signature login. The client asks us for
// a challenge, signs it with their wallet, and posts the signature back; the
// upstream game token we get in return is wrapped in a session JWT.
type Handler struct {
	Upstream Authenticator
	Tokens   TokenService
}

func NewHandler(upstream Authenticator, tokens TokenService) *Handler {
	return &Handler{Upstream: upstream, Tokens: tokens}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/challenge", h.challenge)
	rg.POST("/verify", h.verify)
}

type challengeReq struct {
	Account string `json:"account"`
}

func (h *Handler) challenge(c *gin.Context) {
	var req challengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	account := strings.TrimSpace(req.Account)
	if account == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account required"})
		return
	}

	msg, err := h.Upstream.RequestChallenge(c.Request.Context(), account)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "challenge request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account, "message": msg})
}

type verifyReq struct {
	Account   string `json:"account"`
	Signature string `json:"signature"`
}

func (h *Handler) verify(c *gin.Context) {
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	account := strings.TrimSpace(req.Account)
	if account == "" || req.Signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account and signature required"})
		return
	}

	gameToken, err := h.Upstream.SubmitSignature(c.Request.Context(), account, req.Signature)
	if err != nil {
		// don't reveal whether account or signature was the problem
		c.JSON(http.StatusUnauthorized, gin.H{"error": "signature rejected"})
		return
	}

	token, exp, err := h.Tokens.Sign(account, gameToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account":    account,
		"token":      token,
		"expires_at": exp.UTC().Format(time.RFC3339),
	})
}
