package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkvault/inkvault/internal/document/http/dto"
	"github.com/inkvault/inkvault/internal/httputil"
	"github.com/inkvault/inkvault/internal/password"
	customValidation "github.com/inkvault/inkvault/internal/validation"
)

// PasswordHandler handles HTTP requests for password scoring and generation.
type PasswordHandler struct {
	logger *slog.Logger
}

// NewPasswordHandler creates a new password handler.
func NewPasswordHandler(logger *slog.Logger) *PasswordHandler {
	return &PasswordHandler{logger: logger}
}

// ScoreHandler rates a candidate password. The candidate is neither logged
// nor stored.
// POST /v1/passwords/score
// Returns 200 OK with the score, acceptability and suggestions.
func (h *PasswordHandler) ScoreHandler(c *gin.Context) {
	var req dto.ScorePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStrength(password.Score(req.Password)))
}

// GenerateHandler produces a random password.
// POST /v1/passwords/generate
// Returns 200 OK with the password and its score.
func (h *PasswordHandler) GenerateHandler(c *gin.Context) {
	var req dto.GeneratePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	opts := password.Options{
		Length:         req.Length,
		Upper:          req.Upper,
		Lower:          req.Lower,
		Digits:         req.Digits,
		Symbols:        req.Symbols,
		ExcludeSimilar: req.ExcludeSimilar,
	}
	if !opts.Upper && !opts.Lower && !opts.Digits && !opts.Symbols {
		length := opts.Length
		excludeSimilar := opts.ExcludeSimilar
		opts = password.DefaultOptions()
		if length > 0 {
			opts.Length = length
		}
		opts.ExcludeSimilar = excludeSimilar
	}

	generated, err := password.Generate(opts)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.GeneratePasswordResponse{
		Password: generated,
		Score:    password.Score(generated).Score,
	})
}
