package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"YSFinancials/models"
	"YSFinancials/pkg/errs"
	"YSFinancials/pkg/validation"
)

// MaxBodyBytes caps the size of a contact submission body.
const MaxBodyBytes = 100 << 10

// Submitter stores a validated submission.
type Submitter interface {
	Submit(ctx context.Context, sub validation.Submission) (*models.Inquiry, error)
}

// MessageResponse is the body of every non-validation JSON reply.
type MessageResponse struct {
	Message string `json:"message" example:"Inquiry saved successfully"`
}

// ValidationResponse lists every failed rule.
type ValidationResponse struct {
	Errors validation.Errors `json:"errors"`
}

// SubmitContact handles POST /contact.
//
//	@Summary		Submit an inquiry
//	@Description	Validates name, email and message and stores one inquiry.
//	@Tags			contact
//	@Accept			json
//	@Produce		json
//	@Param			inquiry	body		validation.Submission	true	"Inquiry"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	ValidationResponse
//	@Failure		403		{object}	MessageResponse
//	@Failure		413		{object}	MessageResponse
//	@Failure		429		{string}	string	"Too many requests from this IP, please try again later."
//	@Failure		500		{object}	MessageResponse
//	@Router			/contact [post]
func SubmitContact(svc Submitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, err := readFields(c)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, MessageResponse{Message: "Payload too large"})
				return
			}
			c.JSON(http.StatusBadRequest, ValidationResponse{Errors: validation.InvalidBody()})
			return
		}

		_, err = svc.Submit(c.Request.Context(), validation.FromFields(fields))
		if err == nil {
			c.JSON(http.StatusOK, MessageResponse{Message: "Inquiry saved successfully"})
			return
		}

		_ = c.Error(err)
		switch errs.KindOf(err) {
		case errs.KindValidation:
			var verrs validation.Errors
			errors.As(err, &verrs)
			c.JSON(http.StatusBadRequest, ValidationResponse{Errors: verrs})
		default:
			c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Server error"})
		}
	}
}

// readFields decodes a JSON object body. Bodies that are not declared as JSON,
// empty bodies and non-object JSON all decode to no fields.
func readFields(c *gin.Context) (map[string]any, error) {
	if c.ContentType() != binding.MIMEJSON {
		return map[string]any{}, nil
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	var payload any
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	fields, ok := payload.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	return fields, nil
}
