package v1

import (
	"interview-experience-backend/internal/delivery/http/response"
	"interview-experience-backend/internal/domain"
	"interview-experience-backend/pkg/apperror"
	"interview-experience-backend/pkg/validation"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionUC domain.SubmissionUsecase
}

func NewSubmissionHandler(protected *gin.RouterGroup, submissionUC domain.SubmissionUsecase) {
	handler := &SubmissionHandler{submissionUC: submissionUC}

	submissions := protected.Group("/submissions")
	{
		submissions.POST("", handler.Create)
		submissions.GET("", handler.List)
		submissions.GET("/:id", handler.Get)
		submissions.PUT("/:id", handler.Update)
		submissions.DELETE("/:id", handler.Delete)
	}
}

// CreateSubmission godoc
// @Summary      Share an interview experience
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        submission  body      domain.SubmissionFields  true  "Submission JSON"
// @Success      201         {object}  domain.Submission
// @Failure      400         {object}  response.Response
// @Failure      401         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Router       /submissions [post]
// @Security     BearerAuth
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req domain.SubmissionFields
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	submission, err := h.submissionUC.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// ListSubmissions godoc
// @Summary      List or search submissions
// @Description  Returns submissions of all users; company filters by case-insensitive substring
// @Tags         submissions
// @Produce      json
// @Param        company  query     string  false  "Company substring"
// @Success      200      {array}   domain.Submission
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /submissions [get]
// @Security     BearerAuth
func (h *SubmissionHandler) List(c *gin.Context) {
	submissions, err := h.submissionUC.List(c.Request.Context(), c.Query("company"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// GetSubmission godoc
// @Summary      Get one of your submissions
// @Tags         submissions
// @Produce      json
// @Param        id   path      string  true  "Submission ID"
// @Success      200  {object}  domain.Submission
// @Failure      404  {object}  response.Response
// @Router       /submissions/{id} [get]
// @Security     BearerAuth
func (h *SubmissionHandler) Get(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	submission, err := h.submissionUC.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// UpdateSubmission godoc
// @Summary      Replace one of your submissions
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        id          path      string                   true  "Submission ID"
// @Param        submission  body      domain.SubmissionFields  true  "Submission JSON"
// @Success      200         {object}  domain.Submission
// @Failure      400         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /submissions/{id} [put]
// @Security     BearerAuth
func (h *SubmissionHandler) Update(c *gin.Context) {
	var req domain.SubmissionFields
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	submission, err := h.submissionUC.Update(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// DeleteSubmission godoc
// @Summary      Delete one of your submissions
// @Tags         submissions
// @Produce      json
// @Param        id   path      string  true  "Submission ID"
// @Success      200  {object}  response.MessageBody
// @Failure      404  {object}  response.Response
// @Router       /submissions/{id} [delete]
// @Security     BearerAuth
func (h *SubmissionHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if err := h.submissionUC.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.Error(err)
		return
	}

	response.Message(c, http.StatusOK, "Submission deleted")
}
