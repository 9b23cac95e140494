package user

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/internal/controller"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/middleware"
	"github.com/lshigami/k12tutor/internal/service"
	"github.com/rs/zerolog/log"
)

const maxHomeworkImageBytes = 5 << 20

var errImageTooLarge = errors.New("image exceeds 5 MiB")

type HomeworkController struct {
	homeworkService service.HomeworkService
}

func NewHomeworkController(homeworkService service.HomeworkService) *HomeworkController {
	return &HomeworkController{homeworkService: homeworkService}
}

func (c *HomeworkController) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/homework-help", c.Help)
	protected.GET("/homework-help/history", c.History)
	protected.POST("/homework-help/:id/rate", c.Rate)
}

// Help godoc
// @Summary Ask for homework help
// @Description Rate limited per day. Returns 429 with the quota when the limit is reached.
// @Tags Homework
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param questionText formData string true "Question"
// @Param subject formData string true "Subject name"
// @Param questionType formData string false "Question type (default text)"
// @Param image formData file false "Optional image, up to 5 MiB"
// @Success 200 {object} dto.HomeworkHelpResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.QuotaExceededResponse
// @Router /homework-help [post]
func (c *HomeworkController) Help(ctx *gin.Context) {
	var req dto.HomeworkHelpRequest
	if err := ctx.ShouldBind(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	image, err := readImage(ctx)
	if err != nil {
		controller.RespondBindError(ctx, err)
		return
	}

	resp, err := c.homeworkService.Help(ctx.Request.Context(), middleware.StudentID(ctx), req, image)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func readImage(ctx *gin.Context) ([]byte, error) {
	header, err := ctx.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if header.Size > maxHomeworkImageBytes {
		return nil, errImageTooLarge
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxHomeworkImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxHomeworkImageBytes {
		return nil, errImageTooLarge
	}
	log.Debug().Str("filename", header.Filename).Int("bytes", len(data)).Msg("Homework image received")
	return data, nil
}

// History godoc
// @Summary Past homework help sessions
// @Tags Homework
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 10)"
// @Param offset query int false "Offset"
// @Success 200 {array} dto.HomeworkHistoryItem
// @Router /homework-help/history [get]
func (c *HomeworkController) History(ctx *gin.Context) {
	var query dto.HistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	items, err := c.homeworkService.History(ctx.Request.Context(), middleware.StudentID(ctx), query)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Rate godoc
// @Summary Rate a homework help session
// @Tags Homework
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Homework session ID"
// @Param rating body dto.RateHomeworkRequest true "Rating 1-5"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /homework-help/{id}/rate [post]
func (c *HomeworkController) Rate(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.RateHomeworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	if err := c.homeworkService.Rate(ctx.Request.Context(), middleware.StudentID(ctx), id, req.Rating); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
