package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"courseplatform/internal/application/usecase"
	"courseplatform/internal/domain"
	"courseplatform/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CourseHandler struct {
	catalog     *usecase.CatalogUseCase
	entitlement *usecase.EntitlementUseCase
	log         *zap.SugaredLogger
}

func NewCourseHandler(catalog *usecase.CatalogUseCase, entitlement *usecase.EntitlementUseCase, log *zap.SugaredLogger) *CourseHandler {
	return &CourseHandler{catalog: catalog, entitlement: entitlement, log: log}
}

// pageParams — везде одни и те же query-параметры page/limit
func pageParams(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}

// GET /api/v1/courses — публичный каталог
func (h *CourseHandler) List(c *gin.Context) {
	search := c.Query("search")
	page, limit, offset := pageParams(c, 20)

	courses, total, err := h.catalog.ListCourses(c, search, limit, offset)
	if err != nil {
		h.log.Errorw("course list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    courses,
		"total":   total,
		"page":    page,
		"hasMore": int64(offset+len(courses)) < total,
	})
}

// GET /api/v1/my/courses — действующие доступы юзера, свежие первыми
func (h *CourseHandler) MyCourses(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	grants, err := h.entitlement.ListEffectiveGrants(c, userID)
	if err != nil {
		h.log.Errorw("my courses failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items := make([]gin.H, 0, len(grants))
	for _, g := range grants {
		items = append(items, gin.H{
			"accessId":  g.ID,
			"grantedAt": g.CreatedAt,
			"expiresAt": g.ExpiresAt,
			"course": gin.H{
				"id":          g.Course.ID,
				"title":       g.Course.Title,
				"description": g.Course.Description,
				"image":       g.Course.Image,
			},
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// requireEntitlement — общий для watch-роутов шаг: действующий доступ
// обязателен, иначе уводим на заглавную (страничный режим)
func (h *CourseHandler) requireEntitlement(c *gin.Context) (userID, courseID uuid.UUID, ok bool) {
	userID, err := uuid.Parse(c.GetString("userId"))
	if err != nil {
		middleware.RejectForbidden(c, middleware.ModePage)
		return
	}
	courseID, err = uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.RejectForbidden(c, middleware.ModePage)
		return
	}

	entitled, err := h.entitlement.HasEffectiveAccess(c, userID, courseID)
	if err != nil {
		h.log.Errorw("entitlement check failed", "user_id", userID, "course_id", courseID, "error", err)
		middleware.RejectForbidden(c, middleware.ModePage)
		return
	}
	if !entitled {
		// Не раскрываем, существует ли курс вообще
		middleware.RejectForbidden(c, middleware.ModePage)
		return
	}
	return userID, courseID, true
}

// GET /api/v1/courses/:id/watch — список видео курса по порядку
func (h *CourseHandler) Watch(c *gin.Context) {
	_, courseID, ok := h.requireEntitlement(c)
	if !ok {
		return
	}

	course, err := h.catalog.CourseWithVideos(c, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			middleware.RejectForbidden(c, middleware.ModePage)
			return
		}
		h.log.Errorw("watch failed", "course_id", courseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     course.ID,
		"title":  course.Title,
		"videos": course.Videos,
	})
}

// GET /api/v1/courses/:id/watch/:videoId — текущее видео + соседи
func (h *CourseHandler) WatchVideo(c *gin.Context) {
	_, courseID, ok := h.requireEntitlement(c)
	if !ok {
		return
	}

	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video id"})
		return
	}

	current, prev, next, err := h.catalog.WatchVideo(c, courseID, videoID)
	if err != nil {
		if errors.Is(err, domain.ErrVideoNotFound) || errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		h.log.Errorw("watch video failed", "course_id", courseID, "video_id", videoID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"video": current,
		"prev":  prev,
		"next":  next,
	})
}

type progressReq struct {
	Percent int `json:"percent" binding:"min=0,max=100"`
}

// POST /api/v1/videos/:id/progress
func (h *CourseHandler) SaveProgress(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video id"})
		return
	}

	var req progressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalog.SaveProgress(c, userID, videoID, req.Percent); err != nil {
		if errors.Is(err, domain.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		h.log.Errorw("save progress failed", "video_id", videoID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
