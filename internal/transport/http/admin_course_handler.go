package handlers

import (
	"errors"
	"net/http"

	"courseplatform/internal/application/usecase"
	"courseplatform/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminCourseHandler struct {
	catalog *usecase.CatalogUseCase
	log     *zap.SugaredLogger
}

func NewAdminCourseHandler(catalog *usecase.CatalogUseCase, log *zap.SugaredLogger) *AdminCourseHandler {
	return &AdminCourseHandler{catalog: catalog, log: log}
}

type courseReq struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Image       string  `json:"image" binding:"omitempty,url"`
}

type videoReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	URL         string `json:"url" binding:"required,url"`
	Duration    *int   `json:"duration" binding:"omitempty,gte=1"`
}

// POST /api/v1/admin/courses
func (h *AdminCourseHandler) Create(c *gin.Context) {
	var req courseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course := &domain.Course{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	}
	if err := h.catalog.CreateCourse(c, course); err != nil {
		h.log.Errorw("course create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, course)
}

// GET /api/v1/admin/courses/:id — карточка со счетчиками
func (h *AdminCourseHandler) GetOne(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	course, err := h.catalog.GetCourse(c, id)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		h.log.Errorw("course get failed", "course_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	videos, activeAccesses, err := h.catalog.CourseCounts(c, id)
	if err != nil {
		h.log.Errorw("course counts failed", "course_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"course":         course,
		"videoCount":     videos,
		"activeAccesses": activeAccesses,
	})
}

// PUT /api/v1/admin/courses/:id
func (h *AdminCourseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	var req courseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.catalog.UpdateCourse(c, id, req.Title, req.Description, req.Price, req.Image)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		h.log.Errorw("course update failed", "course_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, course)
}

// DELETE /api/v1/admin/courses/:id — каскад одной транзакцией
func (h *AdminCourseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	if err := h.catalog.DeleteCourse(c, id); err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		h.log.Errorw("course delete failed", "course_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}

// POST /api/v1/admin/courses/:id/videos
func (h *AdminCourseHandler) AddVideo(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	var req videoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.catalog.AddVideo(c, courseID, req.Title, req.Description, req.URL, req.Duration)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		// Невалидный YouTube — это ошибка ввода, а не сервера
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, video)
}

// PUT /api/v1/admin/videos/:videoId
func (h *AdminCourseHandler) UpdateVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video id"})
		return
	}

	var req videoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.catalog.UpdateVideo(c, videoID, req.Title, req.Description, req.URL, req.Duration)
	if err != nil {
		if errors.Is(err, domain.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, video)
}

// DELETE /api/v1/admin/videos/:videoId
func (h *AdminCourseHandler) DeleteVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video id"})
		return
	}

	if err := h.catalog.DeleteVideo(c, videoID); err != nil {
		if errors.Is(err, domain.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		h.log.Errorw("video delete failed", "video_id", videoID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
}

type reorderReq struct {
	VideoIDs []uuid.UUID `json:"videoIds" binding:"required,min=1"`
}

// PUT /api/v1/admin/courses/:id/videos/reorder — полный новый порядок,
// применяется либо целиком, либо никак
func (h *AdminCourseHandler) ReorderVideos(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalog.ReorderVideos(c, courseID, req.VideoIDs); err != nil {
		switch {
		case errors.Is(err, domain.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		case errors.Is(err, domain.ErrReorderMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Video list does not match course, refresh and retry"})
		default:
			h.log.Errorw("reorder failed", "course_id", courseID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
