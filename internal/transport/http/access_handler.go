package handlers

import (
	"errors"
	"net/http"
	"time"

	"courseplatform/internal/application/usecase"
	"courseplatform/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccessHandler struct {
	entitlement *usecase.EntitlementUseCase
	users       *usecase.UserSearchUseCase
	catalog     *usecase.CatalogUseCase
	log         *zap.SugaredLogger
}

func NewAccessHandler(
	entitlement *usecase.EntitlementUseCase,
	users *usecase.UserSearchUseCase,
	catalog *usecase.CatalogUseCase,
	log *zap.SugaredLogger,
) *AccessHandler {
	return &AccessHandler{entitlement: entitlement, users: users, catalog: catalog, log: log}
}

type grantReq struct {
	UserID   uuid.UUID `json:"userId" binding:"required"`
	CourseID uuid.UUID `json:"courseId" binding:"required"`
	// RFC3339; отсутствует = бессрочно
	ExpiresAt *time.Time `json:"expiresAt"`
}

type revokeReq struct {
	AccessID uuid.UUID `json:"accessId" binding:"required"`
}

// POST /api/v1/admin/access — выдать (или перевыдать) доступ
func (h *AccessHandler) Grant(c *gin.Context) {
	var req grantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and courseId are required"})
		return
	}

	access, err := h.entitlement.Grant(c, req.UserID, req.CourseID, req.ExpiresAt)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, domain.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		default:
			h.log.Errorw("grant failed", "user_id", req.UserID, "course_id", req.CourseID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, access)
}

// DELETE /api/v1/admin/access — отозвать (флаг, не удаление)
func (h *AccessHandler) Revoke(c *gin.Context) {
	var req revokeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accessId is required"})
		return
	}

	if err := h.entitlement.Revoke(c, req.AccessID); err != nil {
		if errors.Is(err, domain.ErrAccessNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Access grant not found"})
			return
		}
		h.log.Errorw("revoke failed", "access_id", req.AccessID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Access revoked"})
}

// GET /api/v1/admin/access — все гранты по юзерам со статусами
func (h *AccessHandler) List(c *gin.Context) {
	grouped, err := h.entitlement.ListGrantsByUser(c)
	if err != nil {
		h.log.Errorw("access list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	users := make([]gin.H, 0, len(grouped))
	for _, ug := range grouped {
		grants := make([]gin.H, 0, len(ug.Grants))
		for _, g := range ug.Grants {
			grants = append(grants, gin.H{
				"accessId":  g.Access.ID,
				"courseId":  g.Access.CourseID,
				"course":    g.Access.Course.Title,
				"isActive":  g.Access.IsActive,
				"expiresAt": g.Access.ExpiresAt,
				"grantedAt": g.Access.CreatedAt,
				"state":     g.State,
			})
		}
		users = append(users, gin.H{
			"userId": ug.User.ID,
			"name":   ug.User.Name,
			"email":  ug.User.Email,
			"grants": grants,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

// GET /api/v1/admin/search/users — для формы выдачи доступа
func (h *AccessHandler) SearchUsers(c *gin.Context) {
	query := c.Query("query")
	page, limit, offset := pageParams(c, 10)

	users, total, err := h.users.SearchClients(c, query, limit, offset)
	if err != nil {
		h.log.Errorw("user search failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	data := make([]gin.H, 0, len(users))
	for _, u := range users {
		data = append(data, gin.H{"id": u.ID, "name": u.Name, "email": u.Email})
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    data,
		"total":   total,
		"page":    page,
		"hasMore": int64(offset+len(users)) < total,
	})
}

// GET /api/v1/admin/search/courses
func (h *AccessHandler) SearchCourses(c *gin.Context) {
	query := c.Query("query")
	page, limit, offset := pageParams(c, 10)

	courses, total, err := h.catalog.SearchCourses(c, query, limit, offset)
	if err != nil {
		h.log.Errorw("course search failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	data := make([]gin.H, 0, len(courses))
	for _, course := range courses {
		data = append(data, gin.H{"id": course.ID, "title": course.Title, "price": course.Price})
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    data,
		"total":   total,
		"page":    page,
		"hasMore": int64(offset+len(courses)) < total,
	})
}
