package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/KrishKoria/Qest/internal/model"
	"github.com/KrishKoria/Qest/internal/repository"
)

// CatalogHandler serves course and class listings.
type CatalogHandler struct {
	Courses *repository.CourseRepo
	Classes *repository.ClassRepo
}

func NewCatalogHandler(courses *repository.CourseRepo, classes *repository.ClassRepo) *CatalogHandler {
	return &CatalogHandler{Courses: courses, Classes: classes}
}

type courseResp struct {
	ID              string   `json:"_id"`
	Name            string   `json:"name"`
	Instructor      string   `json:"instructor"`
	Description     string   `json:"description,omitempty"`
	DurationWeeks   int      `json:"duration_weeks"`
	Capacity        int      `json:"capacity"`
	EnrollmentCount int      `json:"enrollment_count"`
	CompletionRate  float64  `json:"completion_rate"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	DifficultyLevel string   `json:"difficulty_level"`
	Prerequisites   []string `json:"prerequisites"`
	IsActive        bool     `json:"is_active"`
	CreatedDate     string   `json:"created_date"`
}

func toCourseResp(co model.Course) courseResp {
	prereqs := co.Prerequisites
	if prereqs == nil {
		prereqs = []string{}
	}
	return courseResp{
		ID:              strconv.FormatUint(co.ID, 10),
		Name:            co.Name,
		Instructor:      co.Instructor,
		Description:     co.Description,
		DurationWeeks:   co.DurationWeeks,
		Capacity:        co.Capacity,
		EnrollmentCount: co.EnrollmentCount,
		CompletionRate:  co.CompletionRate,
		Price:           co.Price,
		Category:        co.Category,
		DifficultyLevel: co.DifficultyLevel,
		Prerequisites:   prereqs,
		IsActive:        co.IsActive,
		CreatedDate:     co.CreatedDate.UTC().Format(time.RFC3339),
	}
}

type classResp struct {
	ID              string   `json:"_id"`
	CourseID        string   `json:"course_id"`
	CourseName      string   `json:"course_name"`
	Instructor      string   `json:"instructor"`
	Schedule        string   `json:"schedule"`
	DurationMinutes int      `json:"duration_minutes"`
	Capacity        int      `json:"capacity"`
	EnrolledCount   int      `json:"enrolled_count"`
	Room            string   `json:"room,omitempty"`
	EquipmentNeeded []string `json:"equipment_needed"`
	Notes           string   `json:"notes,omitempty"`
}

func toClassResp(cl model.Class) classResp {
	equipment := cl.EquipmentNeeded
	if equipment == nil {
		equipment = []string{}
	}
	return classResp{
		ID:              strconv.FormatUint(cl.ID, 10),
		CourseID:        strconv.FormatUint(cl.CourseID, 10),
		CourseName:      cl.CourseName,
		Instructor:      cl.Instructor,
		Schedule:        cl.Schedule.UTC().Format(time.RFC3339),
		DurationMinutes: cl.DurationMinutes,
		Capacity:        cl.Capacity,
		EnrolledCount:   cl.EnrolledCount,
		Room:            cl.Room,
		EquipmentNeeded: equipment,
		Notes:           cl.Notes,
	}
}

// ListCourses returns courses filtered by optional instructor. Inactive
// courses are hidden unless active_only=false.
func (h *CatalogHandler) ListCourses(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	activeOnly := true
	if raw := c.QueryParam("active_only"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			activeOnly = v
		}
	}

	limit := queryInt(c, "limit", 50)
	skip := queryInt(c, "skip", 0)
	courses, err := h.Courses.List(ctx, c.QueryParam("instructor"), activeOnly, limit, skip)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]courseResp, 0, len(courses))
	for _, co := range courses {
		out = append(out, toCourseResp(co))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListClasses returns scheduled classes filtered by optional course_id and
// instructor. upcoming_only=true restricts to sessions from now on.
func (h *CatalogHandler) ListClasses(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var courseID uint64
	if raw := c.QueryParam("course_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course_id"})
		}
		courseID = id
	}

	var from *time.Time
	if raw := c.QueryParam("upcoming_only"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil && v {
			now := time.Now().UTC()
			from = &now
		}
	}

	limit := queryInt(c, "limit", 50)
	skip := queryInt(c, "skip", 0)
	classes, err := h.Classes.List(ctx, courseID, c.QueryParam("instructor"), from, nil, limit, skip)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]classResp, 0, len(classes))
	for _, cl := range classes {
		out = append(out, toClassResp(cl))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
