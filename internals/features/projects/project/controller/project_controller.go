package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	projectDTO "gradhub_backend/internals/features/projects/project/dto"
	projectService "gradhub_backend/internals/features/projects/project/service"
	helper "gradhub_backend/internals/helpers"
	helperAuth "gradhub_backend/internals/helpers/auth"
)

type ProjectController struct {
	Service *projectService.ProjectService
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{Service: projectService.NewProjectService(db)}
}

var validateProject = validator.New()

// POST /api/t/projects
func (h *ProjectController) Create(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req projectDTO.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateProject.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	project, err := h.Service.Create(teacherID, projectService.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		MaxStudents: req.MaxStudents,
	})
	if err != nil {
		switch {
		case errors.Is(err, projectService.ErrQuotaExceeded):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, projectService.ErrTeacherNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create project")
		}
	}

	return helper.JsonCreated(c, "Project created", projectDTO.ToProjectItem(project))
}

// GET /api/t/projects
func (h *ProjectController) MyProjects(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	projects, err := h.Service.ListByTeacher(teacherID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list projects")
	}

	return helper.JsonOK(c, "OK", projectDTO.ToProjectItems(projects))
}

// PUT /api/t/projects/:id
func (h *ProjectController) Update(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid project id")
	}

	var req projectDTO.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateProject.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	project, err := h.Service.Update(teacherID, projectID, projectService.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		MaxStudents: req.MaxStudents,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, projectService.ErrProjectNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, projectService.ErrNotOwner):
			return helper.JsonError(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, projectService.ErrMaxBelowCurrent):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update project")
		}
	}

	return helper.JsonOK(c, "Project updated", projectDTO.ToProjectItem(project))
}

// DELETE /api/t/projects/:id
func (h *ProjectController) Delete(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid project id")
	}

	if err := h.Service.Delete(teacherID, projectID); err != nil {
		switch {
		case errors.Is(err, projectService.ErrProjectNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, projectService.ErrNotOwner):
			return helper.JsonError(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, projectService.ErrHasStudents):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete project")
		}
	}

	return helper.JsonOK(c, "Project deleted", nil)
}

// GET /api/u/projects?search=&teacher_id=&available=&page=&per_page=
func (h *ProjectController) Browse(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	filter := projectService.BrowseFilter{
		Search:        c.Query("search"),
		OnlyAvailable: c.QueryBool("available"),
	}
	if raw := c.Query("teacher_id"); raw != "" {
		teacherID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
		}
		filter.TeacherID = &teacherID
	}

	projects, total, err := h.Service.Browse(filter, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to browse projects")
	}

	items := projectDTO.ToProjectItems(projects)
	return helper.JsonOK(c, "OK", fiber.Map{
		"projects":   items,
		"pagination": helper.BuildPagination(total, paging, len(items)),
	})
}

// GET /api/u/projects/:id
func (h *ProjectController) Detail(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid project id")
	}

	project, err := h.Service.Get(projectID)
	if err != nil {
		if errors.Is(err, projectService.ErrProjectNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Project not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load project")
	}

	item := projectDTO.ToProjectItem(project)
	if name, err := h.Service.TeacherName(project.ProjectTeacherID); err == nil {
		item.TeacherName = name
	}

	return helper.JsonOK(c, "OK", item)
}
