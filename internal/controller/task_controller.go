package controller

import (
	"todolist-be/internal/dto"
	"todolist-be/internal/pkg/serverutils"
	"todolist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITaskController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type taskController struct {
	taskService    service.ITaskService
	sessionService service.ISessionService
}

func NewTaskController(taskService service.ITaskService, sessionService service.ISessionService) ITaskController {
	return &taskController{
		taskService:    taskService,
		sessionService: sessionService,
	}
}

func (c *taskController) RegisterRoutes(r fiber.Router) {
	// page routes redirect unauthenticated browsers, API routes answer 401
	page := serverutils.SessionMiddleware(c.sessionService, true)
	api := serverutils.SessionMiddleware(c.sessionService, false)

	r.Get("/", page, c.Index)
	r.Post("/add", page, c.Add)
	r.Post("/delete", page, c.Delete)
	r.Get("/list", api, c.List)
	r.Post("/update", api, c.Update)
}

func (c *taskController) Index(ctx *fiber.Ctx) error {
	tasks, err := c.taskService.List(ctx.Context(), serverutils.UserID(ctx), service.OrderIDAsc)
	if err != nil {
		return err
	}

	rows := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, dto.TaskResponse{Id: task.Id, Text: task.Text})
	}

	return ctx.Render("index", fiber.Map{
		"Tasks": rows,
	})
}

func (c *taskController) List(ctx *fiber.Ctx) error {
	tasks, err := c.taskService.List(ctx.Context(), serverutils.UserID(ctx), service.OrderIDAsc)
	if err != nil {
		return err
	}

	rows := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, dto.TaskResponse{Id: task.Id, Text: task.Text})
	}
	return ctx.JSON(rows)
}

func (c *taskController) Add(ctx *fiber.Ctx) error {
	var req dto.AddTaskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if _, err := c.taskService.Add(ctx.Context(), serverutils.UserID(ctx), req.Text); err != nil {
		return err
	}
	return ctx.Redirect("/", fiber.StatusFound)
}

func (c *taskController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateTaskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.taskService.Edit(ctx.Context(), serverutils.UserID(ctx), req.Id, req.Text); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Task updated", nil))
}

func (c *taskController) Delete(ctx *fiber.Ctx) error {
	var req dto.DeleteTaskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.taskService.Remove(ctx.Context(), serverutils.UserID(ctx), req.Id); err != nil {
		return err
	}
	return ctx.Redirect("/", fiber.StatusFound)
}
