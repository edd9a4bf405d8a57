package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todolist-be/internal/pkg/apperror"
	"todolist-be/internal/pkg/logger"
	"todolist-be/internal/service"
)

const (
	replyLinkFirst = "Link your account first with /link <username> <password>"
	replyInternal  = "Something went wrong while handling the command. Please try again later."

	replyHelp = "Unknown command. Available commands:\n\n" +
		"/start - Get started\n" +
		"/link - Link your account\n" +
		"/list - Show tasks\n" +
		"/add - Add a task\n" +
		"/delete - Delete a task\n" +
		"/edit - Edit a task"

	replyStart = "To-Do List Bot\n\n" +
		"This bot manages your task list.\n\n" +
		"Link your account first:\n" +
		"/link <username> <password>\n\n" +
		"After linking you can use:\n" +
		"/list - Show tasks\n" +
		"/add <text> - Add a task\n" +
		"/delete <ID> - Delete a task\n" +
		"/edit <ID> <text> - Edit a task"

	replyLinked = "Account linked!\n\n" +
		"You can now manage your tasks:\n" +
		"/list - Show all tasks\n" +
		"/add <text> - Add a task\n" +
		"/delete <ID> - Delete a task\n" +
		"/edit <ID> <text> - Edit a task"
)

// Handler turns one incoming chat message into one reply. It owns the command
// grammar and the reply texts; delivery is the transport's problem, so it can
// be driven by the real long-polling loop or directly from tests.
type Handler struct {
	authService service.IAuthService
	taskService service.ITaskService
	log         logger.ILogger
}

func NewHandler(authService service.IAuthService, taskService service.ITaskService, log logger.ILogger) *Handler {
	return &Handler{
		authService: authService,
		taskService: taskService,
		log:         log,
	}
}

// Handle dispatches one message from the given chat identity. The empty reply
// means "say nothing" (non-command chatter is ignored).
func (h *Handler) Handle(ctx context.Context, telegramId int64, text string) string {
	cmd, ok := ParseCommand(text)
	if !ok {
		return ""
	}

	switch cmd.Name {
	case "/start":
		return replyStart
	case "/link":
		return h.handleLink(ctx, telegramId, cmd)
	case "/list":
		return h.handleList(ctx, telegramId)
	case "/add":
		return h.handleAdd(ctx, telegramId, cmd)
	case "/delete":
		return h.handleDelete(ctx, telegramId, cmd)
	case "/edit":
		return h.handleEdit(ctx, telegramId, cmd)
	default:
		return replyHelp
	}
}

func (h *Handler) handleLink(ctx context.Context, telegramId int64, cmd Command) string {
	if len(cmd.Args) < 2 {
		return "Wrong format. Use: /link <username> <password>"
	}

	err := h.authService.LinkTelegram(ctx, cmd.Args[0], cmd.Args[1], telegramId)
	switch {
	case err == nil:
		return replyLinked
	case errors.Is(err, apperror.ErrInvalidCredentials):
		return "Invalid username or password. Try again."
	case errors.Is(err, apperror.ErrTelegramAlreadyLinked):
		return "This Telegram account is already linked."
	default:
		return h.internal(telegramId, "link", err)
	}
}

func (h *Handler) handleList(ctx context.Context, telegramId int64) string {
	user, err := h.authService.ResolveTelegram(ctx, telegramId)
	if err != nil {
		return h.resolveReply(telegramId, err)
	}

	tasks, err := h.taskService.List(ctx, user.Id, service.OrderNewestFirst)
	if err != nil {
		return h.internal(telegramId, "list", err)
	}
	if len(tasks) == 0 {
		return "Your task list is empty. Add the first one with /add"
	}

	lines := make([]string, 0, len(tasks))
	for _, task := range tasks {
		lines = append(lines, fmt.Sprintf("#%d: %s", task.Id, task.Text))
	}
	return fmt.Sprintf("Your tasks (%d):\n\n%s", len(tasks), strings.Join(lines, "\n\n"))
}

func (h *Handler) handleAdd(ctx context.Context, telegramId int64, cmd Command) string {
	if len(cmd.Args) < 1 {
		return "Wrong format. Use: /add <task text>"
	}

	user, err := h.authService.ResolveTelegram(ctx, telegramId)
	if err != nil {
		return h.resolveReply(telegramId, err)
	}

	task, err := h.taskService.Add(ctx, user.Id, cmd.Rest(0))
	switch {
	case err == nil:
		return fmt.Sprintf("Task added:\n%q", task.Text)
	case errors.Is(err, apperror.ErrEmptyText):
		return "Task text cannot be empty"
	default:
		return h.internal(telegramId, "add", err)
	}
}

func (h *Handler) handleDelete(ctx context.Context, telegramId int64, cmd Command) string {
	taskId, ok := parseTaskID(cmd, 0)
	if !ok {
		return "Wrong format. Use: /delete <task ID>"
	}

	user, err := h.authService.ResolveTelegram(ctx, telegramId)
	if err != nil {
		return h.resolveReply(telegramId, err)
	}

	err = h.taskService.Remove(ctx, user.Id, taskId)
	switch {
	case err == nil:
		return fmt.Sprintf("Task #%d deleted", taskId)
	case errors.Is(err, apperror.ErrTaskNotFound):
		return fmt.Sprintf("Task #%d not found", taskId)
	default:
		return h.internal(telegramId, "delete", err)
	}
}

func (h *Handler) handleEdit(ctx context.Context, telegramId int64, cmd Command) string {
	taskId, ok := parseTaskID(cmd, 0)
	if !ok || len(cmd.Args) < 2 {
		return "Wrong format. Use: /edit <ID> <new text>"
	}

	user, err := h.authService.ResolveTelegram(ctx, telegramId)
	if err != nil {
		return h.resolveReply(telegramId, err)
	}

	err = h.taskService.Edit(ctx, user.Id, taskId, cmd.Rest(1))
	switch {
	case err == nil:
		return fmt.Sprintf("Task #%d updated:\n%q", taskId, cmd.Rest(1))
	case errors.Is(err, apperror.ErrTaskNotFound):
		return fmt.Sprintf("Task #%d not found", taskId)
	case errors.Is(err, apperror.ErrEmptyText):
		return "Task text cannot be empty"
	default:
		return h.internal(telegramId, "edit", err)
	}
}

func (h *Handler) resolveReply(telegramId int64, err error) string {
	if errors.Is(err, apperror.ErrTelegramNotLinked) {
		return replyLinkFirst
	}
	return h.internal(telegramId, "resolve", err)
}

func (h *Handler) internal(telegramId int64, command string, err error) string {
	if h.log != nil {
		h.log.Error("bot", "command failed", map[string]interface{}{
			"command":     command,
			"telegram_id": telegramId,
			"error":       err.Error(),
		})
	}
	return replyInternal
}

func parseTaskID(cmd Command, i int) (int64, bool) {
	if i >= len(cmd.Args) {
		return 0, false
	}
	id, err := strconv.ParseInt(cmd.Args[i], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
