package controller

import (
	"errors"
	"time"

	"todolist-be/internal/dto"
	"todolist-be/internal/pkg/apperror"
	"todolist-be/internal/pkg/serverutils"
	"todolist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	ShowLogin(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	ShowRegister(ctx *fiber.Ctx) error
	Register(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	CheckTelegram(ctx *fiber.Ctx) error
}

type authController struct {
	authService    service.IAuthService
	sessionService service.ISessionService
	sessionTTL     time.Duration
}

func NewAuthController(authService service.IAuthService, sessionService service.ISessionService, sessionTTL time.Duration) IAuthController {
	return &authController{
		authService:    authService,
		sessionService: sessionService,
		sessionTTL:     sessionTTL,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Get("/login", c.ShowLogin)
	r.Post("/login", c.Login)
	r.Get("/register", c.ShowRegister)
	r.Post("/register", c.Register)
	r.Get("/logout", c.Logout)
	r.Get("/check-telegram", serverutils.SessionMiddleware(c.sessionService, false), c.CheckTelegram)
}

func (c *authController) ShowLogin(ctx *fiber.Ctx) error {
	return ctx.Render("login", fiber.Map{
		"Error": ctx.Query("error") != "",
	})
}

// Login is a browser form post: failures bounce back to the form with a flag
// instead of a JSON error, successes plant the session cookie and go home.
func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Redirect("/login?error=1", fiber.StatusFound)
	}

	userId, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidCredentials) {
			return ctx.Redirect("/login?error=1", fiber.StatusFound)
		}
		return err
	}

	token, err := c.sessionService.Create(ctx.Context(), userId)
	if err != nil {
		return err
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(c.sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return ctx.Redirect("/", fiber.StatusFound)
}

func (c *authController) ShowRegister(ctx *fiber.Ctx) error {
	return ctx.Render("register", fiber.Map{
		"Error": ctx.Query("error"),
	})
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Redirect("/register?error=1", fiber.StatusFound)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Redirect("/register?error=1", fiber.StatusFound)
	}

	_, err := c.authService.Register(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, apperror.ErrUsernameTaken) {
			return ctx.Redirect("/register?error=taken", fiber.StatusFound)
		}
		if errors.Is(err, apperror.ErrValidation) {
			return ctx.Redirect("/register?error=1", fiber.StatusFound)
		}
		return err
	}

	return ctx.Redirect("/login", fiber.StatusFound)
}

// Logout destroys the server-side session and expires the cookie. Safe to hit
// without a session.
func (c *authController) Logout(ctx *fiber.Ctx) error {
	token := ctx.Cookies(serverutils.SessionCookieName)
	if token != "" {
		_ = c.sessionService.Destroy(ctx.Context(), token)
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return ctx.Redirect("/login", fiber.StatusFound)
}

func (c *authController) CheckTelegram(ctx *fiber.Ctx) error {
	linked, err := c.authService.HasTelegram(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(dto.TelegramStatusResponse{HasTelegram: linked})
}
