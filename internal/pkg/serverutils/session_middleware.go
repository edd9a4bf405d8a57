package serverutils

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

const SessionCookieName = "session_id"

// SessionResolver is satisfied by the session service. Declared here so the
// middleware does not depend on the service package.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (int64, error)
}

// SessionMiddleware resolves the session cookie and stores the account id in
// ctx.Locals("user_id"). HTML routes redirect to /login on failure; JSON
// routes get a 401 envelope.
func SessionMiddleware(sessions SessionResolver, redirectToLogin bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := ctx.Cookies(SessionCookieName)
		if token != "" {
			if userId, err := sessions.Resolve(ctx.Context(), token); err == nil {
				ctx.Locals("user_id", userId)
				return ctx.Next()
			}
		}

		if redirectToLogin {
			return ctx.Redirect("/login", fiber.StatusFound)
		}
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Authentication required"))
	}
}

// UserID reads the account id stored by SessionMiddleware.
func UserID(ctx *fiber.Ctx) int64 {
	id, _ := ctx.Locals("user_id").(int64)
	return id
}
