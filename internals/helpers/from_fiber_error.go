package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError maps an error coming out of a transaction (usually a
// *fiber.Error) onto the JSON envelope. Anything else becomes a 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return Error(c, fe.Code, fe.Message)
	}
	return Error(c, fiber.StatusInternalServerError, err.Error())
}
