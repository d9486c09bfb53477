package request

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nmdong/VietThanhProductions/utils/response"
)

// ParamID reads a positive numeric route parameter
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, response.NewAPIError(fiber.StatusBadRequest, response.CodeInvalidID,
			"Invalid "+name+": "+strconv.Quote(raw))
	}
	return uint(id), nil
}
