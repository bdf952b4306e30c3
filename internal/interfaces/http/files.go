package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// sendFile responde un archivo como descarga.
func sendFile(c *fiber.Ctx, filename, contentType string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(data)))
	return c.Status(fiber.StatusOK).Send(data)
}
