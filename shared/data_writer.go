package shared

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// Response is the API envelope: {success, message, data} plus the optional
// pagination/links block for collection endpoints and errors/error for
// failures.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
	Links      interface{} `json:"links,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
	Error      string      `json:"error,omitempty"`
	RetryAfter int         `json:"retry_after,omitempty"`
}

var jsonAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

func render(c *fiber.Ctx, httpCode int, resp Response) error {
	body, err := jsonAPI.Marshal(resp)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(httpCode).Send(body)
}

func ResponseJSON(c *fiber.Ctx, httpCode int, message string, data interface{}) error {
	return render(c, httpCode, Response{
		Success: httpCode < 400,
		Message: message,
		Data:    data,
	})
}

// ResponsePaginated writes a collection page with its pagination metadata
// and navigation links alongside the data.
func ResponsePaginated(c *fiber.Ctx, message string, items, pagination, links interface{}) error {
	return render(c, fiber.StatusOK, Response{
		Success:    true,
		Message:    message,
		Data:       items,
		Pagination: pagination,
		Links:      links,
	})
}

func ResponseErrorJSON(c *fiber.Ctx, httpCode int, message string, errs interface{}) error {
	return render(c, httpCode, Response{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// ResponseRateLimited writes the 429 contract shared by both admission
// gates: mirrored retry_after in the body and the kind in "error".
func ResponseRateLimited(c *fiber.Ctx, kind, message string, retryAfter int) error {
	return render(c, fiber.StatusTooManyRequests, Response{
		Success:    false,
		Message:    message,
		Error:      kind,
		RetryAfter: retryAfter,
	})
}
