package serverutils

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Message string `validate:"required,max=5"`
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		errors int
	}{
		{"validation", ValidateRequest(sampleRequest{Message: "too long"}), 400, 1},
		{"not found", fmt.Errorf("session: %w", ErrNotFound), 404, 0},
		{"fiber error", fiber.NewError(fiber.StatusUnprocessableEntity, "bad category"), 422, 0},
		{"unknown", fmt.Errorf("boom"), 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/", func(ctx *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.status, body.Code)
			assert.Len(t, body.Errors, tt.errors)
		})
	}
}
