package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/domain"
)

func TestErrorResponse_Mapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.NewValidationError("sku", domain.CodeRequired, "requerido"), http.StatusBadRequest, CodeValidation},
		{"not found wrapped", fmt.Errorf("get: %w", domain.NewNotFound("producto", "x")), http.StatusNotFound, CodeNotFound},
		{"not found sentinel", domain.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"conflict", domain.NewConflict("producto", "sku", "A"), http.StatusConflict, CodeConflict},
		{"reconciliation", &domain.ReconciliationError{ProductID: "p", Previous: 5, Delta: -1, New: 3, Reason: "no cuadra"}, http.StatusInternalServerError, CodeReconciliation},
		{"fiber", fiber.NewError(http.StatusBadRequest, "cuerpo inválido"), http.StatusBadRequest, CodeInvalidBody},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := errorResponse(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestErrorResponse_ValidationKeepsViolations(t *testing.T) {
	ve := &domain.ValidationError{}
	ve.Add("cost_price", domain.CodeNegative, "no puede ser negativo")
	ve.Add("reorder_quantity", domain.CodeOutOfRange, "debe ser mayor que 0")

	_, body := errorResponse(ve)
	require.Len(t, body.Violations, 2)
	assert.Equal(t, "reorder_quantity", body.Violations[1].Field)
}

func TestRequestLogger_LogsFinalStatus(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log)})
	app.Use(RequestLogger(log))
	app.Use(ActorMiddleware())
	app.Get("/reconcile", func(c *fiber.Ctx) error {
		return &domain.ReconciliationError{ProductID: "p", Reason: "no cuadra"}
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(GetUserID(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reconcile", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, buf.String(), `"status":500`)
	assert.Contains(t, buf.String(), "error interno")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderUserID, "u-1")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), `"user_id":"u-1"`)
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	type sample struct {
		Name   string   `json:"name" validate:"required"`
		Limit  int      `query:"limit" validate:"max=100"`
		Codes  []string `json:"codes" validate:"dive,max=3"`
		Ignore string   `json:"-"`
	}
	err := validateStruct(&sample{Limit: 500, Codes: []string{"ABCD"}})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)

	fields := map[string]string{}
	for _, v := range ve.Violations {
		fields[v.Field] = v.Code
	}
	assert.Equal(t, domain.CodeRequired, fields["name"])
	assert.Equal(t, domain.CodeOutOfRange, fields["limit"])
	assert.Equal(t, domain.CodeOutOfRange, fields["codes[0]"])
}
