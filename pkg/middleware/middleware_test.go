package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/fern/pkg/context"
)

func captureLogger(messages *[]ectologger.EctoLogMessage) ectologger.Logger {
	return ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {
		*messages = append(*messages, msg)
	})
}

func TestContext(t *testing.T) {
	t.Run("should generate a request id when the header is absent", func(t *testing.T) {
		e := echo.New()
		e.Use(Context())
		e.GET("/", func(c echo.Context) error {
			assert.NotEmpty(t, context.GetRequestID(c.Request().Context()))
			return c.NoContent(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLogger(t *testing.T) {
	t.Run("should log one line per request", func(t *testing.T) {
		var messages []ectologger.EctoLogMessage
		e := echo.New()
		e.Use(Context())
		e.Use(Logger(captureLogger(&messages)))
		e.GET("/orders", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, messages, 1)
	})
}

func TestError(t *testing.T) {
	t.Run("should render an httperror as its status and message", func(t *testing.T) {
		var messages []ectologger.EctoLogMessage
		e := echo.New()
		e.Use(Context())
		e.HTTPErrorHandler = Error(captureLogger(&messages))
		e.GET("/", func(c echo.Context) error {
			return httperror.NewHTTPError(http.StatusBadRequest, "tier must be a number")
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "tier must be a number", body.Message)
		assert.NotEmpty(t, body.RequestID)
		assert.Len(t, messages, 1)
	})

	t.Run("should default unknown errors to a 500", func(t *testing.T) {
		var messages []ectologger.EctoLogMessage
		e := echo.New()
		e.Use(Context())
		e.HTTPErrorHandler = Error(captureLogger(&messages))
		e.GET("/", func(c echo.Context) error {
			return assert.AnError
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Internal Server Error", body.Message)
	})
}
