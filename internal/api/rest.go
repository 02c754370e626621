package api

import (
	"net/http"

	"github.com/cfan/cfan/internal/controller"
	"github.com/cfan/cfan/internal/fans"
	"github.com/cfan/cfan/internal/sensors"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}

	// Backend is the read-only view of the running daemon served by the api
	Backend struct {
		Aggregator *sensors.Aggregator
		Fans       []fans.Fan
		Controller controller.FanController
	}
)

// CreateRestService creates the echo instance serving backend.
// If registerer is not nil, request metrics are registered with it.
func CreateRestService(backend *Backend, registerer prometheus.Registerer) (*echo.Echo, error) {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())

	if registerer != nil {
		metrics, err := echoprometheus.MiddlewareConfig{
			Subsystem:  "cfan_api",
			Registerer: registerer,
		}.ToMiddleware()
		if err != nil {
			return nil, err
		}
		echoRest.Use(metrics)
	}

	echoRest.GET("/alive/", isAlive)

	registerFanEndpoints(echoRest, backend)
	registerSensorEndpoints(echoRest, backend)
	registerControllerEndpoints(echoRest, backend)

	return echoRest, nil
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}
