package api

import (
	"net/http"

	"github.com/cfan/cfan/internal/controller"
	"github.com/labstack/echo/v4"
)

type ControllerView struct {
	controller.Statistics
	RecentMaxTemperature float64 `json:"recentMaxTemperature"`
	RecentAvgTemperature float64 `json:"recentAvgTemperature"`
}

func registerControllerEndpoints(rest *echo.Echo, backend *Backend) {
	rest.GET("/controller/", func(c echo.Context) error {
		return getController(c, backend)
	})
}

func getController(c echo.Context, backend *Backend) error {
	history := backend.Aggregator.History
	view := ControllerView{
		Statistics:           backend.Controller.GetStatistics(),
		RecentMaxTemperature: history.Max(),
		RecentAvgTemperature: history.Avg(),
	}
	return c.JSONPretty(http.StatusOK, view, indentationChar)
}
