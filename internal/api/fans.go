package api

import (
	"net/http"

	"github.com/cfan/cfan/internal/configuration"
	"github.com/cfan/cfan/internal/fans"
	"github.com/labstack/echo/v4"
)

type FanView struct {
	Id     string                  `json:"id"`
	Config configuration.FanConfig `json:"configuration"`
	Pwm    *int                    `json:"pwm"`
	Mode   string                  `json:"mode,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

func registerFanEndpoints(rest *echo.Echo, backend *Backend) {
	group := rest.Group("/fan")

	group.GET("/", func(c echo.Context) error {
		return getFans(c, backend)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		return getFan(c, backend)
	})
}

func createFanView(fan fans.Fan) FanView {
	view := FanView{
		Id:     fan.GetId(),
		Config: fan.GetConfig(),
	}
	pwm, err := fan.GetPwm()
	if err != nil {
		view.Error = err.Error()
		return view
	}
	view.Pwm = &pwm

	mode, err := fan.GetPwmEnabled()
	if err != nil {
		view.Error = err.Error()
		return view
	}
	view.Mode = mode.String()
	return view
}

func getFans(c echo.Context, backend *Backend) error {
	result := make([]FanView, 0, len(backend.Fans))
	for _, fan := range backend.Fans {
		result = append(result, createFanView(fan))
	}
	return c.JSONPretty(http.StatusOK, result, indentationChar)
}

func getFan(c echo.Context, backend *Backend) error {
	id := c.Param(urlParamId)

	for _, fan := range backend.Fans {
		if fan.GetId() == id {
			return c.JSONPretty(http.StatusOK, createFanView(fan), indentationChar)
		}
	}
	return returnNotFound(c, id)
}
