package api

import (
	"net/http"

	"github.com/cfan/cfan/internal/configuration"
	"github.com/cfan/cfan/internal/sensors"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

type SensorView struct {
	Id     string                     `json:"id"`
	Config configuration.SensorConfig `json:"configuration"`
	// Value is the last reading of the control loop, nil before the first sample
	Value *int `json:"value"`
}

func registerSensorEndpoints(rest *echo.Echo, backend *Backend) {
	group := rest.Group("/sensor")

	group.GET("/", func(c echo.Context) error {
		return getSensors(c, backend)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		return getSensor(c, backend)
	})
}

func createSensorView(aggregator *sensors.Aggregator, sensor sensors.Sensor) SensorView {
	view := SensorView{
		Id:     sensor.GetId(),
		Config: reprint.This(sensor.GetConfig()).(configuration.SensorConfig),
	}
	if reading, ok := aggregator.Readings.Get(sensor.GetId()); ok {
		value := reading.Value
		view.Value = &value
	}
	return view
}

func getSensors(c echo.Context, backend *Backend) error {
	result := make([]SensorView, 0, len(backend.Aggregator.Sensors()))
	for _, sensor := range backend.Aggregator.Sensors() {
		result = append(result, createSensorView(backend.Aggregator, sensor))
	}
	return c.JSONPretty(http.StatusOK, result, indentationChar)
}

func getSensor(c echo.Context, backend *Backend) error {
	id := c.Param(urlParamId)

	for _, sensor := range backend.Aggregator.Sensors() {
		if sensor.GetId() == id {
			return c.JSONPretty(http.StatusOK, createSensorView(backend.Aggregator, sensor), indentationChar)
		}
	}
	return returnNotFound(c, id)
}
