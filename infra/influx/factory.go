package influx

import (
	"github.com/solbatt/solbatt/core/factory"
	"github.com/solbatt/solbatt/core/forecast"
)

// init registers the historical forecast provider.
func init() {
	_ = forecast.RegisterProvider("influx", func(conf map[string]any) (forecast.Provider, error) {
		var c ForecastConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewForecastProvider(c), nil
	})
}
