// Package factory provides a small generic registry used to instantiate
// modules from configuration. Modules are defined by a type string and a map
// of raw settings. Factories decode the settings into typed structs and
// return the concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[forecast.Provider]()
//	reg.Register("influx", func(conf map[string]any) (forecast.Provider, error) {
//	    var c struct{ URL string `json:"url"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return influx.NewForecastProvider(c.URL), nil
//	})
//	p, err := reg.Create(factory.ModuleConfig{Type: "influx", Conf: map[string]any{"url": "http://localhost:8086"}})
package factory
