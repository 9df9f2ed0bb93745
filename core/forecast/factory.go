package forecast

import "github.com/solbatt/solbatt/core/factory"

var providerRegistry = factory.NewRegistry[Provider]()

// RegisterProvider adds a forecast provider factory identified by name.
func RegisterProvider(name string, f factory.Factory[Provider]) error {
	return providerRegistry.Register(name, f)
}

// NewProvider creates a Provider from the configuration. An empty type
// defaults to the mock provider.
func NewProvider(cfg factory.ModuleConfig) (Provider, error) {
	if cfg.Type == "" {
		return NewMockProvider(), nil
	}
	return providerRegistry.Create(cfg)
}

func init() {
	_ = RegisterProvider("mock", func(conf map[string]any) (Provider, error) {
		p := NewMockProvider()
		var c struct {
			PeakProductionW  float64 `json:"peak_production_w"`
			BaseConsumptionW float64 `json:"base_consumption_w"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.PeakProductionW > 0 {
			p.PeakProductionW = c.PeakProductionW
		}
		if c.BaseConsumptionW > 0 {
			p.BaseConsumptionW = c.BaseConsumptionW
		}
		return p, nil
	})
}
