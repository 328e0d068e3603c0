package currency

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseRatesYAML reads a `CODE: rate` mapping and validates it.
func ParseRatesYAML(data []byte) (Rates, error) {
	raw := map[string]float64{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse rates file: %w", err)
	}

	rates, err := RatesFromFloats(raw)
	if err != nil {
		return nil, err
	}
	if err := ValidateRates(rates); err != nil {
		return nil, err
	}
	return rates, nil
}
