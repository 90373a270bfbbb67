package config

import (
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Decimal reads a YAML scalar such as 0.03 without a round trip through float64.
type Decimal struct {
	decimal.Decimal
}

func (d *Decimal) UnmarshalYAML(value *yaml.Node) error {
	v, err := decimal.NewFromString(value.Value)
	if err != nil {
		return err
	}
	d.Decimal = v
	return nil
}

func (d Decimal) MarshalYAML() (interface{}, error) {
	return d.Decimal.String(), nil
}
