// market/instruments.go
package market

import "fmt"

type InstrumentMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string

	// PipSize is the smallest quoted increment used for stop and target
	// distances.
	PipSize float64

	// ContractSize maps one lot to quote currency per unit of price move.
	ContractSize int

	MinimumLotSize float64
	LotStep        float64
}

const DefaultInstrument = "XAUUSD"

var Instruments = map[string]InstrumentMeta{
	"XAUUSD": {
		Name:           "XAUUSD",
		BaseCurrency:   "XAU",
		QuoteCurrency:  "USD",
		PipSize:        0.01,
		ContractSize:   100,
		MinimumLotSize: 0.01,
		LotStep:        0.01,
	},
}

// Instrument looks up instrument metadata by name.
func Instrument(name string) (InstrumentMeta, error) {
	meta, ok := Instruments[name]
	if !ok {
		return InstrumentMeta{}, fmt.Errorf("unknown instrument %s", name)
	}
	return meta, nil
}
