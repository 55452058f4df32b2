package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ChargeList is the ordered snapshot of the source mapping. The wire shape
// is a JSON object keyed by merchant name; object key order is the
// canonical iteration order for every derivation, so decoding goes through
// the token stream instead of a map. Duplicate keys are kept as separate
// entries.
type ChargeList []RecurringCharge

type chargeWire struct {
	Tipo          string  `json:"tipo"`
	DiaPago       int     `json:"dia_pago"`
	PromedioMonto float64 `json:"promedio_monto"`
}

func (l *ChargeList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode charges: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode charges: expected object, got %v", tok)
	}

	out := ChargeList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode charges: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode charges: expected merchant name, got %v", keyTok)
		}

		var w chargeWire
		if err := dec.Decode(&w); err != nil {
			return fmt.Errorf("decode charge %q: %w", name, err)
		}

		out = append(out, RecurringCharge{
			MerchantName:  name,
			Kind:          ChargeKind(w.Tipo),
			DayOfMonth:    w.DiaPago,
			AverageAmount: w.PromedioMonto,
		})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode charges: %w", err)
	}

	*l = out
	return nil
}

func (l ChargeList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.MerchantName)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(chargeWire{
			Tipo:          string(c.Kind),
			DiaPago:       c.DayOfMonth,
			PromedioMonto: c.AverageAmount,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Validate checks every entry and reports the first malformed one.
// Callers reject bad snapshots at ingestion; the deriver itself never
// drops entries.
func (l ChargeList) Validate() error {
	for i, c := range l {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("charge %d (%q): %w", i, c.MerchantName, err)
		}
	}
	return nil
}
