// Package export renders a finished day plan in machine-readable formats
// for downstream tooling.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/hems/core/model"
)

// WriteJSON writes the schedule's actions to w in JSON format.
func WriteJSON(w io.Writer, s *model.Schedule) error {
	enc := json.NewEncoder(w)
	return enc.Encode(s)
}

// WriteCSV writes one row per slot: the action taken, its parameters, the
// slot price and the slot's total energy draw.
func WriteCSV(w io.Writer, s *model.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"slot", "action", "appliance_id", "setpoint", "rate_kw", "price", "energy_kwh"}); err != nil {
		return err
	}
	energy := s.EnergyBySlot()
	for i, a := range s.Actions {
		rec := []string{
			strconv.Itoa(i),
			a.Type.String(),
			a.ApplianceID,
			fmtFloat(a.Setpoint),
			fmtFloat(a.RateKW),
			fmtFloat(s.Input.Prices.At(model.TimeSlot(i))),
			fmtFloat(energy[i]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
