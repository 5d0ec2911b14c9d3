package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kilianp07/hems/core/model"
)

func testSchedule(t *testing.T) *model.Schedule {
	t.Helper()
	washer, err := model.NewAppliance("washer", 1.5, 2, 0, 23)
	if err != nil {
		t.Fatal(err)
	}
	hvac, err := model.NewUniformHVACProfile(model.DefaultHorizon, model.ComfortBand{Min: 68, Max: 76}, 72, 85, 0.25, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	bs, err := model.NewBudgetState(600, 0, 30)
	if err != nil {
		t.Fatal(err)
	}
	in := &model.Input{
		Prices:     model.StandardTOU(),
		Appliances: []model.Appliance{washer},
		HVAC:       hvac,
		Budget:     bs,
	}
	s := model.NewSchedule("p1", in)
	s.Actions[1] = model.StartAppliance("washer")
	return s
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testSchedule(t)); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != model.DefaultHorizon+1 {
		t.Fatalf("got %d lines, want %d", len(lines), model.DefaultHorizon+1)
	}
	if lines[0] != "slot,action,appliance_id,setpoint,rate_kw,price,energy_kwh" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "1,start_appliance,washer,") {
		t.Fatalf("unexpected start row %q", lines[2])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testSchedule(t)); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var decoded struct {
		PlanID  string         `json:"plan_id"`
		Actions []model.Action `json:"actions"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.PlanID != "p1" || len(decoded.Actions) != model.DefaultHorizon {
		t.Fatalf("decoded = %+v", decoded)
	}
}
