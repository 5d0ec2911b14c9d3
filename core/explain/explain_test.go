package explain

import (
	"strings"
	"testing"

	"github.com/kilianp07/hems/core/model"
)

func TestExplainPriceRationaleNamesPeakWindow(t *testing.T) {
	trace := model.DecisionTrace{
		PlanID: "p1",
		Entries: []model.TraceEntry{{
			Slot:   1,
			Action: model.StartAppliance("washer"),
			Factors: []model.Factor{
				{Kind: model.FactorPrice, Contribution: 87.5},
				{Kind: model.FactorDeadline, Contribution: 0.2},
			},
			PeakWindow:    model.Window{From: 18, To: 21},
			HasPeakWindow: true,
		}},
	}

	out := Explain(trace)
	if len(out) != 1 {
		t.Fatalf("got %d rationales, want 1", len(out))
	}
	r := out[0]
	if r.Factor != model.FactorPrice {
		t.Fatalf("factor = %s, want price", r.Factor)
	}
	want := "starting washer at slot 1 avoids the peak price window (slots 18-21)"
	if r.Text != want {
		t.Fatalf("text = %q, want %q", r.Text, want)
	}
}

func TestExplainFlatPricesFallback(t *testing.T) {
	trace := model.DecisionTrace{
		Entries: []model.TraceEntry{{
			Slot:    3,
			Action:  model.ChargeEV(7.2),
			Factors: []model.Factor{{Kind: model.FactorPrice, Contribution: 10}},
		}},
	}
	out := Explain(trace)
	if len(out) != 1 {
		t.Fatalf("got %d rationales, want 1", len(out))
	}
	if !strings.Contains(out[0].Text, "cheapest available hours") {
		t.Fatalf("text = %q, want the flat-price fallback", out[0].Text)
	}
}

func TestExplainOtherFactors(t *testing.T) {
	trace := model.DecisionTrace{
		Entries: []model.TraceEntry{
			{
				Slot:          22,
				Action:        model.SetHVAC(72),
				Factors:       []model.Factor{{Kind: model.FactorComfort, Contribution: 90}},
				ComfortMargin: 4,
			},
			{
				Slot:       10,
				Action:     model.StartAppliance("oven"),
				Factors:    []model.Factor{{Kind: model.FactorDeadline, Contribution: 95}},
				SlackSlots: 1,
			},
			{
				Slot:           15,
				Action:         model.StopAppliance("pool-pump"),
				Factors:        []model.Factor{{Kind: model.FactorBudget, Contribution: 80}},
				BudgetHeadroom: 1.5,
			},
		},
	}

	out := Explain(trace)
	if len(out) != 3 {
		t.Fatalf("got %d rationales, want 3", len(out))
	}
	if want := "setting the HVAC to 72.0 at slot 22 keeps the temperature inside the comfort band (margin 4.0 degrees)"; out[0].Text != want {
		t.Errorf("comfort text = %q, want %q", out[0].Text, want)
	}
	if want := "starting oven at slot 10 runs under deadline pressure with 1 slots of slack"; out[1].Text != want {
		t.Errorf("deadline text = %q, want %q", out[1].Text, want)
	}
	if want := "stopping pool-pump at slot 15 conserves the daily energy allowance (1.5 kWh headroom)"; out[2].Text != want {
		t.Errorf("budget text = %q, want %q", out[2].Text, want)
	}
}

func TestExplainIsDeterministic(t *testing.T) {
	trace := model.DecisionTrace{
		Entries: []model.TraceEntry{{
			Slot:          1,
			Action:        model.StartAppliance("washer"),
			Factors:       []model.Factor{{Kind: model.FactorPrice, Contribution: 87.5}},
			PeakWindow:    model.Window{From: 18, To: 21},
			HasPeakWindow: true,
		}},
	}
	first := Explain(trace)
	second := Explain(trace)
	if len(first) != len(second) || first[0] != second[0] {
		t.Fatal("identical traces produced different rationales")
	}
}
