package payrun

import "testing"

func TestGrossFormula(t *testing.T) {
	h := Hours{Wk1: 40, Wk2: 40, OT15: 5, OT20: 2}
	got := Gross(h, 100)
	// 80*100 + 5*100*1.5 + 2*100*2
	if got != 9150 {
		t.Fatalf("expected 9150, got %v", got)
	}
}

func TestComputeFiguresBreakdown(t *testing.T) {
	h := Hours{Wk1: 40, Wk2: 40, OT15: 5, OT20: 2}
	figures := ComputeFigures(h, 100, 0, 0, true)

	if figures.NormalPay != 8000 {
		t.Fatalf("expected normal pay 8000, got %v", figures.NormalPay)
	}
	if figures.OT15Pay != 750 {
		t.Fatalf("expected ot15 pay 750, got %v", figures.OT15Pay)
	}
	if figures.OT20Pay != 400 {
		t.Fatalf("expected ot20 pay 400, got %v", figures.OT20Pay)
	}
	if figures.Gross != 9150 {
		t.Fatalf("expected gross 9150, got %v", figures.Gross)
	}
	if figures.UIF != 91.5 {
		t.Fatalf("expected uif 91.5, got %v", figures.UIF)
	}
	if figures.Net != 9150-91.5 {
		t.Fatalf("expected net %v, got %v", 9150-91.5, figures.Net)
	}
}

func TestComputeFiguresZeroHours(t *testing.T) {
	figures := ComputeFigures(Hours{}, 250, 0, 0, true)
	if figures.Gross != 0 || figures.UIF != 0 || figures.Tax != 0 || figures.Net != 0 {
		t.Fatalf("expected all-zero figures, got %+v", figures)
	}
}

func TestClampNegativeHours(t *testing.T) {
	h := Hours{Wk1: -5, Wk2: 40, OT15: -1, OT20: -0.5}.Clamp()
	if h.Wk1 != 0 || h.OT15 != 0 || h.OT20 != 0 {
		t.Fatalf("expected negatives clamped, got %+v", h)
	}
	if h.Wk2 != 40 {
		t.Fatalf("expected wk2 untouched, got %v", h.Wk2)
	}
}

func TestManualDeductionScenario(t *testing.T) {
	// Gross R10000, uif R100, tax 0, one R250 "Uniform" deduction.
	h := Hours{Wk1: 50, Wk2: 50}
	figures := ComputeFigures(h, 100, 0, 250, true)

	if figures.Gross != 10000 {
		t.Fatalf("expected gross 10000, got %v", figures.Gross)
	}
	if figures.UIF != 100 {
		t.Fatalf("expected uif 100, got %v", figures.UIF)
	}
	if figures.TotalDeductions != 350 {
		t.Fatalf("expected total deductions 350, got %v", figures.TotalDeductions)
	}
	if figures.Net != 9650 {
		t.Fatalf("expected net 9650, got %v", figures.Net)
	}
}

func TestUIFGate(t *testing.T) {
	h := Hours{Wk1: 50, Wk2: 50}
	figures := ComputeFigures(h, 100, 0, 0, false)
	if figures.UIF != 0 {
		t.Fatalf("expected uif 0 when disabled, got %v", figures.UIF)
	}
	if figures.Net != 10000 {
		t.Fatalf("expected net 10000, got %v", figures.Net)
	}
}
