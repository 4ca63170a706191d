package payrun

const (
	UIFRate        = 0.01
	OT15Multiplier = 1.5
	OT20Multiplier = 2.0
)

// Clamp replaces negative hour entries with zero. Bad input is corrected, not
// rejected, matching the hours-entry screen's behaviour.
func (h Hours) Clamp() Hours {
	if h.Wk1 < 0 {
		h.Wk1 = 0
	}
	if h.Wk2 < 0 {
		h.Wk2 = 0
	}
	if h.OT15 < 0 {
		h.OT15 = 0
	}
	if h.OT20 < 0 {
		h.OT20 = 0
	}
	return h
}

// Gross converts hours at a rate into periodic gross pay: two normal weeks
// plus time-and-a-half and double-time overtime.
func Gross(h Hours, rate float64) float64 {
	return (h.Wk1+h.Wk2)*rate + h.OT15*rate*OT15Multiplier + h.OT20*rate*OT20Multiplier
}

// ComputeFigures derives a line's full breakdown. The tax amount is an input
// because it depends on the run's tax year table; manualDeductions is the
// summed deduction ledger.
func ComputeFigures(h Hours, rate, tax, manualDeductions float64, uifEnabled bool) Figures {
	h = h.Clamp()

	normalPay := (h.Wk1 + h.Wk2) * rate
	ot15Pay := h.OT15 * rate * OT15Multiplier
	ot20Pay := h.OT20 * rate * OT20Multiplier
	gross := normalPay + ot15Pay + ot20Pay

	uif := 0.0
	if uifEnabled {
		uif = gross * UIFRate
	}

	total := uif + manualDeductions + tax

	return Figures{
		NormalPay:       normalPay,
		OT15Pay:         ot15Pay,
		OT20Pay:         ot20Pay,
		Gross:           gross,
		UIF:             uif,
		Tax:             tax,
		TotalDeductions: total,
		Net:             gross - total,
	}
}
