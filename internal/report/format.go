package report

import "strconv"

// fixed renders a numeric cell with a fixed number of decimal places, or an
// empty cell when the value is absent. Absent never becomes "0.00".
func fixed(v *float64, places int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', places, 64)
}

// number renders a numeric cell with the minimal digits needed, or an empty
// cell when absent. Integral values print without a decimal point.
func number(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// resolution renders "WxH" when both dimensions are present and non-zero,
// otherwise an empty cell.
func resolution(w, h *float64) string {
	if w == nil || h == nil || *w == 0 || *h == 0 {
		return ""
	}
	return number(w) + "x" + number(h)
}
