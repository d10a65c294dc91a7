package problem

// Tail returns data advanced by off elements. An offset at or past the end
// yields an empty slice; this happens only when the caller advances past
// the last instance and touches nothing afterwards.
func Tail(data []float64, off int) []float64 {
	if off >= len(data) {
		return data[len(data):]
	}

	return data[off:]
}

// Taint marks the selected regions of p as externally owned. Taint is
// never cleared.
func (p *RDFT) Taint(in, out bool) *RDFT {
	p.InTainted = p.InTainted || in
	p.OutTainted = p.OutTainted || out

	return p
}
