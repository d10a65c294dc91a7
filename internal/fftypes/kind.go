package fftypes

// Kind selects the real-data transform computed along one dimension.
type Kind uint8

const (
	// R2HC is the forward real-to-halfcomplex DFT. Output holds
	// r0, r1, ..., r(n/2), i((n+1)/2-1), ..., i1.
	R2HC Kind = iota
	// HC2R is the unnormalized inverse of R2HC.
	HC2R
	// DHT is the discrete Hartley transform.
	DHT
	// REDFT00 is the DCT-I (n >= 2).
	REDFT00
	// RODFT00 is the DST-I.
	RODFT00
)

var kindNames = [...]string{
	R2HC:    "r2hc",
	HC2R:    "hc2r",
	DHT:     "dht",
	REDFT00: "redft00",
	RODFT00: "rodft00",
}

// String returns the short lower-case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// ParseKind maps a name produced by String back to a kind.
func ParseKind(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name {
			return Kind(k), true
		}
	}

	return 0, false
}
