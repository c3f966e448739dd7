package noise

// Parameters is the immutable per-simulation noise configuration.
// Coherence times are in nanoseconds, error rates are probabilities.
type Parameters struct {
	// Preset names the configuration source ("ibm", "ion_trap", "custom",
	// "perfect"). Informational only.
	Preset string

	// T1Ns is the energy-relaxation time constant.
	T1Ns float64
	// T2Ns is the dephasing time constant.
	T2Ns float64

	// OneQubitError and TwoQubitError are the depolarizing probabilities
	// applied per gate execution, selected by gate arity.
	OneQubitError float64
	TwoQubitError float64

	// ReadoutError01 is P(read 1 | actual 0); ReadoutError10 is
	// P(read 0 | actual 1). The two are independent.
	ReadoutError01 float64
	ReadoutError10 float64

	// TemperatureK is the effective device temperature in kelvin.
	TemperatureK float64

	// CrosstalkStrength is the ZZ coupling strength between qubits touched
	// together by two-qubit gates.
	CrosstalkStrength float64

	// Independent channel toggles.
	EnableT1T2       bool
	EnableGateErrors bool
	EnableReadout    bool
	EnableCrosstalk  bool
	EnableThermal    bool
}

// AnyEnabled reports whether at least one state-mutating channel is on.
// Readout error alone does not require density-matrix promotion because it
// never touches the state.
func (p Parameters) AnyEnabled() bool {
	return p.EnableT1T2 || p.EnableGateErrors || p.EnableCrosstalk || p.EnableThermal
}

// IBM returns parameters modeled after a contemporary superconducting
// transmon device.
func IBM() Parameters {
	return Parameters{
		Preset:            "ibm",
		T1Ns:              100_000, // 100 µs
		T2Ns:              80_000,  // 80 µs
		OneQubitError:     0.001,
		TwoQubitError:     0.01,
		ReadoutError01:    0.02,
		ReadoutError10:    0.03,
		TemperatureK:      0.015, // 15 mK
		CrosstalkStrength: 0.01,
		EnableT1T2:        true,
		EnableGateErrors:  true,
		EnableReadout:     true,
		EnableCrosstalk:   true,
		EnableThermal:     true,
	}
}

// IonTrap returns parameters modeled after a trapped-ion device: much
// longer coherence, slower gates, negligible crosstalk.
func IonTrap() Parameters {
	return Parameters{
		Preset:            "ion_trap",
		T1Ns:              10_000_000_000, // 10 s
		T2Ns:              1_000_000_000,  // 1 s
		OneQubitError:     0.0001,
		TwoQubitError:     0.002,
		ReadoutError01:    0.005,
		ReadoutError10:    0.005,
		TemperatureK:      0.001,
		CrosstalkStrength: 0.001,
		EnableT1T2:        true,
		EnableGateErrors:  true,
		EnableReadout:     true,
		EnableCrosstalk:   false,
		EnableThermal:     false,
	}
}

// Perfect returns parameters with every channel disabled.
func Perfect() Parameters {
	return Parameters{Preset: "perfect"}
}

// Summary reports which channels actually fired during a simulation.
type Summary struct {
	Preset                string  `json:"preset,omitempty"`
	DampingApplications   int     `json:"dampingApplications"`
	GateErrorApplications int     `json:"gateErrorApplications"`
	CrosstalkApplications int     `json:"crosstalkApplications"`
	ThermalApplied        bool    `json:"thermalApplied"`
	ReadoutEnabled        bool    `json:"readoutEnabled"`
	AccumulatedTimeNs     float64 `json:"accumulatedTimeNs"`
}

// Fired reports whether any state-mutating channel ran.
func (s Summary) Fired() bool {
	return s.DampingApplications > 0 || s.GateErrorApplications > 0 ||
		s.CrosstalkApplications > 0 || s.ThermalApplied
}
