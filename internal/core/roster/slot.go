package roster

// Slot is one required position on one machine in one shift and week.
// WorkerID is empty while the slot is vacant.
type Slot struct {
	Week        int
	Shift       Shift
	MachineID   string
	MachineType string
	Position    string
	MinRank     int
	WorkerID    string
}

// Vacant reports whether no worker is bound to the slot.
func (s Slot) Vacant() bool {
	return s.WorkerID == ""
}

// Profession is the profession the slot requires.
func (s Slot) Profession() Profession {
	return Profession(s.MachineType)
}

// ShiftSlots holds the slot set of each shift. Slots are owned records
// mutated in place by index.
type ShiftSlots map[Shift][]Slot

// NewShiftSlots returns an empty set for every shift.
func NewShiftSlots() ShiftSlots {
	ss := make(ShiftSlots, len(Shifts))
	for _, s := range Shifts {
		ss[s] = []Slot{}
	}
	return ss
}

// reportOrder is the concatenation order used when shifts are flattened.
var reportOrder = []Shift{ShiftNight, ShiftDay, ShiftEvening}

// All concatenates the shift sets (night, day, evening) into a new slice.
func (ss ShiftSlots) All() []Slot {
	n := 0
	for _, s := range reportOrder {
		n += len(ss[s])
	}
	out := make([]Slot, 0, n)
	for _, s := range reportOrder {
		out = append(out, ss[s]...)
	}
	return out
}

// Clone deep-copies the slot sets.
func (ss ShiftSlots) Clone() ShiftSlots {
	out := make(ShiftSlots, len(ss))
	for s, slots := range ss {
		out[s] = append([]Slot(nil), slots...)
	}
	return out
}

// Candidate is a worker eligible for a week on the shift derived from the
// previous week's history. Worker is nil when the history references a
// worker missing from the catalog.
type Candidate struct {
	WorkerID  string
	Week      int
	PrevShift Shift
	Shift     Shift
	Worker    *Worker
}

// Rank returns the candidate's rank in p, 0 without worker data.
func (c Candidate) Rank(p Profession) int {
	if c.Worker == nil {
		return 0
	}
	return c.Worker.Rank(p)
}

// Primary returns the candidate's primary profession, empty without worker data.
func (c Candidate) Primary() Profession {
	if c.Worker == nil {
		return ""
	}
	return c.Worker.Primary
}
