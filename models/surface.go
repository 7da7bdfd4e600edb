package models

// Print surface rows
const (
	RowFront = 0
	RowBack  = 1
)

// Placement is where a slot lands on the physical sheet
type Placement struct {
	Row     int  `json:"row"`
	Column  int  `json:"column"`  // 0-based, left to right on the sheet
	Flipped bool `json:"flipped"` // card content is horizontally mirrored
}

// PrintSlot is one fixed position on the print surface.
// An empty slot keeps the layout geometry but renders nothing.
type PrintSlot struct {
	Position  int        `json:"position"`
	Occupied  bool       `json:"occupied"`
	Front     *FrontCard `json:"front,omitempty"`
	Back      *BackCard  `json:"back,omitempty"`
	Placement Placement  `json:"placement"`
}

// PrintSurface is the two-row print composition: fronts, then backs.
// Front position i and back position i are the same physical card.
type PrintSurface struct {
	Fronts   [SheetCapacity]PrintSlot `json:"fronts"`
	Backs    [SheetCapacity]PrintSlot `json:"backs"`
	Mirrored bool                     `json:"mirrored"`
}

// Slots returns fronts followed by backs
func (p PrintSurface) Slots() []PrintSlot {
	slots := make([]PrintSlot, 0, 2*SheetCapacity)
	slots = append(slots, p.Fronts[:]...)
	slots = append(slots, p.Backs[:]...)
	return slots
}

// PreviewCard is one front/back pair in the on-screen preview
type PreviewCard struct {
	Position int
	Front    FrontCard
	Back     BackCard
}

// PreviewSurface is the on-screen preview in direct list order.
// Cosmetic only: the flip is a visual rehearsal of mirror mode.
type PreviewSurface struct {
	Cards    []PreviewCard
	Cosmetic bool
}
