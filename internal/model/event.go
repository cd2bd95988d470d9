package model

type Category string

const (
	CategoryTechnical    Category = "Technical"
	CategoryNonTechnical Category = "Non-Technical"
	CategoryBreakout     Category = "Breakout"
)

// TimeSlot is a coarse scheduling tag used only for conflict detection.
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotFullDay   TimeSlot = "fullday"
	TimeSlotFlexible  TimeSlot = "flexible"
)

// exemptSlots lists the slots whose events can be attended alongside anything else.
var exemptSlots = map[TimeSlot]bool{
	TimeSlotFlexible: true,
}

// Exempt reports whether events in this slot are skipped by conflict detection.
func (s TimeSlot) Exempt() bool {
	return exemptSlots[s]
}

type Event struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	TeamSizeMin int      `json:"team_size_min"`
	TeamSizeMax int      `json:"team_size_max"`
	Timing      string   `json:"timing"`
	TimeSlot    TimeSlot `json:"time_slot"`
	Rules       []string `json:"rules"`
}
