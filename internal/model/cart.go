package model

type CartEntry struct {
	Event       *Event       `json:"event"`
	TeamMembers []TeamMember `json:"team_members"`
	// Conflicts lists the ids of other cart events sharing this event's time slot.
	Conflicts []string `json:"conflicts"`
}

type CartView struct {
	Step         string      `json:"step"`
	Items        []CartEntry `json:"items"`
	Total        int         `json:"total"`
	PaymentProof string      `json:"payment_proof,omitempty"`
}
