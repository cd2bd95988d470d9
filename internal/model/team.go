package model

type TeamMember struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	College string `json:"college"`
}

type CartItem struct {
	Event       *Event       `json:"event"`
	TeamMembers []TeamMember `json:"team_members"`
}

// TeamMemberRecord is the flattened roster row kept for the team member export.
type TeamMemberRecord struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	ScreenshotURL string `json:"screenshot_url"`
}
