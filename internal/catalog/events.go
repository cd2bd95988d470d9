package catalog

import "github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"

var defaultEvents = []*model.Event{
	{
		ID: "mindsparkx", Name: "MindSparkX", Category: model.CategoryTechnical,
		Description: "Quiz & Problem Solving Challenge", TeamSizeMin: 1, TeamSizeMax: 3,
		Timing: "10:00 AM - 12:00 PM", TimeSlot: model.TimeSlotMorning,
		Rules: []string{"Individual or team of 3", "MCQ and puzzle rounds", "Top 3 teams advance to finals"},
	},
	{
		ID: "designomania", Name: "Design-O-Mania", Category: model.CategoryTechnical,
		Description: "Design Competition", TeamSizeMin: 1, TeamSizeMax: 2,
		Timing: "10:00 AM - 12:00 PM", TimeSlot: model.TimeSlotMorning,
		Rules: []string{"Bring your own laptop", "Design software of choice", "Theme will be given on spot"},
	},
	{
		ID: "businessbattle", Name: "Business Battle", Category: model.CategoryTechnical,
		Description: "Business Case Study", TeamSizeMin: 2, TeamSizeMax: 4,
		Timing: "2:00 PM - 4:00 PM", TimeSlot: model.TimeSlotAfternoon,
		Rules: []string{"Team presentation", "Case study provided", "15 min presentation per team"},
	},
	{
		ID: "fixtheglitch", Name: "Fix The Glitch", Category: model.CategoryTechnical,
		Description: "Debugging Challenge", TeamSizeMin: 1, TeamSizeMax: 2,
		Timing: "2:00 PM - 4:00 PM", TimeSlot: model.TimeSlotAfternoon,
		Rules: []string{"Find and fix bugs", "Multiple programming languages", "Time-based scoring"},
	},
	{
		ID: "paperpresentation", Name: "Paper Presentation", Category: model.CategoryTechnical,
		Description: "Research Presentation", TeamSizeMin: 1, TeamSizeMax: 2,
		Timing: "10:00 AM - 12:00 PM", TimeSlot: model.TimeSlotMorning,
		Rules: []string{"IEEE format", "8-10 pages", "Any technical topic"},
	},
	{
		ID: "startmusic", Name: "Start Music", Category: model.CategoryNonTechnical,
		Description: "Music Competition", TeamSizeMin: 1, TeamSizeMax: 3,
		Timing: "2:00 PM - 4:00 PM", TimeSlot: model.TimeSlotAfternoon,
		Rules: []string{"Solo or group", "Any genre", "5-7 minutes per performance"},
	},
	{
		ID: "boxcricket", Name: "Box Cricket", Category: model.CategoryNonTechnical,
		Description: "Indoor Cricket Tournament", TeamSizeMin: 4, TeamSizeMax: 5,
		Timing: "10:00 AM - 4:00 PM", TimeSlot: model.TimeSlotFullDay,
		Rules: []string{"5 players per team", "6 overs per innings", "Standard rules apply"},
	},
	{
		ID: "esports", Name: "E-Sports", Category: model.CategoryNonTechnical,
		Description: "Gaming Tournament", TeamSizeMin: 1, TeamSizeMax: 4,
		Timing: "10:00 AM - 4:00 PM", TimeSlot: model.TimeSlotFullDay,
		Rules: []string{"BGMI/Valorant", "Own devices", "Tournament format"},
	},
	{
		ID: "clashoftalents", Name: "Clash of Talents", Category: model.CategoryNonTechnical,
		Description: "Talent Show", TeamSizeMin: 1, TeamSizeMax: 3,
		Timing: "2:00 PM - 4:00 PM", TimeSlot: model.TimeSlotAfternoon,
		Rules: []string{"Any talent", "5 min performance", "Props allowed"},
	},
	{
		ID: "iplauction", Name: "IPL Auction", Category: model.CategoryNonTechnical,
		Description: "Mock IPL Auction", TeamSizeMin: 3, TeamSizeMax: 5,
		Timing: "10:00 AM - 12:00 PM", TimeSlot: model.TimeSlotMorning,
		Rules: []string{"Virtual money", "Strategy-based", "Build your team"},
	},
	{
		ID: "carrom", Name: "Carrom 2.0", Category: model.CategoryBreakout,
		Description: "Carrom Tournament", TeamSizeMin: 2, TeamSizeMax: 2,
		Timing: "Flexible", TimeSlot: model.TimeSlotFlexible,
		Rules: []string{"Doubles only", "Standard rules", "Knockout format"},
	},
	{
		ID: "vaangapazhagalam", Name: "Vaanga Pazhagalam", Category: model.CategoryBreakout,
		Description: "Tamil Cultural Event", TeamSizeMin: 2, TeamSizeMax: 4,
		Timing: "Flexible", TimeSlot: model.TimeSlotFlexible,
		Rules: []string{"Tamil traditions", "Interactive games", "Cultural activities"},
	},
}
