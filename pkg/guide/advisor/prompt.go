package advisor

import (
	"fmt"
	"strings"
)

const tabSystemPrompt = `Identify the navigation target based on the user's CLUE or request.
Clues mapping:
- "how much money", "dues", "bills", "payment", "fees" -> Finance
- "where is my home", "personal info", "change email", "my phone number", "address" -> Profile
- "latest news", "notices", "what happened", "circulars" -> Announcements
- "grades", "my performance", "how many credits", "attendance status" -> Academics
- "when is my next test", "timetable", "where is hall", "exam dates" -> Exam Schedule
- "general", "overview", "status" -> Dashboard

Return ONLY the tab name from: 'Dashboard', 'Academics', 'Finance', 'Exam Schedule', 'Announcements', 'Profile'. If unsure, return 'None'.
Respond with ONLY this JSON format: {"targetTab": "<tab name>"}. No other text.`

const adviceSystemPrompt = "You are a professional academic advisor at Amrita University. You know all campus regulations including the 75% attendance requirement and grading policies."

func advicePrompt(p Profile, hasProfile bool, query string) string {
	var sb strings.Builder
	sb.WriteString("You are the Amrita Academic Advisor AI. You help students with academic rules, schedules, and general campus information.\n")
	if hasProfile {
		s := p.Student
		fmt.Fprintf(&sb, "Context: The student is %s, Roll: %s, semester %d, %s.\n", s.Name, s.RollNumber, s.Semester, s.Department)
		if len(p.Dues) > 0 {
			items := make([]string, 0, len(p.Dues))
			for _, f := range p.Dues {
				items = append(items, fmt.Sprintf("%s (%d)", f.Title, f.Amount))
			}
			fmt.Fprintf(&sb, "Outstanding dues: %s.\n", strings.Join(items, ", "))
		}
	}
	sb.WriteString("Keep your tone formal, helpful, and supportive.\n")
	fmt.Fprintf(&sb, "Current Query: %s", query)
	return sb.String()
}
