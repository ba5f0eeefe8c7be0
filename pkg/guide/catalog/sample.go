package catalog

import "time"

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func splits(ca, assignments, projects, attendance int) []InternalSplit {
	return []InternalSplit{
		{Name: "Continuous Assessments", Value: ca},
		{Name: "Assignments", Value: assignments},
		{Name: "Projects", Value: projects},
		{Name: "Attendance", Value: attendance},
	}
}

// Sample returns the demo catalog the portal ships with. It seeds the
// database and backs the in-memory provider when no database is set.
func Sample() *Catalog {
	return &Catalog{
		Student: Student{
			Name:       "Arjun K.",
			RollNumber: "CB.EN.U4CSE21001",
			Department: "Computer Science and Engineering",
			Semester:   6,
			CGPA:       8.92,
			Attendance: 92,
		},
		Announcements: []Announcement{
			{
				ID:       "1",
				Title:    "End Semester Examination Schedule - May 2024",
				Content:  "The finalized schedule for the End Semester Examinations for all UG and PG programs has been released. Students are advised to check their respective hall locations.",
				Date:     day("2024-04-15"),
				Category: "Academic",
				Priority: "High",
			},
			{
				ID:       "2",
				Title:    "Guest Lecture on Generative AI",
				Content:  "A specialized guest lecture on the impact of LLMs in software engineering is scheduled at Amriteswari Hall this Friday.",
				Date:     day("2024-04-18"),
				Category: "Event",
				Priority: "Normal",
			},
			{
				ID:       "3",
				Title:    "Hostel Outing Permissions Update",
				Content:  "New guidelines for weekend outing permissions have been posted on the administrative notice board.",
				Date:     day("2024-04-20"),
				Category: "Administrative",
				Priority: "Normal",
			},
		},
		Courses: []Course{
			{Code: "19CSE301", Name: "Design and Analysis of Algorithms", Credits: 4, Grade: "A+", Attendance: 95, Internals: splits(40, 20, 30, 10)},
			{Code: "19CSE302", Name: "Computer Networks", Credits: 4, Grade: "A", Attendance: 88, Internals: splits(50, 10, 30, 10)},
			{Code: "19CSE303", Name: "Software Engineering", Credits: 3, Grade: "B+", Attendance: 90, Internals: splits(30, 20, 40, 10)},
			{Code: "19CSE304", Name: "Compiler Design", Credits: 4, Grade: "A", Attendance: 94, Internals: splits(45, 15, 30, 10)},
			{Code: "19HUM101", Name: "Professional Ethics", Credits: 2, Grade: "O", Attendance: 100, Internals: splits(60, 20, 10, 10)},
			{Code: "19MAT205", Name: "Probability and Statistics", Credits: 4, Grade: "B", Attendance: 72, Internals: splits(50, 25, 20, 5)},
			{Code: "19CSE311", Name: "Artificial Intelligence", Credits: 3, Grade: "A", Attendance: 91, Internals: splits(35, 15, 40, 10)},
			{Code: "19CSE331", Name: "Cryptography", Credits: 3, Grade: "A-", Attendance: 85, Internals: splits(40, 20, 30, 10)},
			{Code: "19CSE305", Name: "Machine Learning", Credits: 4, Grade: "A+", Attendance: 98, Internals: splits(30, 10, 50, 10)},
			{Code: "19LAW101", Name: "Cyber Laws", Credits: 2, Grade: "B+", Attendance: 78, Internals: splits(70, 20, 5, 5)},
		},
		Fees: []FeeItem{
			{ID: "1", Title: "Tuition Fee - Sem 6", Amount: 125000, Status: "Paid", Date: "2024-01-10"},
			{ID: "2", Title: "Hostel & Mess Fee", Amount: 45000, Status: "Paid", Date: "2024-01-12"},
			{ID: "3", Title: "Bus Fee", Amount: 15000, Status: "Due", Date: "-"},
		},
		Exams: []Exam{
			{
				Date:        day("2024-05-15"),
				Time:        "09:30 AM",
				Code:        "19CSE301",
				Subject:     "Design and Analysis of Algorithms",
				Location:    "Main Block - Hall 204",
				Portions:    []string{"Dynamic Programming", "Greedy Algorithms", "Complexity Theory", "Graph Traversal", "NP-Completeness"},
				Invigilator: "Dr. Ramesh Kumar",
			},
			{
				Date:        day("2024-05-17"),
				Time:        "09:30 AM",
				Code:        "19CSE302",
				Subject:     "Computer Networks",
				Location:    "IT Block - Lab 3",
				Portions:    []string{"OSI Model", "TCP/IP Protocol Suite", "Congestion Control", "Routing Algorithms", "Network Security"},
				Invigilator: "Prof. Lakshmi Devi",
			},
			{
				Date:        day("2024-05-20"),
				Time:        "02:00 PM",
				Code:        "19CSE303",
				Subject:     "Software Engineering",
				Location:    "Amriteswari Hall",
				Portions:    []string{"Agile Methodologies", "UML Diagrams", "Software Testing", "CI/CD Pipelines", "Design Patterns"},
				Invigilator: "Dr. Suresh V.",
			},
			{
				Date:        day("2024-05-22"),
				Time:        "09:30 AM",
				Code:        "19CSE304",
				Subject:     "Compiler Design",
				Location:    "Main Block - Hall 101",
				Portions:    []string{"Lexical Analysis", "Parsing Techniques", "Code Generation", "Symbol Tables", "Optimization"},
				Invigilator: "Prof. Karthik S.",
			},
		},
	}
}
