package nav

// Tab names as shown in the portal sidebar.
const (
	TabDashboard     = "Dashboard"
	TabAcademics     = "Academics"
	TabFinance       = "Finance"
	TabExamSchedule  = "Exam Schedule"
	TabAnnouncements = "Announcements"
	TabProfile       = "Profile"

	// TabNone is what the advisor answers when it cannot place a query.
	TabNone = "None"
)

// Sub-views a destination can open inside its tab.
const (
	SubViewSummary        = "summary"
	SubViewModeSelection  = "mode_selection"
	SubViewPaymentDetails = "payment_details"
	SubViewList           = "list"
	SubViewInternals      = "internals"
	SubViewDetails        = "details"
	SubViewEdit           = "edit"
)

var tabs = []string{
	TabDashboard,
	TabAcademics,
	TabFinance,
	TabExamSchedule,
	TabAnnouncements,
	TabProfile,
}

// Tabs returns every navigable tab in sidebar order.
func Tabs() []string {
	out := make([]string, len(tabs))
	copy(out, tabs)
	return out
}

// IsTab reports whether name is a navigable tab. "None" is not.
func IsTab(name string) bool {
	for _, t := range tabs {
		if t == name {
			return true
		}
	}
	return false
}

// Destination is the view state a resolved request lands on.
type Destination struct {
	Tab          string `json:"tab"`
	SubView      string `json:"sub_view,omitempty"`
	SelectedItem string `json:"selected_item,omitempty"`
}

func (d Destination) IsZero() bool {
	return d.Tab == "" && d.SubView == "" && d.SelectedItem == ""
}
