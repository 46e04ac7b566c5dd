package seed

import "taskmanager/internal/domain"

type SampleUser struct {
	Username string
	Email    string
	Password string
}

// SampleTask refers to its owner by username.
type SampleTask struct {
	UserRef     string
	Title       string
	Description string
	Completed   bool
	Priority    domain.Priority
	DueDate     string
}

var SampleUsers = []SampleUser{
	{Username: "john_doe", Email: "john@example.com", Password: "password123"},
	{Username: "jane_smith", Email: "jane@example.com", Password: "password123"},
	{Username: "admin_user", Email: "admin@example.com", Password: "adminpassword"},
}

var SampleTasks = []SampleTask{
	{
		UserRef:     "john_doe",
		Title:       "Complete project proposal",
		Description: "Draft the initial proposal for the Q3 project.",
		Priority:    domain.PriorityHigh,
		DueDate:     "2025-06-20",
	},
	{
		UserRef:     "john_doe",
		Title:       "Review team code",
		Description: "Go through pull requests from the last sprint.",
		Completed:   true,
		Priority:    domain.PriorityMedium,
		DueDate:     "2025-06-03",
	},
	{
		UserRef:     "jane_smith",
		Title:       "Prepare presentation slides",
		Description: "Create slides for the Monday meeting.",
		Priority:    domain.PriorityHigh,
		DueDate:     "2025-06-10",
	},
	{
		UserRef:     "jane_smith",
		Title:       "Research new technologies",
		Description: "Explore options for microservices framework.",
		Priority:    domain.PriorityLow,
		DueDate:     "2025-06-30",
	},
	{
		UserRef:     "admin_user",
		Title:       "Setup production server",
		Description: "Configure EC2 instance and deploy backend.",
		Priority:    domain.PriorityHigh,
		DueDate:     "2025-06-25",
	},
}
