package query

// Canned demo payloads served when a listing comes back empty and the
// sample-data policy is enabled. The records are intentionally shaped like
// legacy exports, string ids and all, so downstream consumers treat them
// exactly like real rows.

// sampleFallbackNote flags a canned payload so callers can tell demo data
// apart from an actually empty collection.
const sampleFallbackNote = "Sample data - database appears to be empty"

type sampleClient struct {
	ID               string `json:"_id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Status           string `json:"status"`
	RegistrationDate string `json:"registration_date"`
	MembershipType   string `json:"membership_type"`
	LastActivity     string `json:"last_activity"`
}

var sampleClients = []sampleClient{
	{
		ID:               "sample001",
		Name:             "John Smith",
		Email:            "john.smith@email.com",
		Phone:            "+1-555-0101",
		Status:           "active",
		RegistrationDate: "2024-01-15T09:00:00Z",
		MembershipType:   "Premium",
		LastActivity:     "2024-07-01T08:30:00Z",
	},
	{
		ID:               "sample002",
		Name:             "Sarah Johnson",
		Email:            "sarah.johnson@email.com",
		Phone:            "+1-555-0102",
		Status:           "active",
		RegistrationDate: "2024-02-20T10:00:00Z",
		MembershipType:   "Basic",
		LastActivity:     "2024-06-30T18:00:00Z",
	},
	{
		ID:               "sample003",
		Name:             "Mike Davis",
		Email:            "mike.davis@email.com",
		Phone:            "+1-555-0103",
		Status:           "active",
		RegistrationDate: "2024-06-25T14:00:00Z",
		MembershipType:   "Personal Training",
		LastActivity:     "2024-06-29T16:30:00Z",
	},
	{
		ID:               "sample004",
		Name:             "Emily Wilson",
		Email:            "emily.wilson@email.com",
		Phone:            "+1-555-0104",
		Status:           "active",
		RegistrationDate: "2024-03-10T11:00:00Z",
		MembershipType:   "Premium",
		LastActivity:     "2024-06-28T07:45:00Z",
	},
	{
		ID:               "sample005",
		Name:             "David Brown",
		Email:            "david.brown@email.com",
		Phone:            "+1-555-0105",
		Status:           "active",
		RegistrationDate: "2024-05-05T13:00:00Z",
		MembershipType:   "Basic",
		LastActivity:     "2024-06-27T19:15:00Z",
	},
}

type sampleOrder struct {
	ID            string  `json:"_id"`
	ClientID      string  `json:"client_id"`
	ClientName    string  `json:"client_name"`
	ServiceName   string  `json:"service_name"`
	TotalAmount   float64 `json:"total_amount"`
	Status        string  `json:"status"`
	CreatedDate   string  `json:"created_date"`
	ScheduledDate string  `json:"scheduled_date"`
	CompletedDate string  `json:"completed_date,omitempty"`
}

var sampleOrders = []sampleOrder{
	{
		ID:            "order001",
		ClientID:      "sample001",
		ClientName:    "John Smith",
		ServiceName:   "Personal Training Session",
		TotalAmount:   75.00,
		Status:        "confirmed",
		CreatedDate:   "2024-06-30T14:30:00Z",
		ScheduledDate: "2024-07-02T09:00:00Z",
	},
	{
		ID:            "order002",
		ClientID:      "sample002",
		ClientName:    "Sarah Johnson",
		ServiceName:   "Yoga Class Package (5 sessions)",
		TotalAmount:   125.00,
		Status:        "confirmed",
		CreatedDate:   "2024-06-29T16:45:00Z",
		ScheduledDate: "2024-07-01T18:00:00Z",
	},
	{
		ID:            "order003",
		ClientID:      "sample003",
		ClientName:    "Mike Davis",
		ServiceName:   "HIIT Training Session",
		TotalAmount:   65.00,
		Status:        "pending",
		CreatedDate:   "2024-06-29T11:20:00Z",
		ScheduledDate: "2024-07-03T07:00:00Z",
	},
	{
		ID:            "order004",
		ClientID:      "sample004",
		ClientName:    "Emily Wilson",
		ServiceName:   "Pilates Session",
		TotalAmount:   80.00,
		Status:        "completed",
		CreatedDate:   "2024-06-28T13:15:00Z",
		ScheduledDate: "2024-06-30T10:00:00Z",
		CompletedDate: "2024-06-30T11:00:00Z",
	},
	{
		ID:            "order005",
		ClientID:      "sample005",
		ClientName:    "David Brown",
		ServiceName:   "Strength Training Session",
		TotalAmount:   70.00,
		Status:        "confirmed",
		CreatedDate:   "2024-06-27T09:30:00Z",
		ScheduledDate: "2024-07-01T17:30:00Z",
	},
}
