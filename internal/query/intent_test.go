package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRouting(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"show clients from last week", OpFindClients},
		{"get clients", OpFindClients},
		{"Recent Clients", OpFindClients},
		{"search for a client named smith", OpSearchClients},
		{"get orders", OpGetOrders},
		{"find orders", OpGetOrders},
		{"order search", OpGetOrders},
		{"list courses", OpGetCourses},
		{"upcoming classes", OpGetClasses},
		{"attendance for yoga", OpGetAttendance},
		{"revenue analytics", OpRevenueAnalytics},
		{"service analytics", OpServiceAnalytics},
		{"summary statistics", OpSummaryStatistics},
		{"statistics", OpSummaryStatistics},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalizePrecedence(t *testing.T) {
	// "client" plus an analytics keyword hits the client listing or search
	// rules before the analytics family.
	assert.Equal(t, OpSearchClients, Normalize("find client analytics"))

	// even the canonical listing code trips the search rule because it
	// contains both "find" and "client"; the keyword router makes no
	// exception for codes
	assert.Equal(t, OpSearchClients, Normalize("find_clients"))

	// "attendance analytics" resolves to the attendance listing because the
	// attendance rule precedes the analytics rule.
	assert.Equal(t, OpGetAttendance, Normalize("attendance analytics"))

	// classes win over courses when both keywords appear
	assert.Equal(t, OpGetClasses, Normalize("courses and classes this week"))

	// analytics with a client keyword but no listing verbs routes to client
	// analytics
	assert.Equal(t, OpClientAnalytics, Normalize("client analytics"))
}

func TestNormalizeUnknownPassthrough(t *testing.T) {
	assert.Equal(t, "make me a sandwich", Normalize("make me a sandwich"))
	assert.Equal(t, "", Normalize(""))
}
