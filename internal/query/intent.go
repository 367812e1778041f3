// Package query resolves loosely specified operation descriptors into
// canonical data operations and executes them against the record store.
// It is the layer the role runtimes call with whatever operation string
// they were handed, natural language included.
package query

import "strings"

// Canonical operation codes understood by the executor. Anything else
// reaching Run produces the capability listing.
const (
	OpFindClients         = "find_clients"
	OpGetClientByID       = "get_client_by_id"
	OpSearchClients       = "search_clients"
	OpGetOrders           = "get_orders"
	OpGetOrderByID        = "get_order_by_id"
	OpGetPayments         = "get_payments"
	OpGetCourses          = "get_courses"
	OpGetClasses          = "get_classes"
	OpGetAttendance       = "get_attendance"
	OpRevenueAnalytics    = "revenue_analytics"
	OpClientAnalytics     = "client_analytics"
	OpServiceAnalytics    = "service_analytics"
	OpAttendanceAnalytics = "attendance_analytics"
	OpSummaryStatistics   = "summary_statistics"
)

// intentRule pairs a predicate with a resolver. The routing table is an
// ordered list of these rules evaluated in a single pass, so precedence is
// declared data rather than implicit control flow. This is a best-effort
// keyword router, not a parser: an ambiguous descriptor resolves to the
// first rule whose keywords match even when a later rule would fit better.
type intentRule struct {
	matches func(q string) bool
	resolve func(q string) string
}

// routingTable holds the intent rules in precedence order. Matching is
// performed on the lower-cased descriptor.
var routingTable = []intentRule{
	{ // client listings
		matches: containsAny("client search and management", "recent clients", "show clients", "get clients", "find clients"),
		resolve: fixed(OpFindClients),
	},
	{ // client free-text search
		matches: func(q string) bool {
			return strings.Contains(q, "client") && (strings.Contains(q, "search") || strings.Contains(q, "find"))
		},
		resolve: fixed(OpSearchClients),
	},
	{ // order listings
		matches: containsAny("order and payment tracking", "recent orders", "show orders", "get orders", "find orders"),
		resolve: fixed(OpGetOrders),
	},
	{ // order search collapses onto the same listing operation
		matches: func(q string) bool {
			return strings.Contains(q, "order") && (strings.Contains(q, "search") || strings.Contains(q, "find"))
		},
		resolve: fixed(OpGetOrders),
	},
	{ // catalog: classes win over courses when both keywords appear
		matches: containsAny("course and class information", "courses", "classes"),
		resolve: func(q string) string {
			if strings.Contains(q, "class") {
				return OpGetClasses
			}
			return OpGetCourses
		},
	},
	{ // attendance, including "attendance analytics" by precedence
		matches: containsAny("attendance monitoring", "attendance"),
		resolve: fixed(OpGetAttendance),
	},
	{ // analytics family, sub-routed by keyword
		matches: containsAny("business analytics and reporting", "revenue", "analytics", "statistics", "summary"),
		resolve: func(q string) string {
			switch {
			case strings.Contains(q, "revenue"):
				return OpRevenueAnalytics
			case strings.Contains(q, "client"):
				return OpClientAnalytics
			case strings.Contains(q, "service"):
				return OpServiceAnalytics
			case strings.Contains(q, "attendance"):
				return OpAttendanceAnalytics
			default:
				return OpSummaryStatistics
			}
		},
	},
}

// Normalize maps an arbitrary operation descriptor onto a canonical code.
// Matching is case-insensitive and the first matching rule wins. When no
// rule matches the input is returned unchanged, which signals an unknown
// operation to the executor.
func Normalize(opType string) string {
	q := strings.ToLower(opType)
	for _, r := range routingTable {
		if r.matches(q) {
			return r.resolve(q)
		}
	}
	return opType
}

func containsAny(phrases ...string) func(string) bool {
	return func(q string) bool {
		for _, p := range phrases {
			if strings.Contains(q, p) {
				return true
			}
		}
		return false
	}
}

func fixed(code string) func(string) string {
	return func(string) string { return code }
}
