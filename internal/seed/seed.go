// Package seed populates an empty record store with demo data so the
// agents and analytics have something to chew on. It is intended for
// development and demo environments; production deployments leave
// SEED_ON_STARTUP off.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/KrishKoria/Qest/internal/model"
	"github.com/KrishKoria/Qest/internal/repository"
)

var firstNames = []string{
	"Emma", "Liam", "Olivia", "Noah", "Ava", "Oliver", "Sophia", "Elijah",
	"Charlotte", "William", "Amelia", "James", "Isabella", "Benjamin", "Mia",
	"Lucas", "Harper", "Henry", "Evelyn", "Alexander", "Abigail", "Mason",
	"Emily", "Michael", "Elizabeth", "Ethan", "Sofia", "Daniel", "Avery",
	"Jacob", "Ella", "Logan", "Scarlett", "Jackson", "Grace", "Levi",
	"Chloe", "Sebastian", "Victoria", "Mateo", "Riley", "Jack", "Aria",
	"Owen", "Lily", "Theodore", "Aubrey", "Aiden", "Zoey", "Samuel",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores", "Green",
	"Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
	"Carter", "Roberts",
}

// courseCatalog is the fixed program lineup of the demo studio.
var courseCatalog = []model.Course{
	{
		Name:            "Yoga Beginner",
		Instructor:      "Sarah Johnson",
		Description:     "Perfect for newcomers to yoga. Learn basic poses, breathing techniques, and relaxation methods.",
		DurationWeeks:   8,
		Capacity:        15,
		Price:           120.00,
		Category:        "Yoga",
		DifficultyLevel: "beginner",
	},
	{
		Name:            "Advanced Pilates",
		Instructor:      "Michael Chen",
		Description:     "High-intensity Pilates for experienced practitioners. Focus on core strength and flexibility.",
		DurationWeeks:   12,
		Capacity:        10,
		Price:           180.00,
		Category:        "Pilates",
		DifficultyLevel: "advanced",
	},
	{
		Name:            "HIIT Bootcamp",
		Instructor:      "Lisa Rodriguez",
		Description:     "High-Intensity Interval Training for maximum calorie burn and muscle building.",
		DurationWeeks:   6,
		Capacity:        20,
		Price:           150.00,
		Category:        "Cardio",
		DifficultyLevel: "intermediate",
	},
	{
		Name:            "Meditation & Mindfulness",
		Instructor:      "David Kim",
		Description:     "Learn mindfulness techniques and meditation practices for stress relief and mental clarity.",
		DurationWeeks:   4,
		Capacity:        12,
		Price:           80.00,
		Category:        "Wellness",
		DifficultyLevel: "beginner",
	},
	{
		Name:            "Strength Training",
		Instructor:      "Amanda Wilson",
		Description:     "Build muscle and increase strength with progressive weight training programs.",
		DurationWeeks:   10,
		Capacity:        8,
		Price:           200.00,
		Category:        "Strength",
		DifficultyLevel: "intermediate",
	},
	{
		Name:            "Dance Fitness",
		Instructor:      "Carlos Martinez",
		Description:     "Fun and energetic dance-based workout combining various dance styles.",
		DurationWeeks:   8,
		Capacity:        25,
		Price:           140.00,
		Category:        "Dance",
		DifficultyLevel: "beginner",
	},
}

var equipment = []string{
	"yoga mats", "dumbbells", "resistance bands", "stability balls", "foam rollers",
}

var orderNotes = []string{
	"", "Student discount applied", "Early bird special",
	"Referral bonus", "Loyalty member discount",
}

// Seeder writes demo records through the repositories so the same
// serialization and constraints apply as in the live write paths.
type Seeder struct {
	Clients    *repository.ClientRepo
	Orders     *repository.OrderRepo
	Payments   *repository.PaymentRepo
	Courses    *repository.CourseRepo
	Classes    *repository.ClassRepo
	Attendance *repository.AttendanceRepo

	Rand *rand.Rand
	Now  func() time.Time
}

func (s *Seeder) rng() *rand.Rand {
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s.Rand
}

func (s *Seeder) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Run seeds all six collections. It refuses to touch a store that already
// has clients so a restart with SEED_ON_STARTUP=true cannot duplicate data.
func (s *Seeder) Run(ctx context.Context) error {
	existing, err := s.Clients.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count clients: %w", err)
	}
	if existing > 0 {
		log.Printf("seed: store already has %d clients, skipping", existing)
		return nil
	}

	clientIDs, err := s.seedClients(ctx, 50)
	if err != nil {
		return err
	}
	courses, err := s.seedCourses(ctx)
	if err != nil {
		return err
	}
	classes, err := s.seedClasses(ctx, courses)
	if err != nil {
		return err
	}
	orders, err := s.seedOrders(ctx, clientIDs, courses)
	if err != nil {
		return err
	}
	if err := s.seedPayments(ctx, orders); err != nil {
		return err
	}
	if err := s.seedAttendance(ctx, clientIDs, classes); err != nil {
		return err
	}
	log.Printf("seed: %d clients, %d courses, %d classes, %d orders",
		len(clientIDs), len(courses), len(classes), len(orders))
	return nil
}

func (s *Seeder) seedClients(ctx context.Context, count int) ([]uint64, error) {
	r := s.rng()
	now := s.now()
	statuses := []string{
		model.ClientActive, model.ClientActive, model.ClientActive,
		model.ClientInactive, model.ClientSuspended,
	}
	streets := []string{"Main", "Oak", "Park", "Elm", "First"}

	ids := make([]uint64, 0, count)
	seen := map[string]bool{}
	for i := 0; i < count; i++ {
		first := firstNames[r.Intn(len(firstNames))]
		last := lastNames[r.Intn(len(lastNames))]
		email := fmt.Sprintf("%s.%s@email.com", strings.ToLower(first), strings.ToLower(last))
		if seen[email] {
			email = fmt.Sprintf("%s.%s%d@email.com", strings.ToLower(first), strings.ToLower(last), i)
		}
		seen[email] = true

		registered := now.AddDate(0, 0, -(1 + r.Intn(730)))
		ageDays := (20+r.Intn(41))*365 + r.Intn(365)
		birthday := now.AddDate(0, 0, -ageDays)
		activity := registered.AddDate(0, 0, r.Intn(int(now.Sub(registered).Hours()/24)+1))

		c := model.Client{
			Name:             first + " " + last,
			Email:            email,
			Phone:            fmt.Sprintf("+1%d", 1000000000+r.Int63n(9000000000)),
			Status:           statuses[r.Intn(len(statuses))],
			EnrolledServices: []string{},
			RegistrationDate: registered,
			Birthday:         &birthday,
			LastActivity:     &activity,
			Address:          fmt.Sprintf("%d %s St, City, State", 100+r.Intn(9900), streets[r.Intn(len(streets))]),
			EmergencyContact: map[string]string{
				"name":         firstNames[r.Intn(len(firstNames))] + " " + lastNames[r.Intn(len(lastNames))],
				"phone":        fmt.Sprintf("+1%d", 1000000000+r.Int63n(9000000000)),
				"relationship": []string{"spouse", "parent", "sibling", "friend"}[r.Intn(4)],
			},
		}
		id, err := s.Clients.Create(ctx, &c)
		if err != nil {
			return nil, fmt.Errorf("seed: create client: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Seeder) seedCourses(ctx context.Context) ([]model.Course, error) {
	r := s.rng()
	now := s.now()

	out := make([]model.Course, 0, len(courseCatalog))
	for _, c := range courseCatalog {
		c.EnrollmentCount = 5 + r.Intn(c.Capacity-4)
		c.CompletionRate = 70 + r.Float64()*25
		c.Prerequisites = []string{}
		c.IsActive = true
		c.CreatedDate = now.AddDate(0, 0, -(30 + r.Intn(336)))

		id, err := s.Courses.Create(ctx, &c)
		if err != nil {
			return nil, fmt.Errorf("seed: create course: %w", err)
		}
		c.ID = id
		out = append(out, c)
	}
	return out, nil
}

func (s *Seeder) seedClasses(ctx context.Context, courses []model.Course) ([]model.Class, error) {
	r := s.rng()
	now := s.now()
	durations := []int{45, 60, 75, 90}
	rooms := []string{"Studio A", "Studio B", "Studio C"}
	reasons := []string{"Instructor illness", "Low enrollment", "Facility maintenance"}

	var out []model.Class
	for _, course := range courses {
		n := 10 + r.Intn(11)
		for i := 0; i < n; i++ {
			// half the sessions sit in the past so attendance analytics
			// have material to aggregate
			dayOffset := r.Intn(60) + 1
			if i%2 == 0 {
				dayOffset = -dayOffset
			}
			schedule := now.AddDate(0, 0, dayOffset).
				Truncate(24 * time.Hour).
				Add(time.Duration(6+r.Intn(15)) * time.Hour).
				Add(time.Duration([]int{0, 15, 30, 45}[r.Intn(4)]) * time.Minute)

			cl := model.Class{
				CourseID:        course.ID,
				CourseName:      course.Name,
				Instructor:      course.Instructor,
				Schedule:        schedule,
				DurationMinutes: durations[r.Intn(len(durations))],
				Capacity:        course.Capacity,
				EnrolledCount:   r.Intn(course.Capacity + 1),
				Room:            rooms[r.Intn(len(rooms))],
				EquipmentNeeded: pick(r, equipment, 1+r.Intn(3)),
				IsCancelled:     r.Intn(10) == 0,
				Notes:           "Regular class session",
			}
			if cl.IsCancelled {
				cl.CancellationReason = reasons[r.Intn(len(reasons))]
			}
			id, err := s.Classes.Create(ctx, &cl)
			if err != nil {
				return nil, fmt.Errorf("seed: create class: %w", err)
			}
			cl.ID = id
			out = append(out, cl)
		}
	}
	return out, nil
}

func (s *Seeder) seedOrders(ctx context.Context, clientIDs []uint64, courses []model.Course) ([]model.Order, error) {
	r := s.rng()
	now := s.now()
	statuses := []string{
		model.OrderPending, model.OrderPaid, model.OrderPaid,
		model.OrderCancelled, model.OrderRefunded,
	}

	n := 100 + r.Intn(51)
	out := make([]model.Order, 0, n)
	for i := 0; i < n; i++ {
		course := courses[r.Intn(len(courses))]
		created := now.AddDate(0, 0, -(1 + r.Intn(180)))

		o := model.Order{
			ClientID:    clientIDs[r.Intn(len(clientIDs))],
			ServiceType: model.ServiceCourse,
			ServiceID:   course.ID,
			ServiceName: course.Name,
			Amount:      course.Price,
			Status:      statuses[r.Intn(len(statuses))],
			CreatedDate: created,
			TaxAmount:   round2(course.Price * 0.08),
			Notes:       orderNotes[r.Intn(len(orderNotes))],
		}
		if r.Float64() < 0.3 {
			o.DiscountApplied = round2(r.Float64() * 20)
		}
		switch o.Status {
		case model.OrderPaid, model.OrderRefunded:
			due := created.AddDate(0, 0, 7)
			paid := created.AddDate(0, 0, 1+r.Intn(7))
			o.DueDate = &due
			o.PaidDate = &paid
		case model.OrderPending:
			due := now.AddDate(0, 0, 1+r.Intn(30))
			o.DueDate = &due
		}

		id, err := s.Orders.Create(ctx, &o)
		if err != nil {
			return nil, fmt.Errorf("seed: create order: %w", err)
		}
		o.ID = id
		out = append(out, o)
	}
	return out, nil
}

func (s *Seeder) seedPayments(ctx context.Context, orders []model.Order) error {
	r := s.rng()
	methods := []string{model.MethodCard, model.MethodCash, model.MethodOnline, model.MethodBankTransfer}

	for _, o := range orders {
		if o.Status != model.OrderPaid && o.Status != model.OrderRefunded {
			continue
		}
		status := model.PaymentCompleted
		if o.Status == model.OrderRefunded {
			status = model.PaymentRefunded
		}
		when := o.CreatedDate
		if o.PaidDate != nil {
			when = *o.PaidDate
		}
		p := model.Payment{
			OrderID:         o.ID,
			Amount:          o.Amount - o.DiscountApplied + o.TaxAmount,
			PaymentDate:     when,
			Method:          methods[r.Intn(len(methods))],
			Status:          status,
			TransactionID:   fmt.Sprintf("TXN%d", 1000000+r.Intn(9000000)),
			GatewayResponse: fmt.Sprintf(`{"status":"success","reference":"REF%d"}`, 100000+r.Intn(900000)),
		}
		if _, err := s.Payments.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed: create payment: %w", err)
		}
	}
	return nil
}

func (s *Seeder) seedAttendance(ctx context.Context, clientIDs []uint64, classes []model.Class) error {
	r := s.rng()
	now := s.now()
	statuses := []string{
		model.AttendancePresent, model.AttendancePresent, model.AttendancePresent,
		model.AttendanceLate, model.AttendanceAbsent,
	}

	for _, cl := range classes {
		if !cl.Schedule.Before(now) || cl.IsCancelled {
			continue
		}
		n := int(float64(cl.EnrolledCount) * (0.6 + r.Float64()*0.3))
		if n > len(clientIDs) {
			n = len(clientIDs)
		}
		// distinct clients per class, the storage layer rejects duplicates
		perm := r.Perm(len(clientIDs))[:n]
		for _, idx := range perm {
			a := model.Attendance{
				ClassID:  cl.ID,
				ClientID: clientIDs[idx],
				Date:     cl.Schedule,
				Status:   statuses[r.Intn(len(statuses))],
			}
			if r.Float64() > 0.1 {
				in := cl.Schedule.Add(time.Duration(r.Intn(21)-5) * time.Minute)
				a.CheckedInTime = &in
			}
			if r.Float64() > 0.2 {
				out := cl.Schedule.Add(time.Duration(cl.DurationMinutes+r.Intn(31)-10) * time.Minute)
				a.CheckedOutTime = &out
			}
			if _, err := s.Attendance.Create(ctx, &a); err != nil {
				return fmt.Errorf("seed: create attendance: %w", err)
			}
		}
	}
	return nil
}

func pick(r *rand.Rand, items []string, n int) []string {
	perm := r.Perm(len(items))
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, items[idx])
	}
	return out
}


func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
