package model

type ServiceType string

const (
	ServiceTypePackage ServiceType = "package"
	ServiceTypeCourse  ServiceType = "course"
)

// Service is one bookable offering. IDs are assigned by the repository and
// never change across updates.
type Service struct {
	ID          int         `json:"id"`
	Type        ServiceType `json:"type"`
	Title       string      `json:"title"`
	Price       string      `json:"price"`
	Duration    string      `json:"duration"`
	Description string      `json:"description"`
	Includes    []string    `json:"includes"`
	Active      bool        `json:"active"`
}

// ServiceDraft is the editable subset of a Service submitted by the admin
// panel; the repository validates it and assigns the id.
type ServiceDraft struct {
	Type        ServiceType `json:"type" validate:"required,oneof=package course"`
	Title       string      `json:"title" validate:"required"`
	Price       string      `json:"price" validate:"required"`
	Duration    string      `json:"duration" validate:"required"`
	Description string      `json:"description" validate:"required"`
	Includes    []string    `json:"includes" validate:"required,min=1"`
	Active      bool        `json:"active"`
}

func DefaultServices() []Service {
	return []Service{
		{
			ID: 1, Type: ServiceTypePackage, Title: "Beginner Package",
			Price: "$150", Duration: "Half Day",
			Description: "Perfect for first-time divers. Includes basic training and guided shallow water dives.",
			Includes:    []string{"Basic equipment", "Instructor guidance", "Shallow water dive", "Certificate"},
			Active:      true,
		},
		{
			ID: 2, Type: ServiceTypePackage, Title: "Advanced Package",
			Price: "$250", Duration: "Full Day",
			Description: "For experienced divers seeking deeper adventures and marine life encounters.",
			Includes:    []string{"Advanced equipment", "Deep water dives", "Marine life tour", "Underwater photos"},
			Active:      true,
		},
		{
			ID: 3, Type: ServiceTypePackage, Title: "Professional Package",
			Price: "$400", Duration: "2 Days",
			Description: "Complete diving experience with multiple dive sites and professional guidance.",
			Includes:    []string{"Premium equipment", "Multiple dive sites", "Night diving", "Professional certification"},
			Active:      true,
		},
		{
			ID: 4, Type: ServiceTypeCourse, Title: "Open Water Course",
			Price: "$350", Duration: "3-4 Days",
			Description: "Get your open water diving certification with our comprehensive course.",
			Includes:    []string{"Theory sessions", "Pool training", "Open water dives", "PADI certification"},
			Active:      true,
		},
		{
			ID: 5, Type: ServiceTypeCourse, Title: "Advanced Open Water",
			Price: "$450", Duration: "2-3 Days",
			Description: "Build on your skills with advanced diving techniques and deeper exploration.",
			Includes:    []string{"5 Adventure dives", "Deep dive", "Navigation dive", "Advanced certification"},
			Active:      true,
		},
	}
}

// ServiceSelection is the transient "book now" pre-fill handed from the
// services page to the contact form. It is consumed on read.
type ServiceSelection struct {
	Service   string      `json:"service"`
	Type      ServiceType `json:"type"`
	Timestamp int64       `json:"timestamp"`
}
