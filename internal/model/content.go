package model

// HeroContent is the headline block above the carousel.
type HeroContent struct {
	MainTitle string `json:"mainTitle"`
	Subtitle  string `json:"subtitle"`
}

// SiteContent covers the remaining editable page sections. It is saved
// wholesale: callers read-modify-write the full record, never patch fields.
type SiteContent struct {
	Hero    HeroSection  `json:"hero"`
	About   AboutSection `json:"about"`
	Contact ContactInfo  `json:"contact"`
}

type HeroSection struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type AboutSection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Stats       []Stat `json:"stats"`
}

type Stat struct {
	Number string `json:"number"`
	Label  string `json:"label"`
}

type ContactInfo struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Hours   string `json:"hours"`
}

func DefaultHeroContent() HeroContent {
	return HeroContent{
		MainTitle: "Welcome to Kulhudhufushidive",
		Subtitle:  "Discover the underwater world with professional diving experiences",
	}
}

func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		Phone:   "+960 123-4567",
		Email:   "info@kulhudhufushidive.com",
		Address: "Kulhudhuffushi Island, Haa Dhaalu Atoll, Maldives",
		Hours:   "Mon - Sat: 8:00 AM - 6:00 PM",
	}
}

func DefaultSiteContent() SiteContent {
	hero := DefaultHeroContent()
	return SiteContent{
		Hero: HeroSection{Title: hero.MainTitle, Subtitle: hero.Subtitle},
		About: AboutSection{
			Title:       "About Kulhudhufushidive",
			Description: "Your premier diving destination in the Maldives...",
			Stats: []Stat{
				{Number: "500+", Label: "Happy Divers"},
				{Number: "50+", Label: "Dive Sites"},
				{Number: "10+", Label: "Years Experience"},
				{Number: "100%", Label: "Safety Record"},
			},
		},
		Contact: DefaultContactInfo(),
	}
}
