package main

import "github.com/Zachkp/portfolio/internal/config"

// Copy used when site.yaml leaves a field empty.
var (
	DefaultTitle = "Data Science Portfolio"

	DefaultTagline = `Turning messy data into models, pipelines and write-ups that hold up in production.`

	AboutMe = `I work on the whole path from raw data to a deployed model: exploratory analysis,
	feature engineering, model selection and the plumbing that keeps it running afterwards.
	Most of my projects start as a question about a dataset and end as a tool someone else can use.
	The blog is where I write down what worked, what didn't, and what I would do differently next time.`

	PrivacyNotice = `Visitor addresses are hashed with a per-process salt before they are stored,
	so they cannot be turned back into an IP address. Requests sent with a Do Not Track header are not
	recorded. Visitor records are deleted after twelve months.`
)

// siteCopy is the text shown in the page header and the about section.
type siteCopy struct {
	Title   string
	Tagline string
	About   string
}

func newSiteCopy(s *config.Site) siteCopy {
	sc := siteCopy{Title: DefaultTitle, Tagline: DefaultTagline, About: AboutMe}
	if s == nil {
		return sc
	}
	if s.Title != "" {
		sc.Title = s.Title
	}
	if s.Tagline != "" {
		sc.Tagline = s.Tagline
	}
	if s.About != "" {
		sc.About = s.About
	}
	return sc
}
