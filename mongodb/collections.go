package mongodb

const (
	CompaniesCollection   = "companies"
	TasksCollection       = "tasks"
	AuditsCollection      = "audits"
	ProposalsCollection   = "proposals"
	LeadsCollection       = "leads"
	NewsletterCollection  = "newsletter_subscribers"
	ProfilesCollection    = "profiles"
	PortalLinksCollection = "portal_links"
)
