package constants

// Sort keys accepted by the field-of-interest list endpoint. The empty key
// orders by id ascending.
const (
	SortIDAsc           = ""
	SortIDDesc          = "id_desc"
	SortDescriptionAsc  = "description"
	SortDescriptionDesc = "description_desc"
	SortCreatedAsc      = "created"
	SortCreatedDesc     = "created_desc"

	// legacy spelling of SortIDDesc still sent by old clients
	SortIDDescLegacy = "fieldofinterestid_desc"
)

// Country ids are stored upper-cased at exactly this length.
const CountryIDLength = 2

const (
	// Response header carrying the country count on the list endpoint.
	HeaderNumberOfCountries = "X-Number-Of-Countries"
	CountryListCacheControl = "public, max-age=60"
)

const (
	OutcomeDeleted     = "deleted"
	OutcomeAlreadyGone = "already_gone"
)

const MetricsNamespace = "catalog"
