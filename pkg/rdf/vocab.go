package rdf

// Namespaces. The predicate IRIs below are an on-wire contract with data that
// already exists in deployed graphs and must not change.
const (
	NSDSSN    = "http://purl.org/net/dssn/"
	NSFOAF    = "http://xmlns.com/foaf/0.1/"
	NSRDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSSIOC    = "http://rdfs.org/sioc/ns#"
	NSDCTerms = "http://purl.org/dc/terms/"
)

// Application vocabulary.
const (
	DSSNSubscription         IRI = NSDSSN + "Subscription"
	DSSNSubscribedTo         IRI = NSDSSN + "subscribedTo"
	DSSNSubscriptionCallback IRI = NSDSSN + "subscriptionCallback"
	DSSNSubscriptionHub      IRI = NSDSSN + "subscriptionHub"
	DSSNSubscriptionTopic    IRI = NSDSSN + "subscriptionTopic"
	DSSNActivityFeed         IRI = NSDSSN + "activityFeed"
	DSSNNotify               IRI = NSDSSN + "notify"
)

// Standard vocabularies.
const (
	FOAFPerson      IRI = NSFOAF + "Person"
	FOAFAccount     IRI = NSFOAF + "account"
	FOAFAccountName IRI = NSFOAF + "accountName"

	RDFType IRI = NSRDF + "type"

	SIOCContent    IRI = NSSIOC + "content"
	DCTermsCreated IRI = NSDCTerms + "created"
)
