package trustdeck

import "time"

// ============================================================================
// Domain
// ============================================================================

// Domain represents a pseudonymization domain: a named, hierarchical policy
// scope with its own algorithm and validity configuration. Fields left at
// their zero value are omitted from request bodies so the service keeps the
// stored (or inherited) value.
type Domain struct {
	// ID is the unique identifier assigned by the service
	ID *int `json:"id,omitempty"`

	// Name is the unique name of the domain
	Name string `json:"name,omitempty"`

	// Prefix is prepended to pseudonyms generated in this domain
	Prefix string `json:"prefix,omitempty"`

	// ValidFrom is the start of the domain validity period
	ValidFrom *time.Time `json:"validFrom,omitempty"`

	// ValidFromInherited reports whether ValidFrom comes from the parent domain
	ValidFromInherited *bool `json:"validFromInherited,omitempty"`

	// ValidTo is the end of the domain validity period
	ValidTo *time.Time `json:"validTo,omitempty"`

	// ValidToInherited reports whether ValidTo comes from the parent domain
	ValidToInherited *bool `json:"validToInherited,omitempty"`

	// ValidityTime is the validity period as a duration string (e.g. "1d")
	ValidityTime string `json:"validityTime,omitempty"`

	// EnforceStartDateValidity enforces the start date for pseudonyms
	EnforceStartDateValidity *bool `json:"enforceStartDateValidity,omitempty"`

	EnforceStartDateValidityInherited *bool `json:"enforceStartDateValidityInherited,omitempty"`

	// EnforceEndDateValidity enforces the end date for pseudonyms
	EnforceEndDateValidity *bool `json:"enforceEndDateValidity,omitempty"`

	EnforceEndDateValidityInherited *bool `json:"enforceEndDateValidityInherited,omitempty"`

	// Algorithm selects the pseudonymization algorithm for this domain
	Algorithm string `json:"algorithm,omitempty"`

	AlgorithmInherited *bool `json:"algorithmInherited,omitempty"`

	// Alphabet is the character set used for pseudonym generation
	Alphabet string `json:"alphabet,omitempty"`

	AlphabetInherited *bool `json:"alphabetInherited,omitempty"`

	// RandomAlgorithmDesiredSize is the desired pseudonym space size for the
	// random algorithm
	RandomAlgorithmDesiredSize *int64 `json:"randomAlgorithmDesiredSize,omitempty"`

	RandomAlgorithmDesiredSizeInherited *bool `json:"randomAlgorithmDesiredSizeInherited,omitempty"`

	// RandomAlgorithmDesiredSuccessProbability is the desired generation
	// success probability for the random algorithm
	RandomAlgorithmDesiredSuccessProbability *float64 `json:"randomAlgorithmDesiredSuccessProbability,omitempty"`

	RandomAlgorithmDesiredSuccessProbabilityInherited *bool `json:"randomAlgorithmDesiredSuccessProbabilityInherited,omitempty"`

	// MultiplePsnAllowed allows multiple pseudonyms per identifier
	MultiplePsnAllowed *bool `json:"multiplePsnAllowed,omitempty"`

	MultiplePsnAllowedInherited *bool `json:"multiplePsnAllowedInherited,omitempty"`

	// ConsecutiveValueCounter is the counter for consecutive pseudonym values
	ConsecutiveValueCounter *int64 `json:"consecutiveValueCounter,omitempty"`

	// PseudonymLength is the generated pseudonym length
	PseudonymLength *int `json:"pseudonymLength,omitempty"`

	PseudonymLengthInherited *bool `json:"pseudonymLengthInherited,omitempty"`

	// PaddingCharacter pads pseudonyms up to PseudonymLength
	PaddingCharacter string `json:"paddingCharacter,omitempty"`

	PaddingCharacterInherited *bool `json:"paddingCharacterInherited,omitempty"`

	// AddCheckDigit appends a check digit to generated pseudonyms
	AddCheckDigit *bool `json:"addCheckDigit,omitempty"`

	AddCheckDigitInherited *bool `json:"addCheckDigitInherited,omitempty"`

	// LengthIncludesCheckDigit reports whether PseudonymLength counts the
	// check digit
	LengthIncludesCheckDigit *bool `json:"lengthIncludesCheckDigit,omitempty"`

	LengthIncludesCheckDigitInherited *bool `json:"lengthIncludesCheckDigitInherited,omitempty"`

	// Salt is the salt value used for pseudonymization
	Salt string `json:"salt,omitempty"`

	// SaltLength is the length of a generated salt
	SaltLength *int `json:"saltLength,omitempty"`

	// Description is a free-text description of the domain
	Description string `json:"description,omitempty"`

	// SuperDomainID is the ID of the parent domain
	SuperDomainID *int `json:"superDomainID,omitempty"`

	// SuperDomainName is the name of the parent domain
	SuperDomainName string `json:"superDomainName,omitempty"`
}

// ============================================================================
// Pseudonym
// ============================================================================

// Pseudonym binds a generated pseudonym value to an (identifier, idType)
// pair within a domain, with an optional validity window.
type Pseudonym struct {
	// ID is the identifier of the record
	ID string `json:"id,omitempty"`

	// IDType is the type of the identifier
	IDType string `json:"idType,omitempty"`

	// Psn is the pseudonym value
	Psn string `json:"psn,omitempty"`

	// ValidFrom is the start of the validity period
	ValidFrom *time.Time `json:"validFrom,omitempty"`

	// ValidFromInherited reports whether ValidFrom comes from the domain
	ValidFromInherited *bool `json:"validFromInherited,omitempty"`

	// ValidTo is the end of the validity period
	ValidTo *time.Time `json:"validTo,omitempty"`

	// ValidToInherited reports whether ValidTo comes from the domain
	ValidToInherited *bool `json:"validToInherited,omitempty"`

	// ValidityTime is the validity period as a duration string (e.g. "1d")
	ValidityTime string `json:"validityTime,omitempty"`

	// DomainName is the name of the domain the pseudonym belongs to
	DomainName string `json:"domainName,omitempty"`
}

// Identifier is an identifying string together with its type (e.g. a social
// security number, or a statutory health insurance number).
type Identifier struct {
	// ID is the identifying string
	ID string `json:"identifier,omitempty"`

	// IDType is the type of the identifier
	IDType string `json:"idType,omitempty"`
}

// ============================================================================
// Person
// ============================================================================

// Algorithm describes how the registration service derives an identifier
// for a person record.
type Algorithm struct {
	// Name of the identifier-derivation algorithm
	Name string `json:"name,omitempty"`

	// IDType assigned to identifiers produced by this algorithm
	IDType string `json:"idType,omitempty"`
}

// Person is a demographic record managed by the registration service.
type Person struct {
	// ID is the internal id of the person record
	ID *int `json:"id,omitempty"`

	// FirstName is the person's first name(s)
	FirstName string `json:"firstName,omitempty"`

	// LastName is the person's last name
	LastName string `json:"lastName,omitempty"`

	// BirthName is the last name the person had at birth
	BirthName string `json:"birthName,omitempty"`

	// AdministrativeGender is the administrative gender of the person
	AdministrativeGender string `json:"administrativeGender,omitempty"`

	// DateOfBirth is the person's date of birth
	DateOfBirth string `json:"dateOfBirth,omitempty"`

	// Street is the street name and number of the person's address
	Street string `json:"street,omitempty"`

	// PostalCode is the postal code of the person's address
	PostalCode string `json:"postalCode,omitempty"`

	// City is the city name of the person's address
	City string `json:"city,omitempty"`

	// Country is the country name of the person's address
	Country string `json:"country,omitempty"`

	// Identifier is the identifier for the person
	Identifier string `json:"identifier,omitempty"`

	// IDType is the identifier's type
	IDType string `json:"idType,omitempty"`

	// Algorithm describes how to derive an identifier when none is given
	Algorithm *Algorithm `json:"algorithm,omitempty"`
}
