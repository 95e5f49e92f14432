package trustdeck

import (
	"strconv"
	"strings"
	"time"
)

// domainAttributes maps the closed set of domain attribute names (lowercase)
// to accessors producing the field's string representation. Built once;
// unrecognized names deterministically map to "no value".
var domainAttributes = map[string]func(*Domain) string{
	"id":                         func(d *Domain) string { return formatInt(d.ID) },
	"name":                       func(d *Domain) string { return d.Name },
	"prefix":                     func(d *Domain) string { return d.Prefix },
	"validfrom":                  func(d *Domain) string { return formatTime(d.ValidFrom) },
	"validto":                    func(d *Domain) string { return formatTime(d.ValidTo) },
	"validitytime":               func(d *Domain) string { return d.ValidityTime },
	"enforcestartdatevalidity":   func(d *Domain) string { return formatBool(d.EnforceStartDateValidity) },
	"enforceenddatevalidity":     func(d *Domain) string { return formatBool(d.EnforceEndDateValidity) },
	"algorithm":                  func(d *Domain) string { return d.Algorithm },
	"alphabet":                   func(d *Domain) string { return d.Alphabet },
	"randomalgorithmdesiredsize": func(d *Domain) string { return formatInt64(d.RandomAlgorithmDesiredSize) },
	"randomalgorithmdesiredsuccessprobability": func(d *Domain) string { return formatFloat(d.RandomAlgorithmDesiredSuccessProbability) },
	"multiplepsnallowed":                       func(d *Domain) string { return formatBool(d.MultiplePsnAllowed) },
	"consecutivevaluecounter":                  func(d *Domain) string { return formatInt64(d.ConsecutiveValueCounter) },
	"pseudonymlength":                          func(d *Domain) string { return formatInt(d.PseudonymLength) },
	"paddingcharacter":                         func(d *Domain) string { return d.PaddingCharacter },
	"addcheckdigit":                            func(d *Domain) string { return formatBool(d.AddCheckDigit) },
	"lengthincludescheckdigit":                 func(d *Domain) string { return formatBool(d.LengthIncludesCheckDigit) },
	"salt":                                     func(d *Domain) string { return d.Salt },
	"saltlength":                               func(d *Domain) string { return formatInt(d.SaltLength) },
	"description":                              func(d *Domain) string { return d.Description },
	"superdomainid":                            func(d *Domain) string { return formatInt(d.SuperDomainID) },
	"superdomainname":                          func(d *Domain) string { return d.SuperDomainName },
}

// domainAttribute returns the string representation of the named attribute,
// matched case-insensitively, or "" for names outside the known set.
func domainAttribute(d *Domain, name string) string {
	accessor, ok := domainAttributes[strings.ToLower(name)]
	if !ok {
		return ""
	}
	return accessor(d)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func formatTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(time.RFC3339)
}
