// Package schema defines the fixed field sets the pipeline asks the
// completion service to fill in from document content. The field names are
// the vendor's data-entry layout and must not be reworded: the extraction
// prompt sends them verbatim and downstream consumers key on them.
package schema

import (
	"bytes"
	"encoding/json"
)

// FieldSet is an ordered list of field names. It marshals to a JSON object
// mapping each name to an empty-string placeholder, preserving order.
type FieldSet []string

// MarshalJSON emits the ordered {"name": "", ...} object sent in prompts.
func (f FieldSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(`:""`)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Contains reports whether the set includes the given field name.
func (f FieldSet) Contains(name string) bool {
	for _, n := range f {
		if n == name {
			return true
		}
	}
	return false
}

// FinalAssignment returns the field set for assignment-of-mortgage records.
func FinalAssignment() FieldSet {
	return FieldSet{
		"Record Type 'Z'",
		"Document Type (Must be populated with one of the valid codes)",
		"FIPS Code",
		"MERS Indicator (ASSIGNEE)",
		"RECORD ID M = MAIN Record (default value for all non-addendum records) A = APN Addendum; D= DOT Addendum",
		"Assignment Recording Date",
		"Assignment EFFECTIVE or CONTRACT Date.",
		"Assignment Document Number (also known as:  Reception No, Instrument No.)",
		"Assignment Book Number",
		"Assignment Page Number",
		"Multiple Page Image Flag",
		"LPS Image Identifier",
		"Original Deed of Trust ('DOT') Recording Date",
		"Original Deed of Trust ('DOT') Contract Date",
		"Original Deed of Trust('DOT') Document Number",
		"Original Deed of Trust ('DOT') Book Number",
		"Original Deed of Trust ('DOT') Page Number",
		"Original Beneficiary/Lender/Mortgagee/In Favor of/Made By",
		"Original Loan Amount",
		"Assignor Name(s) ",
		"Loan Number",
		"Assignee(s) (Lender(s) receiving right, title & interest in the Deed of Trust or Mortgage)",
		"MERS (MIN) Number",
		"MERS NUMBER  PASS VALIDATION",
		"Assignee / Pool",
		"MSP Servicer Number and Loan Number",
		"Borrower Name(s)/Corporation(s)",
		"Assessor Parcel Number (APN, PIN, PID)",
		"Multiple APN Code",
		"Tax Acct ID",
		"Property: Full Street Address-  (Look for phrases such as `Commonly known as`)",
		"Property: Unit #",
		"Property: City Name",
		"Property: State",
		"Property: Zip",
		"Property: Zip + 4",
		"Data Entry Date",
		"Data Entry Operator Code",
		"Vendor Source Code",
	}
}

// FinalRelease returns the field set for release/satisfaction records.
func FinalRelease() FieldSet {
	return FieldSet{
		"Record Type",
		"Document Type (Must be populated with one of the valid codes)",
		"FIPS Code",
		"RECORD ID M = MAIN Record (default value for all non-addendum records); A = APN Addendum; D= DOT Addendum",
		"Release Recording Date",
		"Release Contract Date or Effective Date ",
		"(Mortgage) Payoff Date (P.O. Date)",
		"Release Document Number (Instrument, Reception No)",
		"Release Book Number (Folio, Liber,Volume)",
		"Release Page Number",
		"Multiple Page Image Flag",
		"LPS Image Identifier",
		"Original Deed of Trust ('DOT') Recording Date",
		"Original Deed of Trust ('DOT') Contract Date",
		"Original Deed of Trust('DOT') Document Number",
		"Original Deed of Trust ('DOT') Book Number",
		"Original Deed of Trust ('DOT') Page Number",
		"Original Beneficiary/Lender/Mortgagee",
		"Original Loan Amount",
		"Loan Number",
		"Current Beneficiary/Lender/Mortgagee",
		"MERS (MIN) Number",
		"MERS NUMBER  PASS VALIDATION",
		"MSP Servicer Number and Loan Number",
		"Current Lender 'Pool'",
		"Borrower Name(s)/Corporation(s)",
		"Borrower Mail Full Street Address ",
		"Borrower Mail Unit",
		"Borrower Mail City Name",
		"Borrower Mail State",
		"Borrower Mail Zip",
		"Borrower Mail Zip + 4",
		"Assessor Parcel Number (APN, PID, PIN)",
		"Multiple APN Code",
		"Tax Acct ID",
		"Property: Full Street Address-  (Look for phrases such as `Commonly known as`)",
		"Property: Unit #",
		"Property: City Name",
		"Property: State",
		"Property: Zip",
		"Property: Zip + 4",
		"Data Entry Date",
		"Data Entry Operator Code",
		"Vendor Source Code",
	}
}
