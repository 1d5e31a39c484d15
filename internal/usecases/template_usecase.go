package usecases

import (
	"context"
	"strings"

	"contract-hub.backend/internal/domain/entities"
	"contract-hub.backend/internal/domain/errors"
)

// The catalog is static: templates ship with the binary and are versioned
// with the code, not stored per tenant.
var contractTemplates = []*entities.ContractTemplate{
	{
		ID:          "rental-basic",
		Name:        "Residential Rental Agreement",
		Description: "Standard residential lease between a landlord and a tenant",
		Category:    "real-estate",
		Variables:   []string{"landlord", "tenant", "property_address", "monthly_rent", "start_date", "end_date"},
	},
	{
		ID:          "nda-mutual",
		Name:        "Mutual Non-Disclosure Agreement",
		Description: "Two-way confidentiality agreement for business discussions",
		Category:    "legal",
		Variables:   []string{"party_a", "party_b", "purpose", "effective_date", "term_years"},
	},
	{
		ID:          "freelance-services",
		Name:        "Freelance Services Agreement",
		Description: "Scope, deliverables and payment terms for independent work",
		Category:    "services",
		Variables:   []string{"client", "contractor", "scope", "fee", "deadline"},
	},
	{
		ID:          "employment-standard",
		Name:        "Employment Contract",
		Description: "Full-time employment terms and conditions",
		Category:    "hr",
		Variables:   []string{"employer", "employee", "position", "salary", "start_date"},
	},
}

var contractTypes = []*entities.ContractTypeInfo{
	{ID: "rental", Name: "Rental", Description: "Lease and rental agreements", Category: "real-estate", Icon: "home"},
	{ID: "nda", Name: "NDA", Description: "Confidentiality agreements", Category: "legal", Icon: "lock"},
	{ID: "freelance", Name: "Freelance", Description: "Independent contractor agreements", Category: "services", Icon: "briefcase"},
	{ID: "employment", Name: "Employment", Description: "Employment contracts", Category: "hr", Icon: "users"},
}

var contractFormSchemas = map[string]*entities.ContractFormSchema{
	"rental": {
		Type:     "rental",
		Required: []string{"landlord", "tenant", "property_address", "monthly_rent"},
		Fields: []entities.FormField{
			{Name: "landlord", Label: "Landlord", Type: "text", Required: true},
			{Name: "tenant", Label: "Tenant", Type: "text", Required: true},
			{Name: "property_address", Label: "Property address", Type: "text", Required: true},
			{Name: "monthly_rent", Label: "Monthly rent", Type: "number", Required: true},
			{Name: "start_date", Label: "Start date", Type: "date", Required: false},
			{Name: "end_date", Label: "End date", Type: "date", Required: false},
		},
	},
	"nda": {
		Type:     "nda",
		Required: []string{"party_a", "party_b", "purpose"},
		Fields: []entities.FormField{
			{Name: "party_a", Label: "First party", Type: "text", Required: true},
			{Name: "party_b", Label: "Second party", Type: "text", Required: true},
			{Name: "purpose", Label: "Purpose", Type: "textarea", Required: true},
			{Name: "effective_date", Label: "Effective date", Type: "date", Required: false},
			{Name: "term_years", Label: "Term (years)", Type: "number", Required: false},
		},
	},
	"freelance": {
		Type:     "freelance",
		Required: []string{"client", "contractor", "scope", "fee"},
		Fields: []entities.FormField{
			{Name: "client", Label: "Client", Type: "text", Required: true},
			{Name: "contractor", Label: "Contractor", Type: "text", Required: true},
			{Name: "scope", Label: "Scope of work", Type: "textarea", Required: true},
			{Name: "fee", Label: "Fee", Type: "number", Required: true},
			{Name: "deadline", Label: "Deadline", Type: "date", Required: false},
		},
	},
	"employment": {
		Type:     "employment",
		Required: []string{"employer", "employee", "position", "salary"},
		Fields: []entities.FormField{
			{Name: "employer", Label: "Employer", Type: "text", Required: true},
			{Name: "employee", Label: "Employee", Type: "text", Required: true},
			{Name: "position", Label: "Position", Type: "text", Required: true},
			{Name: "salary", Label: "Salary", Type: "number", Required: true},
			{Name: "start_date", Label: "Start date", Type: "date", Required: false},
		},
	},
}

// contractBodies are the render sources, one per contract type. Placeholders
// use {name} syntax and are replaced literally.
var contractBodies = map[string]string{
	"rental": `RESIDENTIAL RENTAL AGREEMENT

This agreement is made between {landlord} ("Landlord") and {tenant} ("Tenant")
for the property at {property_address}.

1. TERM. The tenancy begins on {start_date} and ends on {end_date}.
2. RENT. The Tenant shall pay {monthly_rent} per month, due on the first day
   of each month.
3. DEPOSIT. A security deposit equal to one month's rent is payable on
   signing.
4. MAINTENANCE. The Tenant shall keep the property in good condition and
   report damage promptly.

Signed by both parties below.`,
	"nda": `MUTUAL NON-DISCLOSURE AGREEMENT

This agreement is entered into between {party_a} and {party_b}, effective
{effective_date}, for the purpose of {purpose}.

1. CONFIDENTIAL INFORMATION. Each party may disclose non-public information
   to the other in connection with the purpose above.
2. OBLIGATIONS. The receiving party shall protect such information with the
   same care it applies to its own confidential information.
3. TERM. The obligations survive for {term_years} years from the effective
   date.

Signed by both parties below.`,
	"freelance": `FREELANCE SERVICES AGREEMENT

This agreement is made between {client} ("Client") and {contractor}
("Contractor").

1. SCOPE. The Contractor shall perform: {scope}
2. FEE. The Client shall pay {fee} upon acceptance of the deliverables.
3. DEADLINE. Deliverables are due by {deadline}.
4. INDEPENDENT CONTRACTOR. Nothing in this agreement creates an employment
   relationship.

Signed by both parties below.`,
	"employment": `EMPLOYMENT CONTRACT

This contract is made between {employer} ("Employer") and {employee}
("Employee").

1. POSITION. The Employee is engaged as {position}, starting {start_date}.
2. COMPENSATION. The annual salary is {salary}, paid monthly.
3. DUTIES. The Employee shall perform the duties customary to the position
   and such other duties as reasonably assigned.

Signed by both parties below.`,
}

// TemplateUsecase serves the static template catalog
type TemplateUsecase struct{}

func NewTemplateUsecase() *TemplateUsecase {
	return &TemplateUsecase{}
}

func (uc *TemplateUsecase) ListTemplates(ctx context.Context) []*entities.ContractTemplate {
	return contractTemplates
}

func (uc *TemplateUsecase) GetTemplate(ctx context.Context, id string) (*entities.ContractTemplate, error) {
	for _, t := range contractTemplates {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errors.NotFound("template not found")
}

func (uc *TemplateUsecase) ListTypes(ctx context.Context) []*entities.ContractTypeInfo {
	return contractTypes
}

func (uc *TemplateUsecase) GetFormSchema(ctx context.Context, typeID string) (*entities.ContractFormSchema, error) {
	schema, ok := contractFormSchemas[typeID]
	if !ok {
		return nil, errors.NotFound("unknown contract type")
	}
	return schema, nil
}

// RenderBody substitutes {name} placeholders in the body for the given
// contract type. Deterministic: same type and inputs always produce the
// same output. Missing inputs leave their placeholder in place.
func RenderBody(contractType string, inputs map[string]interface{}) (string, error) {
	body, ok := contractBodies[contractType]
	if !ok {
		return "", errors.NotFound("unknown contract type")
	}

	pairs := make([]string, 0, len(inputs)*2)
	for key, value := range inputs {
		pairs = append(pairs, "{"+key+"}", toDisplayString(value))
	}
	return strings.NewReplacer(pairs...).Replace(body), nil
}
