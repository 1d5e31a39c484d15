package entities

// ContractTemplate is a static catalog entry
type ContractTemplate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Variables   []string `json:"variables"`
}

// ContractTypeInfo describes a supported contract type
type ContractTypeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
}

// FormField is one input field of a contract type's form
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// ContractFormSchema is the form definition for a contract type
type ContractFormSchema struct {
	Type     string      `json:"type"`
	Required []string    `json:"required"`
	Fields   []FormField `json:"fields"`
}
