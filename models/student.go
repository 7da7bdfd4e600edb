package models

// SheetCapacity is the number of cards printed on one sheet
const SheetCapacity = 4

// StudentRecord represents one student card on the sheet.
// Records are immutable once added; their identity is their position in the list.
type StudentRecord struct {
	Name               string `json:"name"`
	FatherName         string `json:"fatherName"`
	ClassName          string `json:"className"`
	RegistrationNumber string `json:"registrationNumber"`
	Photo              string `json:"photo"` // data URI or empty
}

// StudentInput represents the submitted form fields before the staged photo is attached
type StudentInput struct {
	Name               string `json:"name"`
	FatherName         string `json:"fatherName"`
	ClassName          string `json:"className"`
	RegistrationNumber string `json:"registrationNumber"`
}

// ImportResult contains the summary of a roster import
type ImportResult struct {
	TotalProcessed   int      `json:"totalProcessed"`
	Added            int      `json:"added"`
	SkippedOverLimit int      `json:"skippedOverLimit"`
	Failed           int      `json:"failed"`
	Errors           []string `json:"errors"`
}
