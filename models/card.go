package models

// FrontCard is the rendered front face of one card.
// Font sizes are the auto-fit results in CSS px.
type FrontCard struct {
	Student    StudentRecord
	HeaderSize float64
	NameSize   float64
	FatherSize float64
	FooterSize float64
}

// BackCard is the rendered static back template.
type BackCard struct {
	SchoolNameSize float64
	AddressSize    float64
	PhoneSize      float64
}

// SchoolInfo holds the static text printed on every card
type SchoolInfo struct {
	Name      string
	ShortName string
	Address   string
	Phone     string
	Rules     []string
}

// Artwork holds the static images composed into the back face, as data URIs or URLs
type Artwork struct {
	LogoURI      string
	SignatureURI string
}
