package models

// Column captions shared by every rendered table.
const (
	NameCaption      = "Employee Name"
	ExtensionCaption = "Extension Number"
)

// Row is a single rendered employee.
type Row struct {
	Name        string    `json:"name"`
	Extension   Extension `json:"extension"`
	CallTarget  string    `json:"callTarget"`
	EmailTarget string    `json:"emailTarget,omitempty"`
	Email       string    `json:"email,omitempty"`
}

// Table is one of the two partitions of the directory.
type Table struct {
	Heading string `json:"heading"`
	Rows    []Row  `json:"rows"`
}

// OfficePanel is the contact block for the selected location.
type OfficePanel struct {
	Location    string `json:"location"`
	Title       string `json:"title"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	CallTarget  string `json:"callTarget"`
}

// View is everything a rendering substrate needs to draw the directory.
// Office is nil when no panel must be shown.
type View struct {
	Location string       `json:"location"`
	Search   string       `json:"search"`
	Left     Table        `json:"left"`
	Right    Table        `json:"right"`
	Office   *OfficePanel `json:"office"`
}
