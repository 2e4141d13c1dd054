package types

// Flash carries a one-shot notice or error across a redirect.
type Flash struct {
	Notice string `json:"notice,omitempty"`
	Error  string `json:"error,omitempty"`
}

type NavItem struct {
	Label  string
	Href   string
	Active bool
}

type NavbarData struct {
	Items []NavItem
}

type PageDataSetter interface {
	SetNavbarData(data NavbarData)
	SetFlash(flash Flash)
}

type BasePageData struct {
	Title  string
	Navbar NavbarData
	Flash  Flash
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

func (d *BasePageData) SetFlash(flash Flash) {
	d.Flash = flash
}

// FormOptions are the choices offered by the intake and action forms.
type FormOptions struct {
	Sectors     []string
	Phases      []string
	Responsible []string
	Statuses    []ActionStatus
}
