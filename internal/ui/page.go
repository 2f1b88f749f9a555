package ui

// Page is one of the client's three views.
type Page int

const (
	PageHome Page = iota
	PageRegister
	PageAdmin
)

// Pages lists every page in navigation order.
var Pages = []Page{PageHome, PageRegister, PageAdmin}

func (p Page) String() string {
	switch p {
	case PageRegister:
		return "register"
	case PageAdmin:
		return "admin"
	default:
		return "home"
	}
}

// ParsePage maps a page name back to its Page.
func ParsePage(s string) (Page, bool) {
	for _, p := range Pages {
		if p.String() == s {
			return p, true
		}
	}
	return PageHome, false
}
