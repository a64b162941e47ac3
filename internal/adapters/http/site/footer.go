package site

// Link is one footer anchor. Icon names a glyph from the embedded sprite.
type Link struct {
	Label string
	Href  string
	Icon  string
}

// FooterColumn is one titled group of links.
type FooterColumn struct {
	Title string
	Links []Link
}

// Footer is the static site footer.
type Footer struct {
	LogoSrc string
	LogoAlt string
	Columns []FooterColumn
}

// SiteFooter is rendered at the bottom of every page.
var SiteFooter = Footer{ //nolint:gochecknoglobals // static content
	LogoSrc: "/static/img/logo.svg",
	LogoAlt: "logo",
	Columns: []FooterColumn{
		{
			Title: "Talento Risaralda",
			Links: []Link{
				{Label: "Home", Href: "#"},
				{Label: "Competiciones", Href: "#"},
				{Label: "Quiero Competir", Href: "#"},
				{Label: "Ingresar al sistema", Href: "#"},
			},
		},
		{
			Title: "Competiciones",
			Links: []Link{
				{Label: "World Skills", Href: "#"},
				{Label: "Sena Soft", Href: "#"},
				{Label: "Acme Skills", Href: "#"},
			},
		},
		{
			Title: "Redes Sociales",
			Links: []Link{
				{Label: "Facebook", Href: "#", Icon: "facebook"},
				{Label: "X", Href: "#", Icon: "x"},
				{Label: "Instagram", Href: "#", Icon: "instagram"},
				{Label: "TikTok", Href: "#", Icon: "tiktok"},
			},
		},
	},
}
