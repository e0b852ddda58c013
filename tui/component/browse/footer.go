package browse

type footerModel struct {
	message   string
	lastError string
	confirm   string
}

func newFooterModel() footerModel {
	return footerModel{}
}

func (f footerModel) view(width int) string {
	if f.confirm != "" {
		return footerStyle.Width(width).Render(confirmStyle.Render("delete " + f.confirm + "? (y/N)"))
	}

	hints := " q quit  ? help  space active  enter status  d delete  s filter"

	var indicators string
	if f.message != "" {
		indicators += "  " + messageStyle.Render(f.message)
	}
	if f.lastError != "" {
		indicators += "  " + errorStyle.Render("err: "+f.lastError)
	}

	return footerStyle.Width(width).Render(hints + indicators)
}
