package cli

import (
	"autoDetailing/internal/client/app"
	"autoDetailing/internal/models"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

const siteName = "South Charlotte Auto Detailing"

func renderPage(w io.Writer, a *app.App) {
	fmt.Fprintln(w)

	switch a.Router.Current() {
	case app.PageHome:
		fmt.Fprintln(w, siteName)
		fmt.Fprintln(w, "Transform Your Vehicle Today")
		fmt.Fprintln(w, "We deliver premium auto detailing services that bring out the best in your car.")
		fmt.Fprintln(w, "Type 'services' for pricing or 'book' to schedule an appointment.")
	case app.PageLogin:
		fmt.Fprintln(w, "Login")
		fmt.Fprintln(w, "Type 'login' to sign in or 'register' to create an account.")
	case app.PageRegister:
		fmt.Fprintln(w, "Create Account")
		fmt.Fprintln(w, "Type 'register' to sign up or 'login' if you already have an account.")
	case app.PageDashboard:
		renderDashboard(w, a.Session.User(), a.Jobs.Jobs())
	}

	if a.Form.IsOpen() {
		renderForm(w, a.Form.Draft())
	}
}

func renderDashboard(w io.Writer, user *models.User, jobs []models.Booking) {
	var name string
	if user != nil {
		name = user.DisplayName
	}

	fmt.Fprintln(w, "Dashboard")
	fmt.Fprintf(w, "Welcome, %s\n", name)
	fmt.Fprintln(w, "Here you can view and manage upcoming appointments.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Upcoming Jobs")

	if len(jobs) == 0 {
		fmt.Fprintln(w, "No upcoming jobs yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Customer\tService\tDate\tAddress")
	for _, job := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", job.Name, job.Service, formatDate(job.Date), job.Address)
	}
	_ = tw.Flush()
}

func renderForm(w io.Writer, d models.BookingDraft) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Book Your Appointment (type 'book' to continue, 'close' to discard)")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, field := range models.DraftFields {
		fmt.Fprintf(tw, "  %s\t%s\n", field, d.Get(field))
	}
	_ = tw.Flush()
}

func renderServices(w io.Writer, services []models.ServiceInfo) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tService\tPrice\tIncludes")
	for i, s := range services {
		price := fmt.Sprintf("$%d", s.PriceUSD)
		if s.Subscription {
			price += "/mo"
		}
		includes := s.Description
		if len(s.Features) > 0 {
			includes = fmt.Sprint(s.Features)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, s.Name, price, includes)
	}
	_ = tw.Flush()
}

// formatDate shows a YYYY-MM-DD date as MM/DD/YYYY and leaves anything
// else as stored.
func formatDate(s string) string {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return s
	}

	return t.Format("01/02/2006")
}
