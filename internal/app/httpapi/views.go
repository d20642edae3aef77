package httpapi

import (
	"html/template"

	"github.com/lumenweb/siteapi/internal/app/domain/lead"
	"github.com/lumenweb/siteapi/internal/app/domain/message"
	"github.com/lumenweb/siteapi/internal/app/domain/user"
)

// dashboardData feeds the dashboard view. Users carries the public view only;
// password hashes never reach this struct.
type dashboardData struct {
	Viewer   string
	Users    []user.Public
	Leads    []lead.Lead
	Messages []message.Message
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Dashboard</title>
</head>
<body>
  <header>
    <h1>Dashboard</h1>
    <p>Signed in as {{.Viewer}}</p>
    <form method="post" action="/logout"><button type="submit">Log out</button></form>
  </header>

  <section>
    <h2>Users ({{len .Users}})</h2>
    <table>
      <tr><th>Username</th><th>Registered</th></tr>
      {{range .Users}}<tr><td>{{.Username}}</td><td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td></tr>{{end}}
    </table>
  </section>

  <section>
    <h2>Leads ({{len .Leads}})</h2>
    <table>
      <tr><th>Name</th><th>Email</th><th>Phone</th><th>Submitted</th></tr>
      {{range .Leads}}<tr><td>{{.Name}}</td><td>{{.Email}}</td><td>{{.Phone}}</td><td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td></tr>{{end}}
    </table>
  </section>

  <section>
    <h2>Messages ({{len .Messages}})</h2>
    <table>
      <tr><th>Name</th><th>Email</th><th>Message</th><th>Submitted</th></tr>
      {{range .Messages}}<tr><td>{{.Name}}</td><td>{{.Email}}</td><td>{{.Message}}</td><td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td></tr>{{end}}
    </table>
  </section>
</body>
</html>
`))
