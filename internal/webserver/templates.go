package webserver

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

type renderer struct {
	tmpl *template.Template
}

func newRenderer() *renderer {
	return &renderer{
		tmpl: template.Must(template.New("portal").Parse(portalTemplates)),
	}
}

func (r *renderer) Render(out io.Writer, name string, data interface{}, c echo.Context) error {
	return r.tmpl.ExecuteTemplate(out, name, data)
}

const portalTemplates = `
{{define "head"}}
<!DOCTYPE html>
<html>
<head><title>LMS Portal</title></head>
<body>
<nav>
  <a href="/">Home</a>
  <a href="/courses">Courses</a>
  {{if and .Snap .Snap.User}}
    <a href="/profile">Profile</a>
    <form method="post" action="/logout" style="display:inline"><button>Logout</button></form>
  {{else}}
    <a href="/login">Login</a>
    <a href="/register">Register</a>
  {{end}}
</nav>
{{end}}

{{define "foot"}}
</body>
</html>
{{end}}

{{define "home"}}
{{template "head" .}}
<h1>Welcome to the LMS</h1>
{{if .Snap.User}}<p>Logged in as {{.Snap.User.Name}}</p>{{end}}
{{template "foot" .}}
{{end}}

{{define "login"}}
{{template "head" .}}
<h1>Login</h1>
{{range .Messages}}<p class="notice">{{.}}</p>{{end}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login">
  <input type="email" name="email" placeholder="Email" value="{{.Email}}" required>
  <input type="password" name="password" placeholder="Password" required>
  <button type="submit">Login</button>
</form>
<p><a href="/register">Register</a> | <a href="/instructor-register">Register as instructor</a></p>
{{template "foot" .}}
{{end}}

{{define "register"}}
{{template "head" .}}
<h1>{{.Title}}</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="{{.Action}}">
  <input type="text" name="name" placeholder="Name" value="{{.Name}}" required>
  <input type="email" name="email" placeholder="Email" value="{{.Email}}" required>
  <input type="password" name="password" placeholder="Password" required>
  <button type="submit">Register</button>
</form>
{{template "foot" .}}
{{end}}

{{define "loading"}}
<!DOCTYPE html>
<html>
<head>
  <title>LMS Portal</title>
  <meta http-equiv="refresh" content="1">
</head>
<body>
  <p>Loading your session...</p>
</body>
</html>
{{end}}

{{define "page"}}
{{template "head" .}}
<h1>{{.Title}}</h1>
{{template "foot" .}}
{{end}}

{{define "profile"}}
{{template "head" .}}
<h1>Profile</h1>
<ul>
  <li>Name: {{.Snap.User.Name}}</li>
  <li>Email: {{.Snap.User.Email}}</li>
  <li>Role: {{.Snap.User.Role}}</li>
</ul>
{{if .TokenExpiry}}<p>Session valid until {{.TokenExpiry}}</p>{{end}}
{{template "foot" .}}
{{end}}

{{define "denied"}}
<!DOCTYPE html>
<html>
<head><title>Access denied</title></head>
<body>
  <h1>Access denied</h1>
  <p>You don't have permission to view this page.</p>
  <p><a href="/">Back to home</a></p>
</body>
</html>
{{end}}
`
