package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/Daskott/kard/models"
	"github.com/Daskott/kard/vcard"
)

type siteView struct {
	Name              string
	Tagline           string
	CompanyInfo       string
	CompanyWebsite    string
	CompanyProfilePdf string
}

type cardView struct {
	models.Contact
	CardURL        string
	VCardPath      string
	QRPath         string
	QRDownloadPath string
}

type homePageData struct {
	Site        siteView
	Title       string
	Description string
	Sections    []string
	Section     string
	Contacts    []models.Contact
	Index       int
	Card        *cardView
}

type cardPageData struct {
	Site        siteView
	Title       string
	Description string
	Card        cardView
}

type messagePageData struct {
	Site        siteView
	Title       string
	Description string
	Message     string
}

var pageTemplates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"dial": vcard.NormalizePhone,
}).Parse(pagesHTML))

func (app *kard) siteView() siteView {
	site := app.config.Site
	return siteView{
		Name:              site.Name,
		Tagline:           site.Tagline,
		CompanyInfo:       site.CompanyInfo,
		CompanyWebsite:    site.CompanyWebsite,
		CompanyProfilePdf: site.CompanyProfilePdf,
	}
}

func (app *kard) cardView(r *http.Request, contact models.Contact) cardView {
	path := cardPath(contact)
	return cardView{
		Contact:        contact,
		CardURL:        app.baseURL(r) + path,
		VCardPath:      path + "/vcard",
		QRPath:         path + "/qr.png",
		QRDownloadPath: path + "/qr.png?download=1",
	}
}

// renderPage executes the named page fully before writing, so a template
// failure never leaves a half written page behind a 200.
func (app *kard) renderPage(rw http.ResponseWriter, name string, data interface{}, statusCode int) {
	var buf bytes.Buffer
	if err := app.pages.ExecuteTemplate(&buf, name, data); err != nil {
		logg.Errorf("render %v page: %v", name, err)
		http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(statusCode)
	buf.WriteTo(rw)
}

const pagesHTML = `
{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{with .Description}}<meta name="description" content="{{.}}">{{end}}
<style>
body{margin:0;font-family:system-ui,sans-serif;background:#f8fafc;color:#020617}
main{max-width:28rem;margin:0 auto;padding:1.5rem}
.card{background:#fff;border-radius:1rem;padding:1.5rem;box-shadow:0 1px 3px rgba(2,6,23,.15)}
.card h1{margin:0;font-size:1.4rem}.card .title{margin:.25rem 0 1rem;color:#475569}
.card dl{margin:0}.card dt{font-size:.75rem;color:#64748b;text-transform:uppercase}
.card dd{margin:0 0 .75rem}.actions a{display:inline-block;margin:.5rem .5rem 0 0}
.qr{display:block;margin:1rem auto}
footer{font-size:.85rem;color:#475569;margin-top:1.5rem}
</style>
</head>
<body>
<main>
<header><strong>{{.Site.Name}}</strong>{{with .Site.Tagline}}<p>{{.}}</p>{{end}}</header>
{{end}}

{{define "footer"}}
<footer>
{{with .Site.CompanyInfo}}<p>{{.}}</p>{{end}}
{{with .Site.CompanyWebsite}}<p><a href="{{.}}" rel="noopener">{{.}}</a></p>{{end}}
{{with .Site.CompanyProfilePdf}}<p><a href="{{.}}" rel="noopener">Company profile (PDF)</a></p>{{end}}
</footer>
</main>
</body>
</html>
{{end}}

{{define "contact-card"}}
<article class="card">
<h1>{{.Name}}</h1>
{{with .NameArabic}}<p lang="ar" dir="rtl">{{.}}</p>{{end}}
<p class="title">{{.Title}}{{with .Company}} · {{.}}{{end}}</p>
{{with .TitleArabic}}<p lang="ar" dir="rtl">{{.}}</p>{{end}}
<dl>
{{with .PhonePrimary}}<dt>Phone</dt><dd><a href="tel:{{dial .}}">{{.}}</a></dd>{{end}}
{{with .PhoneSecondary}}<dt>Telephone</dt><dd><a href="tel:{{dial .}}">{{.}}</a></dd>{{end}}
{{if .HasEmail}}<dt>Email</dt><dd><a href="mailto:{{.Email}}">{{.Email}}</a></dd>{{end}}
{{with .Location}}<dt>Address</dt><dd>{{.}}</dd>{{end}}
</dl>
<img class="qr" src="{{.QRPath}}" alt="QR code for {{.Name}}" width="176" height="176">
<div class="actions">
<a href="{{.VCardPath}}">Add to contacts</a>
<a href="{{.QRDownloadPath}}">Download QR as image</a>
</div>
</article>
{{end}}

{{define "home"}}{{template "header" .}}
{{if .Sections}}
<form method="get" action="/" class="section-picker">
<label>Section
<select name="section">
{{range .Sections}}<option value="{{.}}"{{if eq . $.Section}} selected{{end}}>{{.}}</option>
{{end}}</select>
</label>
<button type="submit">Show section</button>
</form>
<form method="get" action="/" class="employee-picker">
<input type="hidden" name="section" value="{{.Section}}">
<label>Employee
<select name="i">
{{range $i, $c := .Contacts}}<option value="{{$i}}"{{if eq $i $.Index}} selected{{end}}>{{$c.Name}}</option>
{{end}}</select>
</label>
<button type="submit">Show card</button>
</form>
{{with .Card}}{{template "contact-card" .}}
<p><a href="{{.CardURL}}">{{.CardURL}}</a></p>{{end}}
{{else}}
<p>No contacts available.</p>
{{end}}
{{template "footer" .}}{{end}}

{{define "card"}}{{template "header" .}}
{{template "contact-card" .Card}}
{{template "footer" .}}{{end}}

{{define "not-found"}}{{template "header" .}}
<article class="card"><h1>{{.Message}}</h1><p><a href="/">Back to home</a></p></article>
{{template "footer" .}}{{end}}
`
