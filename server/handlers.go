package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Daskott/kard/models"
	"github.com/Daskott/kard/vcard"
	"github.com/gorilla/mux"
)

type ResponsePayload struct {
	Errors  []string    `json:"errors"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

type contactResponse struct {
	Contact models.Contact `json:"contact"`
	CardURL string         `json:"cardUrl"`
	VCard   string         `json:"vcard"`
}

func (app *kard) router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", health).Methods("GET")

	router.HandleFunc("/", app.homePage).Methods("GET")
	router.Handle("/card", http.RedirectHandler("/", http.StatusFound)).Methods("GET")
	router.HandleFunc("/card/{section}/{sn}", app.cardPage).Methods("GET")
	router.HandleFunc("/card/{section}/{sn}/vcard", app.downloadVCard).Methods("GET")
	router.HandleFunc("/card/{section}/{sn}/qr.png", app.qrImage).Methods("GET")

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(jsonContentTypeMiddleware)
	apiRouter.HandleFunc("/sections", app.listSections).Methods("GET")
	apiRouter.HandleFunc("/contacts", app.listContacts).Methods("GET")
	apiRouter.HandleFunc("/contacts/{section}/{sn}", app.findContact).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(app.notFoundPage)

	return router
}

func health(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Set("Content-Type", "application/json")
	writeResponse(rw, ResponsePayload{Success: true}, http.StatusOK)
}

// ---------------------------------------------------------------------------------//
// Pages
// --------------------------------------------------------------------------------//

func (app *kard) homePage(rw http.ResponseWriter, r *http.Request) {
	dir := app.store.Directory()
	data := homePageData{
		Site:        app.siteView(),
		Title:       app.config.Site.Name,
		Description: app.config.Site.Tagline,
	}

	data.Sections = app.sections(dir)
	if len(data.Sections) == 0 {
		app.renderPage(rw, "home", data, http.StatusOK)
		return
	}

	data.Section = data.Sections[0]
	if section, ok := dir.LookupSection(r.URL.Query().Get("section")); ok {
		data.Section = section
	} else if section, ok := dir.LookupSection(app.config.Site.DefaultSection); ok {
		data.Section = section
	}

	contacts, err := dir.InSection(data.Section)
	if err != nil {
		app.renderError(rw, err)
		return
	}
	data.Contacts = contacts

	// Out of range or malformed indexes fall back to the first employee.
	index, err := strconv.Atoi(r.URL.Query().Get("i"))
	if err != nil || index < 0 || index >= len(contacts) {
		index = 0
	}
	data.Index = index

	card := app.cardView(r, contacts[index])
	data.Card = &card

	app.renderPage(rw, "home", data, http.StatusOK)
}

func (app *kard) cardPage(rw http.ResponseWriter, r *http.Request) {
	contact, err := app.contactFromRequest(r)
	if err != nil {
		app.renderError(rw, err)
		return
	}

	data := cardPageData{
		Site:  app.siteView(),
		Title: contact.Name + " | " + contact.Title + " | " + app.config.Site.Name,
		Description: "Digital visiting card for " + contact.Name + ", " + contact.Title +
			" at " + contact.Company + ".",
		Card: app.cardView(r, contact),
	}

	app.renderPage(rw, "card", data, http.StatusOK)
}

func (app *kard) notFoundPage(rw http.ResponseWriter, r *http.Request) {
	app.renderPage(rw, "not-found", messagePageData{
		Site:    app.siteView(),
		Title:   app.config.Site.Name,
		Message: "Page not found.",
	}, http.StatusNotFound)
}

func (app *kard) renderError(rw http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrContactNotFound) || errors.Is(err, models.ErrUnknownSection) {
		logg.Info(err)
		app.renderPage(rw, "not-found", messagePageData{
			Site:    app.siteView(),
			Title:   app.config.Site.Name,
			Message: "Contact not found.",
		}, http.StatusNotFound)
		return
	}

	logg.Error(err)
	http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// ---------------------------------------------------------------------------------//
// Downloads
// --------------------------------------------------------------------------------//

func (app *kard) downloadVCard(rw http.ResponseWriter, r *http.Request) {
	contact, err := app.contactFromRequest(r)
	if err != nil {
		app.renderError(rw, err)
		return
	}

	rw.Header().Set("Content-Type", vcard.MIMEType)
	rw.Header().Set("Content-Disposition", attachment(vcard.FileName(contact.Name)))
	rw.WriteHeader(http.StatusOK)
	rw.Write([]byte(contact.VCard()))
}

func (app *kard) qrImage(rw http.ResponseWriter, r *http.Request) {
	contact, err := app.contactFromRequest(r)
	if err != nil {
		app.renderError(rw, err)
		return
	}

	payload := vcard.Payload(
		vcard.PayloadMode(app.config.Kard.QR.Mode),
		contact.Card(),
		app.baseURL(r)+cardPath(contact),
	)

	pngData, err := vcard.QRPNG(payload, vcard.QROptions{Size: app.config.Kard.QR.Size, Logo: app.logo})
	if err != nil {
		app.renderError(rw, err)
		return
	}

	rw.Header().Set("Content-Type", "image/png")
	rw.Header().Set("Cache-Control", "no-cache")
	if r.URL.Query().Get("download") == "1" {
		rw.Header().Set("Content-Disposition", attachment(vcard.QRFileName(contact.Name, contact.Section)))
	}
	rw.WriteHeader(http.StatusOK)
	rw.Write(pngData)
}

// ---------------------------------------------------------------------------------//
// API
// --------------------------------------------------------------------------------//

func (app *kard) listSections(rw http.ResponseWriter, r *http.Request) {
	writeResponse(rw, ResponsePayload{Success: true, Data: app.sections(app.store.Directory())}, http.StatusOK)
}

func (app *kard) listContacts(rw http.ResponseWriter, r *http.Request) {
	dir := app.store.Directory()

	section := r.URL.Query().Get("section")
	if section == "" {
		writeResponse(rw, ResponsePayload{Success: true, Data: dir.All()}, http.StatusOK)
		return
	}

	contacts, err := dir.InSection(section)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusNotFound)
		return
	}

	writeResponse(rw, ResponsePayload{Success: true, Data: contacts}, http.StatusOK)
}

func (app *kard) findContact(rw http.ResponseWriter, r *http.Request) {
	contact, err := app.contactFromRequest(r)
	if errors.Is(err, models.ErrContactNotFound) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusNotFound)
		return
	}

	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	writeResponse(rw, ResponsePayload{
		Success: true,
		Data: contactResponse{
			Contact: contact,
			CardURL: app.baseURL(r) + cardPath(contact),
			VCard:   contact.VCard(),
		},
	}, http.StatusOK)
}

// sections lists the sections offered on the home page: the configured ones
// that have contacts, or every section of the dataset when none are configured.
func (app *kard) sections(dir *models.Directory) []string {
	if len(app.config.Site.Sections) == 0 {
		return dir.Sections()
	}

	sections := []string{}
	for _, section := range app.config.Site.Sections {
		if name, ok := dir.LookupSection(section); ok {
			sections = append(sections, name)
		}
	}

	return sections
}
