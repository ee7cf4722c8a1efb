package server

import (
	"encoding/json"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/Daskott/kard/models"
	"github.com/Daskott/kard/vcard"
	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
)

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func writeResponse(rw http.ResponseWriter, payLoad ResponsePayload, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		logg.Error(payLoad.Errors)
	} else if statusCode >= http.StatusBadRequest {
		logg.Info(payLoad.Errors)
	}

	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(payLoad)
}

// contactFromRequest looks up the contact addressed by the {section} and {sn}
// route variables.
func (app *kard) contactFromRequest(r *http.Request) (models.Contact, error) {
	vars := mux.Vars(r)
	return app.store.Directory().Find(vars["section"], vars["sn"])
}

// baseURL is the origin used in links that leave the site, such as the
// deep link inside a QR code. The configured base URL wins over the
// request's own origin.
func (app *kard) baseURL(r *http.Request) string {
	if app.config.Kard.BaseURL != "" {
		return strings.TrimRight(app.config.Kard.BaseURL, "/")
	}

	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}

	return scheme + "://" + r.Host
}

func cardPath(contact models.Contact) string {
	return "/card/" + url.PathEscape(contact.Section) + "/" + url.PathEscape(contact.SN)
}

func attachment(fileName string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": fileName})
}

func RegisterValidators(validate *validator.Validate) error {
	err := validate.RegisterValidation("qr_mode", func(fl validator.FieldLevel) bool {
		return vcard.PayloadMode(fl.Field().String()).Valid()
	})
	if err != nil {
		return err
	}

	// host accepts a bare host name with an optional port, e.g. "cards.example.com:8443"
	err = validate.RegisterValidation("host", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if strings.ContainsAny(value, "/ ") {
			return false
		}

		host := value
		if strings.Contains(value, ":") {
			var err error
			if host, _, err = net.SplitHostPort(value); err != nil {
				return false
			}
		}

		return validate.Var(host, "hostname_rfc1123") == nil || net.ParseIP(host) != nil
	})
	if err != nil {
		return err
	}

	return nil
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Kard server is listening on port%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
