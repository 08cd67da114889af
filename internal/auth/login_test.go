package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const loginForm = `
<html><body>
<form method="post" action="/login">
	<input type="hidden" name="csrf_token" value="tok-123">
	<input type="hidden" name="redirect" value="/conta">
	<input type="text" name="email">
	<input type="password" name="senha">
</form>
</body></html>
`

// loginServer fakes the storefront login flow: GET shows the form, a valid
// POST sets a session cookie, and the page shows the account area once the
// cookie is present.
func loginServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/entrar", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil && c.Value == "ok" {
			fmt.Fprint(w, `<html><body><a href="/conta">Minha Conta</a></body></html>`)
			return
		}
		fmt.Fprint(w, loginForm)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if r.PostFormValue("csrf_token") != "tok-123" {
			http.Error(w, "missing token", http.StatusForbidden)
			return
		}
		if r.PostFormValue("email") != "user@wyzinc.pt" || r.PostFormValue("senha") != "s3cret" {
			http.Error(w, "bad credentials", http.StatusForbidden)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "ok", Path: "/"})
		http.Redirect(w, r, "/entrar", http.StatusFound)
	})
	return httptest.NewServer(mux)
}

func jarClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func options(base string) Options {
	return Options{
		LoginPage:      base + "/entrar",
		PostURL:        base + "/login",
		UserField:      "email",
		PassField:      "senha",
		SuccessMarkers: []string{"minha conta", "logout", "sair"},
	}
}

func TestLoginConfirmed(t *testing.T) {
	srv := loginServer(t)
	defer srv.Close()

	creds := Credentials{Username: "user@wyzinc.pt", Password: "s3cret"}
	verdict, err := Login(context.Background(), jarClient(t), options(srv.URL), creds)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if verdict != Confirmed {
		t.Errorf("verdict = %s, want confirmed", verdict)
	}
}

func TestLoginFailedOnRejectedPost(t *testing.T) {
	srv := loginServer(t)
	defer srv.Close()

	creds := Credentials{Username: "user@wyzinc.pt", Password: "wrong"}
	verdict, err := Login(context.Background(), jarClient(t), options(srv.URL), creds)
	if err == nil {
		t.Fatal("expected error for rejected credentials")
	}
	if verdict != Failed {
		t.Errorf("verdict = %s, want failed", verdict)
	}
}

func TestLoginUnconfirmedWithoutMarkers(t *testing.T) {
	// A storefront that accepts the POST but never shows a marker string.
	mux := http.NewServeMux()
	mux.HandleFunc("/entrar", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, loginForm)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := Credentials{Username: "u", Password: "p"}
	verdict, err := Login(context.Background(), jarClient(t), options(srv.URL), creds)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if verdict != Unconfirmed {
		t.Errorf("verdict = %s, want unconfirmed", verdict)
	}
}

func TestHiddenInputs(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(loginForm))
	if err != nil {
		t.Fatal(err)
	}
	form := hiddenInputs(doc)
	if form.Get("csrf_token") != "tok-123" {
		t.Errorf("csrf_token = %q, want tok-123", form.Get("csrf_token"))
	}
	if form.Get("redirect") != "/conta" {
		t.Errorf("redirect = %q, want /conta", form.Get("redirect"))
	}
	if _, ok := form["email"]; ok {
		t.Error("visible inputs must not be harvested")
	}
}
