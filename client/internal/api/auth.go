package api

import (
	"context"
	"net/http"

	clienterrors "github.com/bradenpeterson/JournalApp/client/internal/errors"
	"github.com/bradenpeterson/JournalApp/client/internal/request"
	"github.com/bradenpeterson/JournalApp/client/internal/types"
)

// PrimeCSRF asks the backend to issue a csrftoken cookie and returns the
// token it reports in the body ("" if the body had none).
func PrimeCSRF(ctx context.Context, rq Requester) (string, error) {
	var out types.CSRFResponse
	if err := call(ctx, rq, "prime csrf", csrfPath, request.Options{}, &out); err != nil {
		return "", err
	}
	return out.CSRFToken, nil
}

// SignIn primes CSRF and posts the credentials as a form. On success the
// backend sets the session cookie on the caller's jar.
func SignIn(ctx context.Context, rq Requester, creds types.Credentials) error {
	if err := types.ValidateCredentials(creds); err != nil {
		return err
	}
	return postForm(ctx, rq, "sign in", signInPath, map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	})
}

// SignUp primes CSRF and posts the registration form.
func SignUp(ctx context.Context, rq Requester, in types.SignUpInput) error {
	if err := types.ValidateSignUp(in); err != nil {
		return err
	}
	return postForm(ctx, rq, "sign up", signUpPath, map[string]string{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      in.Email,
		"password":   in.Password,
	})
}

// Logout ends the server session.
func Logout(ctx context.Context, rq Requester) error {
	return call(ctx, rq, "logout", logoutPath, request.Options{Method: http.MethodPost}, nil)
}

// Probe reports whether the current session can read a protected
// resource. 401 and 403 mean "not signed in" and are not errors.
func Probe(ctx context.Context, rq Requester) (bool, error) {
	err := call(ctx, rq, "probe", entriesPath, request.Options{Params: map[string]any{"page": 1}}, nil)
	if err == nil {
		return true, nil
	}
	if clienterrors.IsUnauthenticated(err) {
		return false, nil
	}
	return false, err
}

func postForm(ctx context.Context, rq Requester, op, path string, fields map[string]string) error {
	token, err := PrimeCSRF(ctx, rq)
	if err != nil {
		return err
	}
	body, err := request.NewMultipart(fields)
	if err != nil {
		return err
	}
	opts := request.Options{Method: http.MethodPost, Body: body}
	if token != "" {
		opts.Header = http.Header{request.CSRFHeader: {token}}
	}
	return call(ctx, rq, op, path, opts, nil)
}
