package signup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"
)

const (
	// HomeRoute is where a newly registered captain is sent.
	HomeRoute = "/captain-home"

	// DefaultRedirectDelay is how long the success notification stays before navigating.
	DefaultRedirectDelay = time.Second

	// SuccessMessage is shown once a registration is accepted.
	SuccessMessage = "Registration successful! Redirecting to home..."
	// FailureMessage is shown for any rejected or failed registration.
	FailureMessage = "Registration failed. Please check your details."
)

// Registrar submits a registration. *Client satisfies it.
type Registrar interface {
	Register(ctx context.Context, payload Payload) (*RegisterResponse, error)
}

// CaptainSetter receives the registered captain. *CaptainState satisfies it.
type CaptainSetter interface {
	SetCaptain(c Captain)
}

// Notifier shows short status messages to the person filling in the form.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator moves the application to another view.
type Navigator interface {
	Navigate(route string)
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// WriterNotifier prints notifications as lines on W.
type WriterNotifier struct {
	W io.Writer
}

// Success implements Notifier.
func (n WriterNotifier) Success(msg string) {
	fmt.Fprintf(n.W, "success: %s\n", msg)
}

// Error implements Notifier.
func (n WriterNotifier) Error(msg string) {
	fmt.Fprintf(n.W, "error: %s\n", msg)
}

// Deps are the collaborators of a Page.
type Deps struct {
	Registrar Registrar
	Tokens    TokenStore
	Captains  CaptainSetter
	Notifier  Notifier
	Navigator Navigator

	// Scheduler defaults to TimerScheduler and RedirectDelay to DefaultRedirectDelay.
	Scheduler     Scheduler
	RedirectDelay time.Duration
}

// Page is the captain signup page: a Form plus what happens on submit.
type Page struct {
	form          *Form
	registrar     Registrar
	tokens        TokenStore
	captains      CaptainSetter
	notifier      Notifier
	navigator     Navigator
	scheduler     Scheduler
	redirectDelay time.Duration
}

// NewPage creates a Page with an empty form.
func NewPage(deps Deps) *Page {
	if deps.Scheduler == nil {
		deps.Scheduler = TimerScheduler{}
	}
	if deps.RedirectDelay <= 0 {
		deps.RedirectDelay = DefaultRedirectDelay
	}
	return &Page{
		form:          &Form{},
		registrar:     deps.Registrar,
		tokens:        deps.Tokens,
		captains:      deps.Captains,
		notifier:      deps.Notifier,
		navigator:     deps.Navigator,
		scheduler:     deps.Scheduler,
		redirectDelay: deps.RedirectDelay,
	}
}

// Form returns the page's form.
func (p *Page) Form() *Form {
	return p.form
}

// Submit sends the form as it is, without client-side checks, and applies the outcome.
//
// On success the token is stored, the captain is published, a success
// notification is shown, navigation to HomeRoute is scheduled and the
// inputs are cleared. On failure the server message becomes the form's
// error state, a failure notification is shown and the inputs are kept.
func (p *Page) Submit(ctx context.Context) error {
	p.form.setErrors(FormErrors{})

	resp, err := p.registrar.Register(ctx, p.form.Payload())
	if err == nil {
		err = p.tokens.Set(TokenKey, resp.Token)
		if err != nil {
			err = fmt.Errorf("failed to store token: %w", err)
		}
	}
	if err != nil {
		p.fail(err)
		return err
	}

	p.captains.SetCaptain(resp.Captain)
	p.notifier.Success(SuccessMessage)
	p.scheduler.AfterFunc(p.redirectDelay, func() {
		p.navigator.Navigate(HomeRoute)
	})
	p.form.Reset()
	return nil
}

func (p *Page) fail(err error) {
	log.Printf("captain registration failed: %v", err)

	var regErr *RegistrationError
	if errors.As(err, &regErr) {
		p.form.setErrors(FormErrors{Message: regErr.Message, Fields: regErr.Fields})
	} else {
		p.form.setErrors(FormErrors{})
	}
	p.notifier.Error(FailureMessage)
}
