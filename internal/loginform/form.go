package loginform

// ErrorLabel is the state of one inline error element.
type ErrorLabel struct {
	ID     string
	Text   string
	Hidden bool
}

// Form holds the visible state of the login form between submit attempts.
// It is not safe for concurrent use.
type Form struct {
	Email    string
	EmailErr ErrorLabel
	PassErr  ErrorLabel
}

// NewForm returns a form with both error labels hidden and empty.
func NewForm() *Form {
	return &Form{
		EmailErr: ErrorLabel{ID: EmailErrorID, Hidden: true},
		PassErr:  ErrorLabel{ID: PasswordErrorID, Hidden: true},
	}
}

// Reset hides both labels. Label text is left as is, matching what a browser
// keeps in a hidden element.
func (f *Form) Reset() {
	f.EmailErr.Hidden = true
	f.PassErr.Hidden = true
}

// Apply reveals the label of every failed check. Labels of passing checks are
// not touched, so callers reset first.
func (f *Form) Apply(r Result) {
	if !r.EmailValid {
		f.EmailErr.Text = MsgEmailRequired
		f.EmailErr.Hidden = false
	}
	if !r.PasswordValid {
		f.PassErr.Text = MsgPasswordRequired
		f.PassErr.Hidden = false
	}
}

// Submit runs one validation pass and reports whether submission proceeds.
func (f *Form) Submit(c Credentials) bool {
	f.Reset()
	f.Email = c.Email
	res := Validate(c)
	f.Apply(res)
	return res.Valid()
}
