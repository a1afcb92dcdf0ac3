package loginform_test

import (
	"testing"

	"github.com/nfrund/cyberwatch/internal/loginform"
	"github.com/stretchr/testify/assert"
)

func submit(f *loginform.Form, email, password string) bool {
	return f.Submit(loginform.Credentials{Email: email, Password: password})
}

func TestForm_Submit(t *testing.T) {
	t.Run("blank email blocks and shows email label", func(t *testing.T) {
		f := loginform.NewForm()

		proceed := submit(f, " ", "x")

		assert.False(t, proceed)
		assert.False(t, f.EmailErr.Hidden)
		assert.Equal(t, "Email requerido", f.EmailErr.Text)
		assert.True(t, f.PassErr.Hidden)
	})

	t.Run("empty password blocks and shows password label", func(t *testing.T) {
		f := loginform.NewForm()

		proceed := submit(f, "a@b.com", "")

		assert.False(t, proceed)
		assert.True(t, f.EmailErr.Hidden)
		assert.False(t, f.PassErr.Hidden)
		assert.Equal(t, "Contraseña requerida", f.PassErr.Text)
	})

	t.Run("valid input proceeds with no labels", func(t *testing.T) {
		f := loginform.NewForm()

		proceed := submit(f, "a@b.com", "secret")

		assert.True(t, proceed)
		assert.True(t, f.EmailErr.Hidden)
		assert.True(t, f.PassErr.Hidden)
	})

	t.Run("both empty shows both labels", func(t *testing.T) {
		f := loginform.NewForm()

		proceed := submit(f, "", "")

		assert.False(t, proceed)
		assert.False(t, f.EmailErr.Hidden)
		assert.False(t, f.PassErr.Hidden)
		assert.Equal(t, loginform.MsgEmailRequired, f.EmailErr.Text)
		assert.Equal(t, loginform.MsgPasswordRequired, f.PassErr.Text)
	})

	t.Run("valid attempt after invalid one clears stale labels", func(t *testing.T) {
		f := loginform.NewForm()

		assert.False(t, submit(f, "", ""))
		assert.True(t, submit(f, "a@b.com", "secret"))

		assert.True(t, f.EmailErr.Hidden)
		assert.True(t, f.PassErr.Hidden)
	})

	t.Run("each attempt reflects only its own input", func(t *testing.T) {
		f := loginform.NewForm()

		submit(f, "", "secret")
		submit(f, "a@b.com", "")

		assert.True(t, f.EmailErr.Hidden)
		assert.False(t, f.PassErr.Hidden)
	})
}

func TestNewForm_LabelIDs(t *testing.T) {
	f := loginform.NewForm()

	assert.Equal(t, "email-error", f.EmailErr.ID)
	assert.Equal(t, "password-error", f.PassErr.ID)
	assert.True(t, f.EmailErr.Hidden)
	assert.True(t, f.PassErr.Hidden)
}
