package mux

import (
	appconfig "colorclash-server/internal/config"
	"time"

	grecaptcha "github.com/ezzarghili/recaptcha-go"
	"github.com/sirupsen/logrus"
)

type recaptcha interface {
	// Verify will verify the token is valid
	Verify(token string) error
}

// noRecaptcha accepts every token, it is used when no secret is configured
type noRecaptcha struct{}

func (noRecaptcha) Verify(string) error {
	return nil
}

func newRecaptcha() recaptcha {
	secret := appconfig.Instance().RecaptchaSecret
	if secret == "" {
		logrus.Warn("no recaptcha secret configured, registrations are not verified")
		return noRecaptcha{}
	}

	captcha, err := grecaptcha.NewReCAPTCHA(secret, grecaptcha.V3, 10*time.Second)
	if err != nil {
		logrus.WithError(err).Fatal("could not load recaptcha")
	}

	return &captcha
}
