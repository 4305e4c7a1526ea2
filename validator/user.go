package validator // import "github.com/seowoojae/shelfd/validator"

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/seowoojae/shelfd/model"
	"github.com/seowoojae/shelfd/store"
	"github.com/seowoojae/shelfd/util"
)

var usernameMatcher = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{1,31}$`)

func ValidateSignupRequest(s *store.Store, signup *model.UserSignupRequest) error {
	if signup == nil {
		return errors.New("signup request is nil")
	}
	if signup.Username == "" {
		return errors.New("username is empty")
	}
	if !usernameMatcher.MatchString(signup.Username) {
		return errors.New("username is invalid")
	}
	if signup.Email != "" && !util.ValidateEmail(signup.Email) {
		return errors.New("email is invalid")
	}
	if err := validatePassword(signup.Password); err != nil {
		return err
	}
	if existing, _ := s.GetUser(&model.FindUser{Username: &signup.Username}); existing != nil {
		return errors.New("username already exists")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password is too short")
	}
	return nil
}
