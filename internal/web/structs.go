package web

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"
)

var nicknameRegexp = regexp.MustCompile(`^[A-Za-z]\w+$`)
var scaleRegexp = regexp.MustCompile(`^\d+/\d+$`)

type signupRequest struct {
	nickname string
	password string
	fullName string
}

func parseSignupRequest(ctx *fiber.Ctx) (signupRequest, error) {
	var err error
	nickname := ctx.FormValue("nickname", "")
	err = errors.Join(err, validateNickname(nickname))
	password := ctx.FormValue("password", "")
	err = errors.Join(err, validatePassword(password))
	passwordRepeat := ctx.FormValue("password-repeat", "")
	if passwordRepeat != password {
		err = errors.Join(err, errors.New("password confirmation doesn't match"))
	}
	if err != nil {
		return signupRequest{}, err
	}
	return signupRequest{
		nickname: nickname,
		password: password,
		fullName: ctx.FormValue("full_name", ""),
	}, nil
}

type signInRequest struct {
	nickname string
	password string
}

func parseSignInRequest(ctx *fiber.Ctx) (req signInRequest, err error) {
	nickname := ctx.FormValue("nickname", "")
	err = errors.Join(err, validateNickname(nickname))
	password := ctx.FormValue("password", "")
	err = errors.Join(err, validatePassword(password))
	if err != nil {
		return signInRequest{}, err
	}
	return signInRequest{
		nickname: nickname,
		password: password,
	}, nil
}

type newKitRequest struct {
	name  string
	brand string
	scale string
}

func parseNewKitRequest(ctx *fiber.Ctx) (newKitRequest, error) {
	var err error
	name := ctx.FormValue("name", "")
	if name == "" {
		err = errors.Join(err, errors.New("kit name must not be empty"))
	}
	scale := ctx.FormValue("scale", "")
	if !scaleRegexp.MatchString(scale) {
		err = errors.Join(err, errors.New("scale must look like 1/144"))
	}
	if err != nil {
		return newKitRequest{}, err
	}
	return newKitRequest{
		name:  name,
		brand: ctx.FormValue("brand", ""),
		scale: scale,
	}, nil
}

func validatePassword(password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	return nil
}

func validateNickname(nickname string) error {
	var err error
	if nickname == "" {
		err = errors.Join(err, errors.New("nickname must not be empty"))
	}
	if !nicknameRegexp.MatchString(nickname) {
		err = errors.Join(err, errors.New("nickname must start with a latin letter and contain only latin letters, digits and underscores"))
	}
	return err
}
