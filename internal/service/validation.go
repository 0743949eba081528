package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailLocalPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+$`)
	idnaProfile       = idna.Lookup
)

const defaultPhoneRegion = "TW"

// Validator normalizes caller-supplied contact and location input.
type Validator struct {
	PhoneRegion string
}

// NewValidator builds a validator with the given default phone region.
func NewValidator(phoneRegion string) *Validator {
	region := strings.ToUpper(strings.TrimSpace(phoneRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &Validator{PhoneRegion: region}
}

// NormalizeEmail lowercases the address, validates the local part and runs
// the domain through IDNA so internationalized domains are stored in ASCII form.
func (v *Validator) NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", errors.New("invalid email address")
	}

	local, domain := email[:at], email[at+1:]
	if !emailLocalPattern.MatchString(local) {
		return "", errors.New("invalid email address")
	}

	ascii, err := idnaProfile.ToASCII(domain)
	if err != nil || !strings.Contains(ascii, ".") {
		return "", errors.New("invalid email domain")
	}

	return local + "@" + ascii, nil
}

// NormalizePhone parses the number against the default region and formats it
// as E.164. An empty input is allowed and returns an empty string.
func (v *Validator) NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	number, err := phonenumbers.Parse(raw, v.PhoneRegion)
	if err != nil {
		return "", fmt.Errorf("parse phone number: %w", err)
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return "", errors.New("invalid phone number")
	}

	return phonenumbers.Format(number, phonenumbers.E164), nil
}

// ValidateCoordinate checks that a latitude/longitude pair is on the globe.
func ValidateCoordinate(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return fmt.Errorf("latitude out of range: %f", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return fmt.Errorf("longitude out of range: %f", longitude)
	}
	return nil
}
