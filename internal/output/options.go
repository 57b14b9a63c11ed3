package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Structured output file types
const (
	TypeCSV  = "csv"
	TypeTXT  = "txt"
	TypeJSON = "json"
)

// Options controls where a ranked result set is written
type Options struct {
	Console bool   // Print display names, one per line
	Rename  bool   // Rename each file to its display name
	Type    string `validate:"required_with=File,omitempty,oneof=csv txt json"`
	File    string `validate:"required_with=Type"`
}

// Normalize lower-cases the output type
func (o *Options) Normalize() {
	o.Type = strings.ToLower(strings.TrimSpace(o.Type))
}

// Validate validates the Options using the validator.
func (o *Options) Validate() error {
	validate := validator.New()
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &OutputError{Message: "invalid output options", Cause: err}
	}

	fe := fieldErrs[0]
	switch {
	case fe.Field() == "Type" && fe.Tag() == "oneof":
		return &OutputError{Message: fmt.Sprintf("unsupported output type %q (valid types: csv, txt, json)", o.Type)}
	case fe.Field() == "Type" && fe.Tag() == "required_with":
		return &OutputError{Message: "output file must be used in conjunction with output type"}
	case fe.Field() == "File" && fe.Tag() == "required_with":
		return &OutputError{Message: "output type must be used in conjunction with output file"}
	}
	return &OutputError{Message: fmt.Sprintf("invalid output option %s (%s)", fe.Field(), fe.Tag())}
}

// Structured reports whether a structured output file was requested
func (o *Options) Structured() bool {
	return o.Type != "" && o.File != ""
}
