package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a YYYY-MM-DD flag. The zero value means "not set".
type dateValue struct {
	t   time.Time
	set bool
}

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) Set(s string) error {
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	d.t, d.set = t, true
	return nil
}

func (d *dateValue) String() string {
	if !d.set {
		return ""
	}
	return domain.FormatDate(d.t)
}

func (d *dateValue) Type() string { return "date" }

// ptr returns nil when the flag was not given.
func (d *dateValue) ptr() *time.Time {
	if !d.set {
		return nil
	}
	t := d.t
	return &t
}

func (d *dateValue) or(def time.Time) time.Time {
	if !d.set {
		return def
	}
	return d.t
}

// optionalFloat wraps a float flag so an omitted flag stays nil in a patch.
func optionalFloat(flags *pflag.FlagSet, name string) *float64 {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetFloat64(name)
	if err != nil {
		return nil
	}
	return &v
}

// DescribeError renders err for the terminal, leading with its kind and
// stable code when it carries them.
func DescribeError(err error) string {
	var de *domain.Error
	if !errors.As(err, &de) {
		return err.Error()
	}
	kind := "error"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		kind = "not found"
	case errors.Is(err, domain.ErrValidation):
		kind = "invalid"
	case errors.Is(err, domain.ErrVersionConflict):
		kind = "conflict"
	}
	return fmt.Sprintf("%s [%s]: %s", kind, de.Code, de.Message)
}
