package core

import "fmt"

// Violation is raised when a closed selector resolves outside its declared set or a
// geometry contract breaks. It is never returned as an error; callers panic with it
// and the process entry point reports it through HandleCrash.
type Violation struct {
	Component string
	Detail    string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Component, v.Detail)
}

// Violate panics with a *Violation
func Violate(component, format string, args ...any) {
	panic(&Violation{Component: component, Detail: fmt.Sprintf(format, args...)})
}

// AsViolation reports whether a recovered value is a contract violation
func AsViolation(r any) (*Violation, bool) {
	v, ok := r.(*Violation)
	return v, ok
}
