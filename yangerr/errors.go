package yangerr

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
)

// Class represents the categories of instance-data errors
type Class int

const (
	// ClassStructural covers missing/invalid namespaces, unresolvable
	// schema nodes, malformed edit directives and internal invariant
	// violations. Always fatal to the enclosing parse or encode call.
	ClassStructural Class = iota
	// ClassValue covers text which does not decode under any candidate
	// type, including an exhausted union member search.
	ClassValue
	// ClassReference covers missing leafref or instance-identifier
	// targets, immediately or after deferred end-of-document resolution.
	ClassReference
)

func (c Class) String() string {
	switch c {
	case ClassStructural:
		return "structural"
	case ClassValue:
		return "value"
	case ClassReference:
		return "reference"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

func (c *Class) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "structural":
		*c = ClassStructural
	case "value":
		*c = ClassValue
	case "reference":
		*c = ClassReference
	default:
		return errors.New("unknown value")
	}
	return nil
}

func (c Class) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Severity represents the error-severity enumerate
type Severity int

const (
	// SeverityError indicates "error" level
	SeverityError Severity = iota
	// SeverityWarning indicates "warning" level, used for advisory
	// conditions such as dropped attributes.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Severity) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return errors.New("unknown value")
	}
	return nil
}

// Error represents an instance-data processing error.
//
// Errors marshal as NETCONF <rpc-error> elements, the frame YANG data
// errors are reported in on the wire. XMLName must be set prior to
// calls to xml.Marshal when a different frame is required.
type Error struct {
	XMLName  xml.Name  `xml:"urn:ietf:params:xml:ns:netconf:base:1.0 rpc-error" json:"-"`
	Class    Class     `xml:"-" json:"-"`
	Tag      string    `xml:"error-tag" json:"error-tag"`
	Severity Severity  `xml:"error-severity" json:"error-severity"`
	Path     string    `xml:"error-path,omitempty" json:"error-path,omitempty"`
	Message  string    `xml:"error-message,omitempty" json:"error-message,omitempty"`
	Info     *errorInfo `xml:"error-info,omitempty" json:"error-info,omitempty"`
}

type errorInfo struct {
	BadAttribute string `xml:"bad-attribute,omitempty" json:"bad-attribute,omitempty"`
	BadElement   string `xml:"bad-element,omitempty" json:"bad-element,omitempty"`
	BadNamespace string `xml:"bad-namespace,omitempty" json:"bad-namespace,omitempty"`
	BadValue     string `xml:"bad-value,omitempty" json:"bad-value,omitempty"`
}

func (e Error) Error() string {
	s := fmt.Sprintf("%s error tag:%s", e.Class, e.Tag)
	if e.Path != "" {
		s += " path:" + e.Path
	}
	if info := e.Info; info != nil {
		if info.BadAttribute != "" {
			s += " bad-attribute:" + info.BadAttribute
		}
		if info.BadElement != "" {
			s += " bad-element:" + info.BadElement
		}
		if info.BadNamespace != "" {
			s += " bad-namespace:" + info.BadNamespace
		}
		if info.BadValue != "" {
			s += " bad-value:" + info.BadValue
		}
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

// MissingNamespace reports an encoded element carrying no resolvable
// namespace.
func MissingNamespace(elementName string, opts ...Option) *Error {
	e := &Error{
		Tag:  "unknown-namespace",
		Info: &errorInfo{BadElement: elementName},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// UnknownElement reports an element whose namespace belongs to a loaded
// module but which matches no schema node in scope.
func UnknownElement(elementName string, opts ...Option) *Error {
	e := &Error{
		Tag:  "unknown-element",
		Info: &errorInfo{BadElement: elementName},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// UnknownNamespace reports a namespace not matching any loaded module.
func UnknownNamespace(elementName, namespace string, opts ...Option) *Error {
	e := &Error{
		Tag:  "unknown-namespace",
		Info: &errorInfo{BadElement: elementName, BadNamespace: namespace},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MissingAttribute reports a required companion attribute which was not
// present, such as a "value" anchor for an insert="before" directive.
func MissingAttribute(attributeName, elementName string, opts ...Option) *Error {
	e := &Error{
		Tag:  "missing-attribute",
		Info: &errorInfo{BadAttribute: attributeName, BadElement: elementName},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BadAttribute reports an attribute which is not permitted on its
// element, such as an insert directive on a non-reorderable target.
func BadAttribute(attributeName, elementName string, opts ...Option) *Error {
	e := &Error{
		Tag:  "bad-attribute",
		Info: &errorInfo{BadAttribute: attributeName, BadElement: elementName},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TooMany reports more instances of an attribute than are permitted.
func TooMany(what, elementName string, opts ...Option) *Error {
	e := &Error{
		Tag:     "bad-attribute",
		Message: fmt.Sprintf("too many %s in %s", what, elementName),
		Info:    &errorInfo{BadElement: elementName},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BadArgument reports an unacceptable attribute value, such as an
// unknown insert directive argument.
func BadArgument(argument, attributeName string, opts ...Option) *Error {
	e := &Error{
		Tag:  "bad-attribute",
		Info: &errorInfo{BadAttribute: attributeName, BadValue: argument},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// InvalidValue reports leaf text which decoded under no candidate type.
func InvalidValue(value, elementName string, opts ...Option) *Error {
	e := &Error{
		Class: ClassValue,
		Tag:   "invalid-value",
		Info:  &errorInfo{BadElement: elementName, BadValue: value},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// UnresolvedReference reports a leafref or instance-identifier whose
// target is absent from the document.
func UnresolvedReference(value, elementName string, opts ...Option) *Error {
	e := &Error{
		Class: ClassReference,
		Tag:   "data-missing",
		Info:  &errorInfo{BadElement: elementName, BadValue: value},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Internal reports an internal invariant violation, such as an
// unexpected schema nodetype.
func Internal(opts ...Option) *Error {
	e := &Error{
		Tag:     "operation-failed",
		Message: "internal error",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
