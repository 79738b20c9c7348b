package codec

import "fmt"

// MalformedLevelError is returned when a document cannot be decoded into a level.
type MalformedLevelError struct {
	Reason string
	// Tag and Attr locate the offending element and attribute when known.
	Tag  string
	Attr string
	Err  error
}

func (e *MalformedLevelError) Error() string {
	msg := "codec: malformed level: " + e.Reason
	switch {
	case e.Tag != "" && e.Attr != "":
		msg += fmt.Sprintf(" (<%s %s>)", e.Tag, e.Attr)
	case e.Tag != "":
		msg += fmt.Sprintf(" (<%s>)", e.Tag)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedLevelError) Unwrap() error {
	return e.Err
}

// MalformedDocumentError is the document-level name for the same failure.
type MalformedDocumentError = MalformedLevelError

func malformed(reason, tag, attr string, err error) error {
	return &MalformedLevelError{Reason: reason, Tag: tag, Attr: attr, Err: err}
}
