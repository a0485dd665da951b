package jumbf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/jumbf/internal/boxio"
)

// Issue codes. Exported as consts so callers can switch on them.
const (
	// CodeTruncated reports fewer bytes available than a declared or
	// required field needs.
	CodeTruncated = boxio.CodeTruncated

	// CodeStructuralMismatch reports a box of the wrong type at a fixed
	// structural position (expected "jumb" or "jumd").
	CodeStructuralMismatch = boxio.CodeStructural

	// CodeBoundsViolation reports a child whose declared size overruns
	// its parent's remaining payload, or size arithmetic that cannot be
	// satisfied.
	CodeBoundsViolation = boxio.CodeBounds

	// CodeInvalidEncoding reports invalid UTF-8 in a label.
	CodeInvalidEncoding = boxio.CodeEncoding

	// CodeRecursionLimit reports streaming-parse nesting deeper than the
	// configured ceiling.
	CodeRecursionLimit = boxio.CodeRecursionLimit

	// CodeSourceFailure wraps an I/O error from the underlying byte
	// source, passed through unmodified as Cause.
	CodeSourceFailure = boxio.CodeSourceFailure
)

// Issue represents a single parse failure.
type Issue struct {
	Path    string // Box path (for example: /1/desc). "/" is the outermost box.
	Code    string // One of the codes listed above.
	Message string
	Offset  int64 // Byte offset in the input source (-1 when unknown).
	Cause   error // Optional: underlying error (source failures).
}

// Issues is a collection of parse failures that implements error.
type Issues []Issue

// Error renders a short summary of the leading issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes of source failures to errors.Is/errors.As.
func (iss Issues) Unwrap() []error {
	var causes []error
	for _, it := range iss {
		if it.Cause != nil {
			causes = append(causes, it.Cause)
		}
	}
	return causes
}

// AppendIssues adds issues to dst, allocating it on first use.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues reports whether err is (or wraps) an Issues value.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func singleIssue(code, path string, offset int64, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: path, Message: msg, Offset: offset})
}

// toIssues converts internal boxio failures into the public error model,
// attaching the box path of the failing frame.
func toIssues(err error, path string) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	var ie boxio.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{
			Code:    ie.Code,
			Path:    path,
			Message: ie.Message,
			Offset:  ie.Offset,
			Cause:   ie.Cause,
		})
	}
	return AppendIssues(nil, Issue{Code: CodeSourceFailure, Path: path, Message: err.Error(), Offset: -1, Cause: err})
}
