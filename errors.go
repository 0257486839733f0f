// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package mdtodocx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sstrelsov/ia-ibm-template/style"
)

// UnsupportedFormatError is returned when no source can handle the input format.
type UnsupportedFormatError struct {
	Extension string
	MIMEType  string
}

func (e *UnsupportedFormatError) Error() string {
	parts := []string{"unsupported format"}
	if e.Extension != "" {
		parts = append(parts, fmt.Sprintf("extension=%q", e.Extension))
	}
	if e.MIMEType != "" {
		parts = append(parts, fmt.Sprintf("mime=%q", e.MIMEType))
	}
	return strings.Join(parts, " ")
}

// FailedSourceAttempt records a source that accepted the input but failed.
type FailedSourceAttempt struct {
	Source string
	Err    error
}

// SourceError is returned when sources accepted the input but none could
// reduce it to Markdown.
type SourceError struct {
	Attempts []FailedSourceAttempt
}

func (e *SourceError) Error() string {
	if len(e.Attempts) == 0 {
		return "input could not be read"
	}
	var b strings.Builder
	b.WriteString("input could not be read after ")
	fmt.Fprintf(&b, "%d attempt(s):", len(e.Attempts))
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "\n  %s: %v", a.Source, a.Err)
	}
	return b.String()
}

func (e *SourceError) Unwrap() error {
	if len(e.Attempts) > 0 {
		return e.Attempts[len(e.Attempts)-1].Err
	}
	return nil
}

// ConversionError reports a failed conversion. Path names the artifact
// (input or output file); Kind and Line are set when a specific element
// could not be styled.
type ConversionError struct {
	Path string
	Kind style.Kind
	Line int
	Err  error
}

func (e *ConversionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "convert %s", e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	if e.Kind != "" {
		fmt.Fprintf(&b, " (element kind %q)", string(e.Kind))
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ConversionError) Unwrap() error { return e.Err }

// IsUnsupportedFormat reports whether the error is an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}

// IsUnmappedKind reports whether the error stems from an element kind with
// no style entry.
func IsUnmappedKind(err error) bool {
	return style.IsUnmappedKind(err)
}
