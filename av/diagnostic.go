// Copyright 2022 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package av

import (
	"context"
	"fmt"

	"github.com/stockparfait/logging"
)

// DiagnosticKind classifies non-fatal notices.
type DiagnosticKind int

const (
	// DiagnosticOutputSizeIgnored: output size was supplied for a variant which
	// doesn't support it, and was left out of the URL.
	DiagnosticOutputSizeIgnored DiagnosticKind = iota + 1
	// DiagnosticRecordSkipped: a CSV record was malformed and dropped.
	DiagnosticRecordSkipped
	// DiagnosticDateUnparsable: a timestamp cell is not a YYYY-MM-DD date; the
	// row is kept with a null timestamp.
	DiagnosticDateUnparsable
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticOutputSizeIgnored:
		return "output size ignored"
	case DiagnosticRecordSkipped:
		return "record skipped"
	case DiagnosticDateUnparsable:
		return "date unparsable"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is a non-fatal notice about a gated or dropped input.
type Diagnostic struct {
	Kind    DiagnosticKind
	Row     int    // 1-based CSV record number; 0 when not row specific
	Message string // human readable description
	Err     error  // underlying error, if any
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	s := d.Kind.String()
	if d.Row > 0 {
		s = fmt.Sprintf("record %d: %s", d.Row, s)
	}
	if d.Message != "" {
		s += ": " + d.Message
	}
	return s
}

// CountDiagnostics returns the number of diagnostics of the given kind.
func CountDiagnostics(diags []Diagnostic, kind DiagnosticKind) int {
	n := 0
	for _, d := range diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// LogDiagnostics writes each diagnostic as a warning to the logger in the
// context.
func LogDiagnostics(ctx context.Context, diags []Diagnostic) {
	for _, d := range diags {
		logging.Warningf(ctx, "%s", d.String())
	}
}
