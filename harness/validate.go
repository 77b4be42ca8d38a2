package harness

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// ValidateDocument checks a decoded scenario document against the embedded
// CUE schema. It returns nil for a valid document, or an error listing
// every violation with its field path.
//
// Uses the CUE SDK's Go API directly (not a CLI subprocess): the document
// is encoded as a CUE value and unified with the closed #Scenario
// definition, so unknown fields and type mismatches both surface.
func ValidateDocument(doc map[string]any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	if !def.Exists() {
		return fmt.Errorf("scenario schema has no #Scenario definition")
	}

	val := ctx.Encode(doc)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode scenario document: %w", err)
	}

	unified := def.Unify(val)
	// Concrete(true) turns missing required fields (which unify to bare
	// constraints) into errors alongside type mismatches and unknown fields.
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatSchemaError(err)
	}
	return nil
}

// formatSchemaError flattens CUE's error list into one error naming every
// violated field.
func formatSchemaError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("invalid scenario: %v", err)
	}

	details := make([]string, 0, len(errs))
	for _, e := range errs {
		if path := strings.Join(e.Path(), "."); path != "" {
			details = append(details, fmt.Sprintf("%s: %s", path, messageOf(e)))
			continue
		}
		details = append(details, messageOf(e))
	}
	return fmt.Errorf("invalid scenario: %s", strings.Join(details, "; "))
}

func messageOf(e cueerrors.Error) string {
	format, args := e.Msg()
	return fmt.Sprintf(format, args...)
}
