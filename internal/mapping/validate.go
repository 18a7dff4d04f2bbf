package mapping

import (
	"fmt"

	"rulegen/internal/diagnostic"
)

// Validate checks a directive file structurally. It does not resolve Go
// types; the extractor reports unknown types when it has a type graph.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "directive file is nil", "", "")
		return res
	}

	seen := map[string]struct{}{}

	for i := range f.Operations {
		op := &f.Operations[i]

		if op.Name == "" {
			res.AddError(diagnostic.CodeEmptyOperationName,
				fmt.Sprintf("operation #%d has no name", i+1), "", "")
		} else if _, ok := seen[op.Name]; ok {
			res.AddError(diagnostic.CodeDuplicateOperation,
				fmt.Sprintf("duplicate operation %q", op.Name), op.Name, "")
		} else {
			seen[op.Name] = struct{}{}
		}

		if !op.Returns.IsValid() {
			res.AddError(diagnostic.CodeInvalidReturns,
				fmt.Sprintf("returns %q must be one of scalar, collection, auto", string(op.Returns)), op.Name, "")
		}

		if op.Returns == ReturnsAuto && op.TargetType == "" {
			res.AddError(diagnostic.CodeInvalidReturns, "returns auto requires target_type", op.Name, "")
		}

		validateDirectives(res, op)

		if len(op.OneToOne) == 0 && len(op.Directives) == 0 &&
			len(op.SourceFields) == 0 && op.SourceType == "" {
			res.AddWarning(diagnostic.CodeOperationHasNoFields,
				"operation has no directives and no source fields; it will produce an empty root", op.Name, "")
		}
	}

	return res
}

func validateDirectives(res *diagnostic.Diagnostics, op *Operation) {
	for i, d := range op.AllDirectives() {
		if d.IsEmpty() {
			res.AddInfo(diagnostic.CodeSkippedDirective,
				fmt.Sprintf("directive #%d is empty and will be skipped", i+1), op.Name, "")
			continue
		}

		for _, p := range []string{d.Source, d.Target} {
			if p == "" {
				continue
			}

			if _, err := ParsePath(p); err != nil {
				res.AddError(diagnostic.CodeInvalidPath, err.Error(), op.Name, p)
			}
		}

		if d.IsTargetOnly() {
			res.AddWarning(diagnostic.CodeTargetOnlyDirective,
				"directive has a target but no source or expression", op.Name, d.Target)
		}
	}
}
