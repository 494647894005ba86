package services

// FieldPatch pairs the actions a partial update may take on one editable
// field. Field names the struct field for partial validation of assigned
// values.
type FieldPatch struct {
	Field  string
	Assign func(value string)
	Clear  func()
}

// PatchResult reports what a patch pass touched. Assigned holds the struct
// field names that received a new value and still need schema validation;
// cleared fields are excluded, clearing is the sanctioned way to empty a
// field.
type PatchResult struct {
	Touched  []string
	Assigned []string
}

// ApplyPatch walks the allow-list in order and applies the payload to the
// resource through the patch table. For each allow-listed field present in
// the payload: a non-empty value is assigned, an explicit null clears the
// field, and an empty string is ignored. Fields absent from the payload are
// left untouched. If nothing was touched, ErrNoChanges is returned and the
// caller must not persist.
func ApplyPatch(payload map[string]*string, allowed []string, patches map[string]FieldPatch) (*PatchResult, error) {
	res := &PatchResult{}
	for _, name := range allowed {
		value, present := payload[name]
		if !present {
			continue
		}
		patch, ok := patches[name]
		if !ok {
			continue
		}
		switch {
		case value != nil && *value != "":
			patch.Assign(*value)
			res.Touched = append(res.Touched, name)
			res.Assigned = append(res.Assigned, patch.Field)
		case value == nil:
			patch.Clear()
			res.Touched = append(res.Touched, name)
		}
	}
	if len(res.Touched) == 0 {
		return nil, ErrNoChanges
	}
	return res, nil
}
