package models

import "errors"

// ErrMalformedOutput marks a generative response that could not be
// parsed into the expected label schema. The classifier absorbs it into
// the fixed general-mention fallback rather than surfacing it.
var ErrMalformedOutput = errors.New("malformed classifier output")
