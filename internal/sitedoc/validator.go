package sitedoc

import (
	"embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/huangsam/solarsite/schema"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

const siteSchemaFile = "schemas/site.cue"

// Validator checks decoded documents against the embedded #Site definition.
// A cue.Context is not safe for concurrent use, so Validate serializes callers.
type Validator struct {
	mu   sync.Mutex
	ctx  *cue.Context
	site cue.Value
}

// NewValidator compiles the embedded site schema.
func NewValidator() (*Validator, error) {
	content, err := schemaFS.ReadFile(siteSchemaFile)
	if err != nil {
		return nil, fmt.Errorf("could not read embedded schema: %w", err)
	}

	ctx := cuecontext.New()
	inst := ctx.CompileBytes(content, cue.Filename("site.cue"))
	if err := inst.Err(); err != nil {
		return nil, fmt.Errorf("could not compile site schema: %w", err)
	}

	def := inst.LookupPath(cue.ParsePath("#Site"))
	if !def.Exists() {
		return nil, fmt.Errorf("site schema has no #Site definition")
	}
	return &Validator{ctx: ctx, site: def}, nil
}

// Validate returns an InvalidInputError when data does not conform to #Site.
func (v *Validator) Validate(data map[string]any) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	dataValue := v.ctx.Encode(data)
	if err := dataValue.Err(); err != nil {
		return schema.NewInvalidInput("", fmt.Sprintf("could not encode document: %v", err))
	}

	unified := v.site.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return schema.NewInvalidInput("", fmt.Sprintf("schema validation failed: %v", err))
	}

	// Concreteness catches metric keys that are absent from the document
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return schema.NewInvalidInput("", fmt.Sprintf("schema validation failed: %v", err))
	}
	return nil
}

var defaultValidator = sync.OnceValues(NewValidator)
